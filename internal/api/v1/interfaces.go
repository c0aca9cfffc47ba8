package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/marketplace"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Users() domain.UserRepository
	Profiles() domain.FreelancerProfileRepository
	Projects() domain.ProjectRepository
	Bids() domain.BidRepository
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	LoginOAuth(ctx context.Context, email, name string) (accessToken, refreshToken string, err error)
}

// ProjectService abstracts project lifecycle operations for handler testing.
// *marketplace.ProjectService satisfies this interface.
type ProjectService interface {
	Create(ctx context.Context, clientID uuid.UUID, params marketplace.CreateProjectParams) (*domain.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, int64, error)
	ChangeStatus(ctx context.Context, projectID, clientID uuid.UUID, newStatus domain.ProjectStatus) (*domain.Project, error)
	Remove(ctx context.Context, projectID, clientID uuid.UUID) error
}

// BidService abstracts the bid lifecycle for handler testing.
// *marketplace.BidService satisfies this interface.
type BidService interface {
	Submit(ctx context.Context, projectID, freelancerID uuid.UUID, proposedRate float64, estimatedDurationDays int, coverLetter string) (*domain.Bid, error)
	Accept(ctx context.Context, bidID, clientID uuid.UUID) (*domain.Bid, error)
	Reject(ctx context.Context, bidID, clientID uuid.UUID) (*domain.Bid, error)
	ListRanked(ctx context.Context, projectID uuid.UUID, rankBy string) ([]domain.RankedBid, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]*domain.Bid, error)
}

// MilestoneService abstracts milestone operations for handler testing.
// *marketplace.MilestoneService satisfies this interface.
type MilestoneService interface {
	Add(ctx context.Context, projectID, clientID uuid.UUID, params marketplace.AddMilestoneParams) (*domain.Milestone, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Milestone, error)
	UpdateStatus(ctx context.Context, milestoneID, callerID uuid.UUID, status domain.MilestoneStatus) (*domain.Milestone, error)
}

// TimeEntryService abstracts time logging for handler testing.
// *marketplace.TimeEntryService satisfies this interface.
type TimeEntryService interface {
	Log(ctx context.Context, projectID, freelancerID uuid.UUID, params marketplace.LogTimeParams) (*domain.TimeEntry, error)
	ListByProject(ctx context.Context, projectID, callerID uuid.UUID) ([]*domain.TimeEntry, marketplace.TimeSummary, error)
}
