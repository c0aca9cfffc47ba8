package marketplace

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

// MilestoneService manages the payment milestones a client attaches to a
// project.
type MilestoneService struct {
	milestones domain.MilestoneRepository
	projects   domain.ProjectRepository
}

func NewMilestoneService(milestones domain.MilestoneRepository, projects domain.ProjectRepository) *MilestoneService {
	return &MilestoneService{milestones: milestones, projects: projects}
}

type AddMilestoneParams struct {
	Title       string
	Description *string
	Amount      float64
	SortOrder   int
}

// Add creates a milestone under an owned project. The due date is inherited
// from the project deadline.
func (s *MilestoneService) Add(ctx context.Context, projectID, clientID uuid.UUID, params AddMilestoneParams) (*domain.Milestone, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.MilestoneService.Add: get project: %w", err)
	}
	if project.ClientID != clientID {
		return nil, fmt.Errorf("marketplace.MilestoneService.Add: %w", ErrNotProjectOwner)
	}

	milestone, err := domain.NewMilestone(projectID, params.Title, params.Description, params.Amount, params.SortOrder, project.Deadline)
	if err != nil {
		return nil, fmt.Errorf("marketplace.MilestoneService.Add: %w", err)
	}

	if err := s.milestones.Create(ctx, milestone); err != nil {
		return nil, fmt.Errorf("marketplace.MilestoneService.Add: %w", err)
	}

	return milestone, nil
}

func (s *MilestoneService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Milestone, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("marketplace.MilestoneService.ListByProject: get project: %w", err)
	}

	milestones, err := s.milestones.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.MilestoneService.ListByProject: %w", err)
	}
	return milestones, nil
}

// UpdateStatus moves a milestone between PENDING, IN_PROGRESS and COMPLETED.
// Either side of the engagement may update it; the client owns the project,
// the assigned freelancer does the work.
func (s *MilestoneService) UpdateStatus(ctx context.Context, milestoneID, callerID uuid.UUID, status domain.MilestoneStatus) (*domain.Milestone, error) {
	switch status {
	case domain.MilestoneStatusPending, domain.MilestoneStatusInProgress, domain.MilestoneStatusCompleted:
	default:
		return nil, fmt.Errorf("marketplace.MilestoneService.UpdateStatus: unknown milestone status %q", status)
	}

	milestone, err := s.milestones.GetByID(ctx, milestoneID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.MilestoneService.UpdateStatus: get milestone: %w", err)
	}

	project, err := s.projects.GetByID(ctx, milestone.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.MilestoneService.UpdateStatus: get project: %w", err)
	}

	assigned := project.FreelancerID != nil && *project.FreelancerID == callerID
	if project.ClientID != callerID && !assigned {
		return nil, fmt.Errorf("marketplace.MilestoneService.UpdateStatus: %w", ErrNotProjectOwner)
	}

	if err := s.milestones.UpdateStatus(ctx, milestoneID, status); err != nil {
		return nil, fmt.Errorf("marketplace.MilestoneService.UpdateStatus: %w", err)
	}

	milestone.Status = status
	return milestone, nil
}
