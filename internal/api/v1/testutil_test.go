package v1_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/marketplace"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers: inject user/role into context for DoCtx
// ---------------------------------------------------------------------------

func clientCtx(userID uuid.UUID) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserRole, string(domain.RoleClient))
	return ctx
}

func freelancerCtx(userID uuid.UUID) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyUserRole, string(domain.RoleFreelancer))
	return ctx
}

// parseErrorBody decodes the RFC 9457 problem detail from the response body.
func parseErrorBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// ---------------------------------------------------------------------------
// Mock services
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc   func(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, error)
	loginFunc      func(ctx context.Context, email, password string) (string, string, error)
	refreshFunc    func(ctx context.Context, refreshToken string) (string, error)
	loginOAuthFunc func(ctx context.Context, email, name string) (string, string, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, error) {
	return m.registerFunc(ctx, email, password, name, role)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshFunc(ctx, refreshToken)
}

func (m *mockAuthService) LoginOAuth(ctx context.Context, email, name string) (string, string, error) {
	return m.loginOAuthFunc(ctx, email, name)
}

type mockProjectService struct {
	createFunc       func(ctx context.Context, clientID uuid.UUID, params marketplace.CreateProjectParams) (*domain.Project, error)
	getFunc          func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	listFunc         func(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, int64, error)
	changeStatusFunc func(ctx context.Context, projectID, clientID uuid.UUID, newStatus domain.ProjectStatus) (*domain.Project, error)
	removeFunc       func(ctx context.Context, projectID, clientID uuid.UUID) error
}

func (m *mockProjectService) Create(ctx context.Context, clientID uuid.UUID, params marketplace.CreateProjectParams) (*domain.Project, error) {
	return m.createFunc(ctx, clientID, params)
}

func (m *mockProjectService) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return m.getFunc(ctx, id)
}

func (m *mockProjectService) List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, int64, error) {
	return m.listFunc(ctx, f)
}

func (m *mockProjectService) ChangeStatus(ctx context.Context, projectID, clientID uuid.UUID, newStatus domain.ProjectStatus) (*domain.Project, error) {
	return m.changeStatusFunc(ctx, projectID, clientID, newStatus)
}

func (m *mockProjectService) Remove(ctx context.Context, projectID, clientID uuid.UUID) error {
	return m.removeFunc(ctx, projectID, clientID)
}

type mockBidService struct {
	submitFunc           func(ctx context.Context, projectID, freelancerID uuid.UUID, proposedRate float64, estimatedDurationDays int, coverLetter string) (*domain.Bid, error)
	acceptFunc           func(ctx context.Context, bidID, clientID uuid.UUID) (*domain.Bid, error)
	rejectFunc           func(ctx context.Context, bidID, clientID uuid.UUID) (*domain.Bid, error)
	listRankedFunc       func(ctx context.Context, projectID uuid.UUID, rankBy string) ([]domain.RankedBid, error)
	listByFreelancerFunc func(ctx context.Context, freelancerID uuid.UUID) ([]*domain.Bid, error)
}

func (m *mockBidService) Submit(ctx context.Context, projectID, freelancerID uuid.UUID, proposedRate float64, estimatedDurationDays int, coverLetter string) (*domain.Bid, error) {
	return m.submitFunc(ctx, projectID, freelancerID, proposedRate, estimatedDurationDays, coverLetter)
}

func (m *mockBidService) Accept(ctx context.Context, bidID, clientID uuid.UUID) (*domain.Bid, error) {
	return m.acceptFunc(ctx, bidID, clientID)
}

func (m *mockBidService) Reject(ctx context.Context, bidID, clientID uuid.UUID) (*domain.Bid, error) {
	return m.rejectFunc(ctx, bidID, clientID)
}

func (m *mockBidService) ListRanked(ctx context.Context, projectID uuid.UUID, rankBy string) ([]domain.RankedBid, error) {
	return m.listRankedFunc(ctx, projectID, rankBy)
}

func (m *mockBidService) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]*domain.Bid, error) {
	return m.listByFreelancerFunc(ctx, freelancerID)
}

type mockMilestoneService struct {
	addFunc           func(ctx context.Context, projectID, clientID uuid.UUID, params marketplace.AddMilestoneParams) (*domain.Milestone, error)
	listByProjectFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.Milestone, error)
	updateStatusFunc  func(ctx context.Context, milestoneID, callerID uuid.UUID, status domain.MilestoneStatus) (*domain.Milestone, error)
}

func (m *mockMilestoneService) Add(ctx context.Context, projectID, clientID uuid.UUID, params marketplace.AddMilestoneParams) (*domain.Milestone, error) {
	return m.addFunc(ctx, projectID, clientID, params)
}

func (m *mockMilestoneService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Milestone, error) {
	return m.listByProjectFunc(ctx, projectID)
}

func (m *mockMilestoneService) UpdateStatus(ctx context.Context, milestoneID, callerID uuid.UUID, status domain.MilestoneStatus) (*domain.Milestone, error) {
	return m.updateStatusFunc(ctx, milestoneID, callerID, status)
}

type mockTimeEntryService struct {
	logFunc           func(ctx context.Context, projectID, freelancerID uuid.UUID, params marketplace.LogTimeParams) (*domain.TimeEntry, error)
	listByProjectFunc func(ctx context.Context, projectID, callerID uuid.UUID) ([]*domain.TimeEntry, marketplace.TimeSummary, error)
}

func (m *mockTimeEntryService) Log(ctx context.Context, projectID, freelancerID uuid.UUID, params marketplace.LogTimeParams) (*domain.TimeEntry, error) {
	return m.logFunc(ctx, projectID, freelancerID, params)
}

func (m *mockTimeEntryService) ListByProject(ctx context.Context, projectID, callerID uuid.UUID) ([]*domain.TimeEntry, marketplace.TimeSummary, error) {
	return m.listByProjectFunc(ctx, projectID, callerID)
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	users    domain.UserRepository
	profiles domain.FreelancerProfileRepository
	projects domain.ProjectRepository
	bids     domain.BidRepository
}

func (m *mockDataStore) Users() domain.UserRepository                 { return m.users }
func (m *mockDataStore) Profiles() domain.FreelancerProfileRepository { return m.profiles }
func (m *mockDataStore) Projects() domain.ProjectRepository           { return m.projects }
func (m *mockDataStore) Bids() domain.BidRepository                   { return m.bids }

// ---------------------------------------------------------------------------
// Mock UserRepository
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	createFunc     func(ctx context.Context, u *domain.User) error
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.createFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, email)
}

// ---------------------------------------------------------------------------
// Mock FreelancerProfileRepository
// ---------------------------------------------------------------------------

type mockProfileRepo struct {
	createFunc      func(ctx context.Context, p *domain.FreelancerProfile) error
	getByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*domain.FreelancerProfile, error)
	updateFunc      func(ctx context.Context, p *domain.FreelancerProfile) error
}

func (m *mockProfileRepo) Create(ctx context.Context, p *domain.FreelancerProfile) error {
	return m.createFunc(ctx, p)
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.FreelancerProfile, error) {
	return m.getByUserIDFunc(ctx, userID)
}

func (m *mockProfileRepo) Update(ctx context.Context, p *domain.FreelancerProfile) error {
	return m.updateFunc(ctx, p)
}
