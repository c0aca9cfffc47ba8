package marketplace_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock ProjectRepository
// ---------------------------------------------------------------------------

type mockProjectRepo struct {
	createFunc       func(ctx context.Context, p *domain.Project) error
	getByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	listFunc         func(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, int64, error)
	updateStatusFunc func(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) error
	assignFunc       func(ctx context.Context, id, freelancerID uuid.UUID, agreedRate float64, status domain.ProjectStatus) error
	deleteFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return m.createFunc(ctx, p)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockProjectRepo) List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, int64, error) {
	return m.listFunc(ctx, f)
}

func (m *mockProjectRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) error {
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockProjectRepo) Assign(ctx context.Context, id, freelancerID uuid.UUID, agreedRate float64, status domain.ProjectStatus) error {
	return m.assignFunc(ctx, id, freelancerID, agreedRate, status)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock BidRepository
// ---------------------------------------------------------------------------

type mockBidRepo struct {
	createFunc             func(ctx context.Context, b *domain.Bid) error
	getByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Bid, error)
	listByProjectFunc      func(ctx context.Context, projectID uuid.UUID) ([]*domain.Bid, error)
	listForRankingFunc     func(ctx context.Context, projectID uuid.UUID) ([]domain.RankedBid, error)
	listByFreelancerFunc   func(ctx context.Context, freelancerID uuid.UUID) ([]*domain.Bid, error)
	updateStatusFromFunc   func(ctx context.Context, id uuid.UUID, from, to domain.BidStatus) error
	rejectOtherPendingFunc func(ctx context.Context, projectID, exceptID uuid.UUID) (int64, error)
}

func (m *mockBidRepo) Create(ctx context.Context, b *domain.Bid) error {
	return m.createFunc(ctx, b)
}

func (m *mockBidRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bid, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockBidRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Bid, error) {
	return m.listByProjectFunc(ctx, projectID)
}

func (m *mockBidRepo) ListForRanking(ctx context.Context, projectID uuid.UUID) ([]domain.RankedBid, error) {
	return m.listForRankingFunc(ctx, projectID)
}

func (m *mockBidRepo) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]*domain.Bid, error) {
	return m.listByFreelancerFunc(ctx, freelancerID)
}

func (m *mockBidRepo) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to domain.BidStatus) error {
	return m.updateStatusFromFunc(ctx, id, from, to)
}

func (m *mockBidRepo) RejectOtherPending(ctx context.Context, projectID, exceptID uuid.UUID) (int64, error) {
	return m.rejectOtherPendingFunc(ctx, projectID, exceptID)
}

// ---------------------------------------------------------------------------
// Mock MilestoneRepository
// ---------------------------------------------------------------------------

type mockMilestoneRepo struct {
	createFunc        func(ctx context.Context, m *domain.Milestone) error
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Milestone, error)
	listByProjectFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.Milestone, error)
	updateStatusFunc  func(ctx context.Context, id uuid.UUID, status domain.MilestoneStatus) error
}

func (m *mockMilestoneRepo) Create(ctx context.Context, ms *domain.Milestone) error {
	return m.createFunc(ctx, ms)
}

func (m *mockMilestoneRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Milestone, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockMilestoneRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Milestone, error) {
	return m.listByProjectFunc(ctx, projectID)
}

func (m *mockMilestoneRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MilestoneStatus) error {
	return m.updateStatusFunc(ctx, id, status)
}

// ---------------------------------------------------------------------------
// Mock TimeEntryRepository
// ---------------------------------------------------------------------------

type mockTimeEntryRepo struct {
	createFunc        func(ctx context.Context, e *domain.TimeEntry) error
	listByProjectFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.TimeEntry, error)
}

func (m *mockTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	return m.createFunc(ctx, e)
}

func (m *mockTimeEntryRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.TimeEntry, error) {
	return m.listByProjectFunc(ctx, projectID)
}

// ---------------------------------------------------------------------------
// In-memory publisher capturing published events
// ---------------------------------------------------------------------------

type capturePublisher struct {
	channels [][]byte
	names    []string
}

func (p *capturePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.names = append(p.names, channel)
	p.channels = append(p.channels, payload)
	return nil
}
