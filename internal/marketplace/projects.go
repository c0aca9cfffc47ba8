package marketplace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

// ErrProjectNotDraft guards deletion: published projects carry bids and
// history that must not silently disappear.
var ErrProjectNotDraft = errors.New("only DRAFT projects can be deleted")

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ProjectService owns project CRUD and the status lifecycle.
type ProjectService struct {
	projects domain.ProjectRepository
}

func NewProjectService(projects domain.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

type CreateProjectParams struct {
	Title       string
	Description string
	BudgetMin   float64
	BudgetMax   float64
	Deadline    time.Time
	Type        domain.ProjectType
	Publish     bool // true creates the project directly OPEN
}

func (s *ProjectService) Create(ctx context.Context, clientID uuid.UUID, params CreateProjectParams) (*domain.Project, error) {
	initial := domain.ProjectStatusDraft
	if params.Publish {
		initial = domain.ProjectStatusOpen
	}

	project, err := domain.NewProject(clientID, params.Title, params.Description, params.BudgetMin, params.BudgetMax, params.Deadline, params.Type, initial)
	if err != nil {
		return nil, fmt.Errorf("marketplace.ProjectService.Create: %w", err)
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("marketplace.ProjectService.Create: %w", err)
	}

	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("marketplace.ProjectService.Get: %w", err)
	}
	return project, nil
}

// List returns a page of projects plus the unpaged total. Page numbers are
// one-based; out-of-range limits are clamped.
func (s *ProjectService) List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, int64, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}

	items, total, err := s.projects.List(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("marketplace.ProjectService.List: %w", err)
	}
	return items, total, nil
}

// ChangeStatus moves an owned project along the lifecycle table. Only the
// status field is written.
func (s *ProjectService) ChangeStatus(ctx context.Context, projectID, clientID uuid.UUID, newStatus domain.ProjectStatus) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.ProjectService.ChangeStatus: %w", err)
	}

	if project.ClientID != clientID {
		return nil, fmt.Errorf("marketplace.ProjectService.ChangeStatus: %w", ErrNotProjectOwner)
	}
	if err := project.Status.AssertTransition(newStatus); err != nil {
		return nil, fmt.Errorf("marketplace.ProjectService.ChangeStatus: %w", err)
	}

	if err := s.projects.UpdateStatus(ctx, projectID, newStatus); err != nil {
		return nil, fmt.Errorf("marketplace.ProjectService.ChangeStatus: %w", err)
	}

	project.Status = newStatus
	project.UpdatedAt = time.Now()

	return project, nil
}

// Remove deletes an owned DRAFT project.
func (s *ProjectService) Remove(ctx context.Context, projectID, clientID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("marketplace.ProjectService.Remove: %w", err)
	}

	if project.ClientID != clientID {
		return fmt.Errorf("marketplace.ProjectService.Remove: %w", ErrNotProjectOwner)
	}
	if project.Status != domain.ProjectStatusDraft {
		return fmt.Errorf("marketplace.ProjectService.Remove: %w", ErrProjectNotDraft)
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("marketplace.ProjectService.Remove: %w", err)
	}

	return nil
}
