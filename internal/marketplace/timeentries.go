package marketplace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

var (
	ErrNotAssigned      = errors.New("you are not assigned to this project")
	ErrProjectNotHourly = errors.New("time can only be logged on HOURLY projects")
	ErrProjectNotActive = errors.New("time can only be logged on projects in progress")
)

// TimeEntryService lets the assigned freelancer log hours against an active
// hourly project. Billable amounts are frozen at the project's agreed rate.
type TimeEntryService struct {
	entries  domain.TimeEntryRepository
	projects domain.ProjectRepository
}

func NewTimeEntryService(entries domain.TimeEntryRepository, projects domain.ProjectRepository) *TimeEntryService {
	return &TimeEntryService{entries: entries, projects: projects}
}

type LogTimeParams struct {
	MilestoneID *uuid.UUID
	Hours       float64
	Description string
	WorkDate    time.Time
}

func (s *TimeEntryService) Log(ctx context.Context, projectID, freelancerID uuid.UUID, params LogTimeParams) (*domain.TimeEntry, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.TimeEntryService.Log: get project: %w", err)
	}

	if project.FreelancerID == nil || *project.FreelancerID != freelancerID {
		return nil, fmt.Errorf("marketplace.TimeEntryService.Log: %w", ErrNotAssigned)
	}
	if project.Type != domain.ProjectTypeHourly {
		return nil, fmt.Errorf("marketplace.TimeEntryService.Log: %w", ErrProjectNotHourly)
	}
	if project.Status != domain.ProjectStatusInProgress && project.Status != domain.ProjectStatusReview {
		return nil, fmt.Errorf("marketplace.TimeEntryService.Log: %w", ErrProjectNotActive)
	}

	// AgreedRate is set together with FreelancerID at acceptance, so the
	// assignment check above guarantees it is present.
	entry, err := domain.NewTimeEntry(projectID, freelancerID, params.MilestoneID, params.Hours, params.Description, params.WorkDate, *project.AgreedRate)
	if err != nil {
		return nil, fmt.Errorf("marketplace.TimeEntryService.Log: %w", err)
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("marketplace.TimeEntryService.Log: %w", err)
	}

	return entry, nil
}

// TimeSummary aggregates a project's logged time.
type TimeSummary struct {
	TotalHours    float64 `json:"total_hours"`
	BillableTotal float64 `json:"billable_total"`
}

// ListByProject returns a project's entries plus their totals. Only the two
// parties to the engagement may look.
func (s *TimeEntryService) ListByProject(ctx context.Context, projectID, callerID uuid.UUID) ([]*domain.TimeEntry, TimeSummary, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, TimeSummary{}, fmt.Errorf("marketplace.TimeEntryService.ListByProject: get project: %w", err)
	}

	assigned := project.FreelancerID != nil && *project.FreelancerID == callerID
	if project.ClientID != callerID && !assigned {
		return nil, TimeSummary{}, fmt.Errorf("marketplace.TimeEntryService.ListByProject: %w", ErrNotProjectOwner)
	}

	entries, err := s.entries.ListByProject(ctx, projectID)
	if err != nil {
		return nil, TimeSummary{}, fmt.Errorf("marketplace.TimeEntryService.ListByProject: %w", err)
	}

	var summary TimeSummary
	for _, e := range entries {
		summary.TotalHours += e.Hours
		summary.BillableTotal += e.BillableAmount
	}

	return entries, summary, nil
}
