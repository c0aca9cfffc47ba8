package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "DRAFT"
	ProjectStatusOpen       ProjectStatus = "OPEN"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusReview     ProjectStatus = "REVIEW"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusCancelled  ProjectStatus = "CANCELLED"
	ProjectStatusDisputed   ProjectStatus = "DISPUTED"
)

// projectTransitions is the full lifecycle table. COMPLETED, CANCELLED and
// DISPUTED are terminal; self-transitions are never listed and therefore
// never legal.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusDraft:      {ProjectStatusOpen},
	ProjectStatusOpen:       {ProjectStatusInProgress, ProjectStatusCancelled},
	ProjectStatusInProgress: {ProjectStatusReview, ProjectStatusDisputed},
	ProjectStatusReview:     {ProjectStatusCompleted, ProjectStatusInProgress},
	ProjectStatusCompleted:  {},
	ProjectStatusCancelled:  {},
	ProjectStatusDisputed:   {},
}

// CanTransition reports whether the status may move to the given target.
// Unknown statuses have no outgoing edges.
func (s ProjectStatus) CanTransition(to ProjectStatus) bool {
	for _, allowed := range projectTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AssertTransition returns an *InvalidTransitionError when the move from s
// to the target is not in the lifecycle table. It performs no mutation; the
// caller persists the new status only on nil.
func (s ProjectStatus) AssertTransition(to ProjectStatus) error {
	if !s.CanTransition(to) {
		return &InvalidTransitionError{From: s, To: to}
	}
	return nil
}

type ProjectType string

const (
	ProjectTypeFixed  ProjectType = "FIXED"
	ProjectTypeHourly ProjectType = "HOURLY"
)

type Project struct {
	ID           uuid.UUID
	ClientID     uuid.UUID
	FreelancerID *uuid.UUID // nil until a bid is accepted
	Title        string
	Description  string
	BudgetMin    float64
	BudgetMax    float64
	Deadline     time.Time
	Status       ProjectStatus
	Type         ProjectType
	AgreedRate   *float64 // set together with FreelancerID at acceptance
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProject creates a Project with validated required fields. A project may
// start life in DRAFT or directly OPEN depending on caller intent; any other
// initial status is rejected.
func NewProject(clientID uuid.UUID, title, description string, budgetMin, budgetMax float64, deadline time.Time, projectType ProjectType, initial ProjectStatus) (*Project, error) {
	if clientID == uuid.Nil {
		return nil, &ValidationError{Msg: "project: client ID is required"}
	}
	if title == "" {
		return nil, &ValidationError{Msg: "project: title is required"}
	}
	if projectType != ProjectTypeFixed && projectType != ProjectTypeHourly {
		return nil, &ValidationError{Msg: "project: type must be FIXED or HOURLY"}
	}
	if initial == "" {
		initial = ProjectStatusDraft
	}
	if initial != ProjectStatusDraft && initial != ProjectStatusOpen {
		return nil, &ValidationError{Msg: "project: initial status must be DRAFT or OPEN"}
	}

	now := time.Now()
	return &Project{
		ID:          uuid.New(),
		ClientID:    clientID,
		Title:       title,
		Description: description,
		BudgetMin:   budgetMin,
		BudgetMax:   budgetMax,
		Deadline:    deadline,
		Status:      initial,
		Type:        projectType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ProjectFilter narrows List results. Zero values mean "no constraint".
// BudgetMin / BudgetMax select projects whose budget range overlaps the
// given bound.
type ProjectFilter struct {
	Status       ProjectStatus
	ClientID     uuid.UUID
	FreelancerID uuid.UUID
	BudgetMin    *float64
	BudgetMax    *float64
	Page         int
	Limit        int
}

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	List(ctx context.Context, f ProjectFilter) ([]*Project, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status ProjectStatus) error
	// Assign sets the winning freelancer, the agreed rate and the new status
	// in a single write; used once per project, at bid acceptance.
	Assign(ctx context.Context, id, freelancerID uuid.UUID, agreedRate float64, status ProjectStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
