package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "PENDING"
	MilestoneStatusInProgress MilestoneStatus = "IN_PROGRESS"
	MilestoneStatusCompleted  MilestoneStatus = "COMPLETED"
)

type Milestone struct {
	ID          uuid.UUID
	ProjectID   uuid.UUID
	Title       string
	Description *string
	Amount      float64
	SortOrder   int
	Status      MilestoneStatus
	DueDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMilestone creates a PENDING milestone. The due date is inherited from
// the owning project's deadline.
func NewMilestone(projectID uuid.UUID, title string, description *string, amount float64, sortOrder int, dueDate time.Time) (*Milestone, error) {
	if projectID == uuid.Nil {
		return nil, &ValidationError{Msg: "milestone: project ID is required"}
	}
	if title == "" {
		return nil, &ValidationError{Msg: "milestone: title is required"}
	}
	if amount < 0 {
		return nil, &ValidationError{Msg: "milestone: amount must not be negative"}
	}

	now := time.Now()
	return &Milestone{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Amount:      amount,
		SortOrder:   sortOrder,
		Status:      MilestoneStatusPending,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type MilestoneRepository interface {
	Create(ctx context.Context, m *Milestone) error
	GetByID(ctx context.Context, id uuid.UUID) (*Milestone, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Milestone, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status MilestoneStatus) error
}
