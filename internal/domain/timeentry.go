package domain

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

type TimeEntry struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	FreelancerID   uuid.UUID
	MilestoneID    *uuid.UUID
	Hours          float64
	Description    string
	WorkDate       time.Time
	BillableAmount float64
	CreatedAt      time.Time
}

// NewTimeEntry logs hours against a project at the given hourly rate.
// The billable amount is computed once at creation time so later rate
// changes never retroactively alter logged entries.
func NewTimeEntry(projectID, freelancerID uuid.UUID, milestoneID *uuid.UUID, hours float64, description string, workDate time.Time, hourlyRate float64) (*TimeEntry, error) {
	if projectID == uuid.Nil {
		return nil, &ValidationError{Msg: "time entry: project ID is required"}
	}
	if freelancerID == uuid.Nil {
		return nil, &ValidationError{Msg: "time entry: freelancer ID is required"}
	}
	if hours <= 0 || hours > 24 {
		return nil, &ValidationError{Msg: "time entry: hours must be between 0 and 24"}
	}
	if description == "" {
		return nil, &ValidationError{Msg: "time entry: description is required"}
	}

	return &TimeEntry{
		ID:             uuid.New(),
		ProjectID:      projectID,
		FreelancerID:   freelancerID,
		MilestoneID:    milestoneID,
		Hours:          hours,
		Description:    description,
		WorkDate:       workDate,
		BillableAmount: BillableAmount(hourlyRate, hours),
		CreatedAt:      time.Now(),
	}, nil
}

// BillableAmount rounds rate*hours to cents, half away from zero.
func BillableAmount(rate, hours float64) float64 {
	return math.Round(rate*hours*100) / 100
}

type TimeEntryRepository interface {
	Create(ctx context.Context, e *TimeEntry) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*TimeEntry, error)
}
