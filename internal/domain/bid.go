package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type BidStatus string

const (
	BidStatusPending  BidStatus = "PENDING"
	BidStatusAccepted BidStatus = "ACCEPTED"
	BidStatusRejected BidStatus = "REJECTED"
	// BidStatusWithdrawn exists in the data model but no operation currently
	// produces it; withdrawal semantics were never settled upstream.
	BidStatusWithdrawn BidStatus = "WITHDRAWN"
)

type Bid struct {
	ID                    uuid.UUID
	ProjectID             uuid.UUID
	FreelancerID          uuid.UUID
	ProposedRate          float64
	EstimatedDurationDays int
	CoverLetter           string
	Status                BidStatus
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewBid creates a PENDING bid with validated required fields. The rate must
// be positive (the composite ranking strategy divides by it).
func NewBid(projectID, freelancerID uuid.UUID, proposedRate float64, estimatedDurationDays int, coverLetter string) (*Bid, error) {
	if projectID == uuid.Nil {
		return nil, &ValidationError{Msg: "bid: project ID is required"}
	}
	if freelancerID == uuid.Nil {
		return nil, &ValidationError{Msg: "bid: freelancer ID is required"}
	}
	if proposedRate <= 0 {
		return nil, &ValidationError{Msg: "bid: proposed rate must be positive"}
	}
	if estimatedDurationDays < 1 {
		return nil, &ValidationError{Msg: "bid: estimated duration must be at least one day"}
	}
	if coverLetter == "" {
		return nil, &ValidationError{Msg: "bid: cover letter is required"}
	}

	now := time.Now()
	return &Bid{
		ID:                    uuid.New(),
		ProjectID:             projectID,
		FreelancerID:          freelancerID,
		ProposedRate:          proposedRate,
		EstimatedDurationDays: estimatedDurationDays,
		CoverLetter:           coverLetter,
		Status:                BidStatusPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

type BidRepository interface {
	Create(ctx context.Context, b *Bid) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bid, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Bid, error)
	// ListForRanking returns the project's bids joined with each submitting
	// freelancer's current rating, in submission order.
	ListForRanking(ctx context.Context, projectID uuid.UUID) ([]RankedBid, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]*Bid, error)
	// UpdateStatusFrom moves a bid from one status to another and fails with
	// ErrConflict when the bid is no longer in the expected status. This is
	// the optimistic guard that makes concurrent accept/reject calls on the
	// same bid degrade to a conflict instead of double-applying.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to BidStatus) error
	// RejectOtherPending rejects every PENDING bid on the project except the
	// given one, in a single write. Returns the number of bids rejected.
	RejectOtherPending(ctx context.Context, projectID, exceptID uuid.UUID) (int64, error)
}
