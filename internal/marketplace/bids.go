package marketplace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

// Sentinel errors for bid lifecycle rules. The messages are user facing:
// the transport layer surfaces them verbatim.
var (
	ErrProjectNotOpen      = errors.New("bids can only be placed on OPEN projects")
	ErrNotProjectOwner     = errors.New("you do not own this project")
	ErrBidNotPendingAccept = errors.New("only PENDING bids can be accepted")
	ErrBidNotPendingReject = errors.New("only PENDING bids can be rejected")
)

// BidService owns the bid lifecycle: submission against open projects,
// acceptance with sibling rejection, rejection, and ranked listing.
type BidService struct {
	bids     domain.BidRepository
	projects domain.ProjectRepository
	pubsub   PubSubPublisher
	notifier Notifier
}

func NewBidService(bids domain.BidRepository, projects domain.ProjectRepository, pubsub PubSubPublisher, notifier Notifier) *BidService {
	return &BidService{
		bids:     bids,
		projects: projects,
		pubsub:   pubsub,
		notifier: notifier,
	}
}

// Submit creates a PENDING bid on an OPEN project. A freelancer bidding
// twice on the same project is not rejected here; the UI is expected to
// prevent it.
func (s *BidService) Submit(ctx context.Context, projectID, freelancerID uuid.UUID, proposedRate float64, estimatedDurationDays int, coverLetter string) (*domain.Bid, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.BidService.Submit: get project: %w", err)
	}

	if project.Status != domain.ProjectStatusOpen {
		return nil, fmt.Errorf("marketplace.BidService.Submit: %w", ErrProjectNotOpen)
	}

	bid, err := domain.NewBid(projectID, freelancerID, proposedRate, estimatedDurationDays, coverLetter)
	if err != nil {
		return nil, fmt.Errorf("marketplace.BidService.Submit: %w", err)
	}

	if err := s.bids.Create(ctx, bid); err != nil {
		return nil, fmt.Errorf("marketplace.BidService.Submit: create bid: %w", err)
	}

	publishBidEvent(ctx, s.pubsub, EventBidSubmitted, bid)
	if s.notifier != nil {
		s.notifier.BidSubmitted(ctx, project, bid)
	}

	return bid, nil
}

// Accept marks the bid ACCEPTED, rejects every other PENDING bid on the
// project, and assigns the project to the winning freelancer at the bid's
// rate. Sibling rejections are written before the acceptance, so no reader
// ever observes two ACCEPTED bids on one project. The PENDING precondition
// doubles as an optimistic guard: a concurrent accept or reject of the same
// bid loses the race and gets a conflict.
func (s *BidService) Accept(ctx context.Context, bidID, clientID uuid.UUID) (*domain.Bid, error) {
	bid, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.BidService.Accept: get bid: %w", err)
	}

	project, err := s.projects.GetByID(ctx, bid.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.BidService.Accept: get project: %w", err)
	}

	if project.ClientID != clientID {
		return nil, fmt.Errorf("marketplace.BidService.Accept: %w", ErrNotProjectOwner)
	}
	if bid.Status != domain.BidStatusPending {
		return nil, fmt.Errorf("marketplace.BidService.Accept: %w", ErrBidNotPendingAccept)
	}
	if err := project.Status.AssertTransition(domain.ProjectStatusInProgress); err != nil {
		return nil, fmt.Errorf("marketplace.BidService.Accept: %w", err)
	}

	// Siblings first, then the winner, then the project. A crash between
	// steps leaves the target bid PENDING and the call safely retryable.
	if _, err := s.bids.RejectOtherPending(ctx, bid.ProjectID, bid.ID); err != nil {
		return nil, fmt.Errorf("marketplace.BidService.Accept: reject siblings: %w", err)
	}

	if err := s.bids.UpdateStatusFrom(ctx, bid.ID, domain.BidStatusPending, domain.BidStatusAccepted); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("marketplace.BidService.Accept: %w", ErrBidNotPendingAccept)
		}
		return nil, fmt.Errorf("marketplace.BidService.Accept: accept bid: %w", err)
	}

	if err := s.projects.Assign(ctx, project.ID, bid.FreelancerID, bid.ProposedRate, domain.ProjectStatusInProgress); err != nil {
		return nil, fmt.Errorf("marketplace.BidService.Accept: assign project: %w", err)
	}

	bid.Status = domain.BidStatusAccepted
	bid.UpdatedAt = time.Now()

	publishBidEvent(ctx, s.pubsub, EventBidAccepted, bid)
	if s.notifier != nil {
		s.notifier.BidAccepted(ctx, project, bid)
	}

	return bid, nil
}

// Reject marks a single PENDING bid REJECTED. The project and sibling bids
// are untouched.
func (s *BidService) Reject(ctx context.Context, bidID, clientID uuid.UUID) (*domain.Bid, error) {
	bid, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.BidService.Reject: get bid: %w", err)
	}

	project, err := s.projects.GetByID(ctx, bid.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.BidService.Reject: get project: %w", err)
	}

	if project.ClientID != clientID {
		return nil, fmt.Errorf("marketplace.BidService.Reject: %w", ErrNotProjectOwner)
	}
	if bid.Status != domain.BidStatusPending {
		return nil, fmt.Errorf("marketplace.BidService.Reject: %w", ErrBidNotPendingReject)
	}

	if err := s.bids.UpdateStatusFrom(ctx, bid.ID, domain.BidStatusPending, domain.BidStatusRejected); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("marketplace.BidService.Reject: %w", ErrBidNotPendingReject)
		}
		return nil, fmt.Errorf("marketplace.BidService.Reject: reject bid: %w", err)
	}

	bid.Status = domain.BidStatusRejected
	bid.UpdatedAt = time.Now()

	publishBidEvent(ctx, s.pubsub, EventBidRejected, bid)
	if s.notifier != nil {
		s.notifier.BidRejected(ctx, project, bid)
	}

	return bid, nil
}

// ListRanked returns the project's bids ordered by the named strategy.
// Unknown strategy names fall back to composite.
func (s *BidService) ListRanked(ctx context.Context, projectID uuid.UUID, rankBy string) ([]domain.RankedBid, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("marketplace.BidService.ListRanked: get project: %w", err)
	}

	bids, err := s.bids.ListForRanking(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.BidService.ListRanked: list bids: %w", err)
	}

	return domain.StrategyFor(rankBy).Rank(bids), nil
}

// ListByFreelancer returns all bids the freelancer has ever placed.
func (s *BidService) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]*domain.Bid, error) {
	bids, err := s.bids.ListByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, fmt.Errorf("marketplace.BidService.ListByFreelancer: %w", err)
	}
	return bids, nil
}
