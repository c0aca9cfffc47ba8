package marketplace_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/marketplace"
)

func openProject(clientID uuid.UUID) *domain.Project {
	return &domain.Project{
		ID:       uuid.New(),
		ClientID: clientID,
		Title:    "API rewrite",
		Status:   domain.ProjectStatusOpen,
		Type:     domain.ProjectTypeHourly,
	}
}

func pendingBid(projectID, freelancerID uuid.UUID, rate float64) *domain.Bid {
	return &domain.Bid{
		ID:           uuid.New(),
		ProjectID:    projectID,
		FreelancerID: freelancerID,
		ProposedRate: rate,
		Status:       domain.BidStatusPending,
	}
}

func TestBidService_Submit(t *testing.T) {
	t.Parallel()

	clientID := uuid.New()
	freelancerID := uuid.New()

	t.Run("creates a PENDING bid on an OPEN project", func(t *testing.T) {
		t.Parallel()

		project := openProject(clientID)
		var created *domain.Bid

		bids := &mockBidRepo{
			createFunc: func(_ context.Context, b *domain.Bid) error {
				created = b
				return nil
			},
		}
		projects := &mockProjectRepo{
			getByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Project, error) {
				assert.Equal(t, project.ID, id)
				return project, nil
			},
		}
		pub := &capturePublisher{}

		svc := marketplace.NewBidService(bids, projects, pub, nil)
		bid, err := svc.Submit(context.Background(), project.ID, freelancerID, 75.5, 30, "I can start Monday.")
		require.NoError(t, err)

		assert.Equal(t, domain.BidStatusPending, bid.Status)
		assert.Equal(t, 75.5, bid.ProposedRate)
		assert.Same(t, bid, created)
		require.Len(t, pub.names, 1)
		assert.Equal(t, marketplace.ProjectBidsChannel(project.ID), pub.names[0])
	})

	t.Run("non-OPEN project is a conflict", func(t *testing.T) {
		t.Parallel()

		for _, status := range []domain.ProjectStatus{
			domain.ProjectStatusDraft,
			domain.ProjectStatusInProgress,
			domain.ProjectStatusCompleted,
			domain.ProjectStatusCancelled,
		} {
			project := openProject(clientID)
			project.Status = status

			projects := &mockProjectRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) {
					return project, nil
				},
			}

			svc := marketplace.NewBidService(&mockBidRepo{}, projects, nil, nil)
			_, err := svc.Submit(context.Background(), project.ID, freelancerID, 75.5, 30, "cover")
			require.ErrorIs(t, err, marketplace.ErrProjectNotOpen, "status %s", status)
		}
	})

	t.Run("missing project propagates not found", func(t *testing.T) {
		t.Parallel()

		projects := &mockProjectRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) {
				return nil, domain.ErrNotFound
			},
		}

		svc := marketplace.NewBidService(&mockBidRepo{}, projects, nil, nil)
		_, err := svc.Submit(context.Background(), uuid.New(), freelancerID, 75.5, 30, "cover")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid bid fields are rejected before any write", func(t *testing.T) {
		t.Parallel()

		project := openProject(clientID)
		projects := &mockProjectRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) {
				return project, nil
			},
		}

		svc := marketplace.NewBidService(&mockBidRepo{}, projects, nil, nil)
		_, err := svc.Submit(context.Background(), project.ID, freelancerID, 0, 30, "cover")
		assert.Error(t, err)
	})
}

func TestBidService_Accept(t *testing.T) {
	t.Parallel()

	clientID := uuid.New()
	freelancerID := uuid.New()

	t.Run("happy path rejects siblings then accepts then assigns", func(t *testing.T) {
		t.Parallel()

		project := openProject(clientID)
		bid := pendingBid(project.ID, freelancerID, 75.5)

		var calls []string

		bids := &mockBidRepo{
			getByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Bid, error) {
				require.Equal(t, bid.ID, id)
				return bid, nil
			},
			rejectOtherPendingFunc: func(_ context.Context, projectID, exceptID uuid.UUID) (int64, error) {
				assert.Equal(t, project.ID, projectID)
				assert.Equal(t, bid.ID, exceptID)
				calls = append(calls, "reject-siblings")
				return 2, nil
			},
			updateStatusFromFunc: func(_ context.Context, id uuid.UUID, from, to domain.BidStatus) error {
				assert.Equal(t, bid.ID, id)
				assert.Equal(t, domain.BidStatusPending, from)
				assert.Equal(t, domain.BidStatusAccepted, to)
				calls = append(calls, "accept-target")
				return nil
			},
		}
		projects := &mockProjectRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) {
				return project, nil
			},
			assignFunc: func(_ context.Context, id, fid uuid.UUID, rate float64, status domain.ProjectStatus) error {
				assert.Equal(t, project.ID, id)
				assert.Equal(t, freelancerID, fid)
				assert.Equal(t, 75.5, rate)
				assert.Equal(t, domain.ProjectStatusInProgress, status)
				calls = append(calls, "assign-project")
				return nil
			},
		}
		pub := &capturePublisher{}

		svc := marketplace.NewBidService(bids, projects, pub, nil)
		accepted, err := svc.Accept(context.Background(), bid.ID, clientID)
		require.NoError(t, err)

		assert.Equal(t, domain.BidStatusAccepted, accepted.Status)
		assert.Equal(t, []string{"reject-siblings", "accept-target", "assign-project"}, calls)
		assert.Len(t, pub.names, 1)
	})

	t.Run("wrong owner is forbidden", func(t *testing.T) {
		t.Parallel()

		project := openProject(clientID)
		bid := pendingBid(project.ID, freelancerID, 75.5)

		bids := &mockBidRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Bid, error) { return bid, nil },
		}
		projects := &mockProjectRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return project, nil },
		}

		svc := marketplace.NewBidService(bids, projects, nil, nil)
		_, err := svc.Accept(context.Background(), bid.ID, uuid.New())
		assert.ErrorIs(t, err, marketplace.ErrNotProjectOwner)
	})

	t.Run("double accept is a conflict", func(t *testing.T) {
		t.Parallel()

		project := openProject(clientID)
		project.Status = domain.ProjectStatusInProgress
		bid := pendingBid(project.ID, freelancerID, 75.5)
		bid.Status = domain.BidStatusAccepted

		bids := &mockBidRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Bid, error) { return bid, nil },
		}
		projects := &mockProjectRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return project, nil },
		}

		svc := marketplace.NewBidService(bids, projects, nil, nil)
		_, err := svc.Accept(context.Background(), bid.ID, clientID)
		assert.ErrorIs(t, err, marketplace.ErrBidNotPendingAccept)
	})

	t.Run("losing the optimistic race is a conflict", func(t *testing.T) {
		t.Parallel()

		project := openProject(clientID)
		bid := pendingBid(project.ID, freelancerID, 75.5)

		bids := &mockBidRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Bid, error) { return bid, nil },
			rejectOtherPendingFunc: func(_ context.Context, _, _ uuid.UUID) (int64, error) {
				return 0, nil
			},
			updateStatusFromFunc: func(_ context.Context, _ uuid.UUID, _, _ domain.BidStatus) error {
				// another request already moved the bid out of PENDING
				return domain.ErrConflict
			},
		}
		projects := &mockProjectRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return project, nil },
		}

		svc := marketplace.NewBidService(bids, projects, nil, nil)
		_, err := svc.Accept(context.Background(), bid.ID, clientID)
		assert.ErrorIs(t, err, marketplace.ErrBidNotPendingAccept)
	})

	t.Run("missing bid propagates not found", func(t *testing.T) {
		t.Parallel()

		bids := &mockBidRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Bid, error) {
				return nil, domain.ErrNotFound
			},
		}

		svc := marketplace.NewBidService(bids, &mockProjectRepo{}, nil, nil)
		_, err := svc.Accept(context.Background(), uuid.New(), clientID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBidService_Reject(t *testing.T) {
	t.Parallel()

	clientID := uuid.New()
	freelancerID := uuid.New()

	t.Run("rejects a pending bid without touching the project", func(t *testing.T) {
		t.Parallel()

		project := openProject(clientID)
		bid := pendingBid(project.ID, freelancerID, 60)

		bids := &mockBidRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Bid, error) { return bid, nil },
			updateStatusFromFunc: func(_ context.Context, id uuid.UUID, from, to domain.BidStatus) error {
				assert.Equal(t, bid.ID, id)
				assert.Equal(t, domain.BidStatusPending, from)
				assert.Equal(t, domain.BidStatusRejected, to)
				return nil
			},
		}
		// assignFunc and updateStatusFunc deliberately nil: any project
		// write would panic the test.
		projects := &mockProjectRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return project, nil },
		}

		svc := marketplace.NewBidService(bids, projects, nil, nil)
		rejected, err := svc.Reject(context.Background(), bid.ID, clientID)
		require.NoError(t, err)
		assert.Equal(t, domain.BidStatusRejected, rejected.Status)
	})

	t.Run("already rejected bid is a conflict", func(t *testing.T) {
		t.Parallel()

		project := openProject(clientID)
		bid := pendingBid(project.ID, freelancerID, 60)
		bid.Status = domain.BidStatusRejected

		bids := &mockBidRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Bid, error) { return bid, nil },
		}
		projects := &mockProjectRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return project, nil },
		}

		svc := marketplace.NewBidService(bids, projects, nil, nil)
		_, err := svc.Reject(context.Background(), bid.ID, clientID)
		assert.ErrorIs(t, err, marketplace.ErrBidNotPendingReject)
	})

	t.Run("wrong owner is forbidden", func(t *testing.T) {
		t.Parallel()

		project := openProject(clientID)
		bid := pendingBid(project.ID, freelancerID, 60)

		bids := &mockBidRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Bid, error) { return bid, nil },
		}
		projects := &mockProjectRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return project, nil },
		}

		svc := marketplace.NewBidService(bids, projects, nil, nil)
		_, err := svc.Reject(context.Background(), bid.ID, uuid.New())
		assert.ErrorIs(t, err, marketplace.ErrNotProjectOwner)
	})
}

func TestBidService_ListRanked(t *testing.T) {
	t.Parallel()

	clientID := uuid.New()

	newRanked := func(projectID uuid.UUID, rate, rating float64) domain.RankedBid {
		return domain.RankedBid{
			Bid: domain.Bid{
				ID:           uuid.New(),
				ProjectID:    projectID,
				ProposedRate: rate,
				Status:       domain.BidStatusPending,
			},
			FreelancerRating: rating,
		}
	}

	project := openProject(clientID)
	stored := []domain.RankedBid{
		newRanked(project.ID, 100, 4.0),
		newRanked(project.ID, 50, 3.5),
		newRanked(project.ID, 80, 4.5),
	}

	projects := &mockProjectRepo{
		getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) { return project, nil },
	}
	bids := &mockBidRepo{
		listForRankingFunc: func(_ context.Context, _ uuid.UUID) ([]domain.RankedBid, error) {
			return stored, nil
		},
	}

	svc := marketplace.NewBidService(bids, projects, nil, nil)

	tests := []struct {
		name   string
		rankBy string
		want   []float64
	}{
		{"composite", "composite", []float64{80, 100, 50}},
		{"price", "price", []float64{50, 80, 100}},
		{"rating", "rating", []float64{80, 100, 50}},
		{"empty defaults to composite", "", []float64{80, 100, 50}},
		{"unknown defaults to composite", "cheapest", []float64{80, 100, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := svc.ListRanked(context.Background(), project.ID, tt.rankBy)
			require.NoError(t, err)

			rates := make([]float64, len(got))
			for i, b := range got {
				rates[i] = b.ProposedRate
			}
			assert.Equal(t, tt.want, rates)
		})
	}

	t.Run("missing project propagates not found", func(t *testing.T) {
		t.Parallel()

		missing := &mockProjectRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) {
				return nil, domain.ErrNotFound
			},
		}

		svc := marketplace.NewBidService(bids, missing, nil, nil)
		_, err := svc.ListRanked(context.Background(), uuid.New(), "price")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
