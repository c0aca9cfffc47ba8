package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

type BidRepo struct {
	pool *pgxpool.Pool
}

func NewBidRepo(pool *pgxpool.Pool) *BidRepo {
	return &BidRepo{pool: pool}
}

const bidColumns = `id, project_id, freelancer_id, proposed_rate, estimated_duration_days,
	cover_letter, status, created_at, updated_at`

func (r *BidRepo) Create(ctx context.Context, b *domain.Bid) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO bids (id, project_id, freelancer_id, proposed_rate, estimated_duration_days,
		        cover_letter, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.ProjectID, b.FreelancerID, b.ProposedRate, b.EstimatedDurationDays,
		b.CoverLetter, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("bidRepo.Create: %w", err)
	}

	return nil
}

func (r *BidRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bid, error) {
	var b domain.Bid

	err := r.pool.QueryRow(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE id = $1`, id,
	).Scan(
		&b.ID, &b.ProjectID, &b.FreelancerID, &b.ProposedRate, &b.EstimatedDurationDays,
		&b.CoverLetter, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("bidRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("bidRepo.GetByID: %w", err)
	}

	return &b, nil
}

func (r *BidRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Bid, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE project_id = $1 ORDER BY created_at`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("bidRepo.ListByProject: %w", err)
	}
	defer rows.Close()

	return scanBids(rows, "bidRepo.ListByProject")
}

// ListForRanking joins each bid with the submitting freelancer's rating in
// submission order, so ranking ties stay deterministic.
func (r *BidRepo) ListForRanking(ctx context.Context, projectID uuid.UUID) ([]domain.RankedBid, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT b.id, b.project_id, b.freelancer_id, b.proposed_rate, b.estimated_duration_days,
		        b.cover_letter, b.status, b.created_at, b.updated_at,
		        COALESCE(fp.rating, 0)
		 FROM bids b
		 LEFT JOIN freelancer_profiles fp ON fp.user_id = b.freelancer_id
		 WHERE b.project_id = $1
		 ORDER BY b.created_at`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("bidRepo.ListForRanking: %w", err)
	}
	defer rows.Close()

	var bids []domain.RankedBid
	for rows.Next() {
		var rb domain.RankedBid
		if err := rows.Scan(
			&rb.ID, &rb.ProjectID, &rb.FreelancerID, &rb.ProposedRate, &rb.EstimatedDurationDays,
			&rb.CoverLetter, &rb.Status, &rb.CreatedAt, &rb.UpdatedAt,
			&rb.FreelancerRating,
		); err != nil {
			return nil, fmt.Errorf("bidRepo.ListForRanking: scan: %w", err)
		}
		bids = append(bids, rb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bidRepo.ListForRanking: rows: %w", err)
	}

	return bids, nil
}

func (r *BidRepo) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]*domain.Bid, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE freelancer_id = $1 ORDER BY created_at DESC`,
		freelancerID,
	)
	if err != nil {
		return nil, fmt.Errorf("bidRepo.ListByFreelancer: %w", err)
	}
	defer rows.Close()

	return scanBids(rows, "bidRepo.ListByFreelancer")
}

// UpdateStatusFrom is the optimistic guard: the status predicate makes a
// lost race update zero rows, reported as ErrConflict when the bid exists
// and ErrNotFound when it does not.
func (r *BidRepo) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to domain.BidStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bids SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return fmt.Errorf("bidRepo.UpdateStatusFrom: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bids WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("bidRepo.UpdateStatusFrom: %w", err)
		}
		if !exists {
			return fmt.Errorf("bidRepo.UpdateStatusFrom: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("bidRepo.UpdateStatusFrom: %w", domain.ErrConflict)
	}

	return nil
}

func (r *BidRepo) RejectOtherPending(ctx context.Context, projectID, exceptID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bids SET status = $1, updated_at = now()
		 WHERE project_id = $2 AND id <> $3 AND status = $4`,
		domain.BidStatusRejected, projectID, exceptID, domain.BidStatusPending,
	)
	if err != nil {
		return 0, fmt.Errorf("bidRepo.RejectOtherPending: %w", err)
	}

	return tag.RowsAffected(), nil
}

func scanBids(rows pgx.Rows, caller string) ([]*domain.Bid, error) {
	var bids []*domain.Bid
	for rows.Next() {
		var b domain.Bid
		if err := rows.Scan(
			&b.ID, &b.ProjectID, &b.FreelancerID, &b.ProposedRate, &b.EstimatedDurationDays,
			&b.CoverLetter, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		bids = append(bids, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return bids, nil
}
