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

type MilestoneRepo struct {
	pool *pgxpool.Pool
}

func NewMilestoneRepo(pool *pgxpool.Pool) *MilestoneRepo {
	return &MilestoneRepo{pool: pool}
}

func (r *MilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO milestones (id, project_id, title, description, amount, sort_order,
		        status, due_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.ProjectID, m.Title, m.Description, m.Amount, m.SortOrder,
		m.Status, m.DueDate, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("milestoneRepo.Create: %w", err)
	}

	return nil
}

func (r *MilestoneRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Milestone, error) {
	var m domain.Milestone

	err := r.pool.QueryRow(ctx,
		`SELECT id, project_id, title, description, amount, sort_order, status, due_date, created_at, updated_at
		 FROM milestones WHERE id = $1`,
		id,
	).Scan(
		&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.Amount, &m.SortOrder,
		&m.Status, &m.DueDate, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("milestoneRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("milestoneRepo.GetByID: %w", err)
	}

	return &m, nil
}

func (r *MilestoneRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Milestone, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, title, description, amount, sort_order, status, due_date, created_at, updated_at
		 FROM milestones WHERE project_id = $1
		 ORDER BY sort_order, created_at`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("milestoneRepo.ListByProject: %w", err)
	}
	defer rows.Close()

	var milestones []*domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		if err := rows.Scan(
			&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.Amount, &m.SortOrder,
			&m.Status, &m.DueDate, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("milestoneRepo.ListByProject: scan: %w", err)
		}
		milestones = append(milestones, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("milestoneRepo.ListByProject: rows: %w", err)
	}

	return milestones, nil
}

func (r *MilestoneRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MilestoneStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE milestones SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("milestoneRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("milestoneRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}
