package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

type TimeEntryRepo struct {
	pool *pgxpool.Pool
}

func NewTimeEntryRepo(pool *pgxpool.Pool) *TimeEntryRepo {
	return &TimeEntryRepo{pool: pool}
}

func (r *TimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO time_entries (id, project_id, freelancer_id, milestone_id, hours,
		        description, work_date, billable_amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.ProjectID, e.FreelancerID, e.MilestoneID, e.Hours,
		e.Description, e.WorkDate, e.BillableAmount, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("timeEntryRepo.Create: %w", err)
	}

	return nil
}

func (r *TimeEntryRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.TimeEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, freelancer_id, milestone_id, hours, description, work_date, billable_amount, created_at
		 FROM time_entries WHERE project_id = $1
		 ORDER BY work_date, created_at`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("timeEntryRepo.ListByProject: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		if err := rows.Scan(
			&e.ID, &e.ProjectID, &e.FreelancerID, &e.MilestoneID, &e.Hours,
			&e.Description, &e.WorkDate, &e.BillableAmount, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("timeEntryRepo.ListByProject: scan: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("timeEntryRepo.ListByProject: rows: %w", err)
	}

	return entries, nil
}
