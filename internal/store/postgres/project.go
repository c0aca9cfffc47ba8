package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

const projectColumns = `id, client_id, freelancer_id, title, description, budget_min, budget_max,
	deadline, status, project_type, agreed_rate, created_at, updated_at`

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (id, client_id, freelancer_id, title, description, budget_min, budget_max,
		        deadline, status, project_type, agreed_rate, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.ClientID, p.FreelancerID, p.Title, p.Description, p.BudgetMin, p.BudgetMax,
		p.Deadline, p.Status, p.Type, p.AgreedRate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("projectRepo.Create: %w", err)
	}

	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)

	p, err := scanProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("projectRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("projectRepo.GetByID: %w", err)
	}

	return p, nil
}

// List builds the WHERE clause from the filter. Budget bounds select
// projects whose budget range overlaps the requested bound.
func (r *ProjectRepo) List(ctx context.Context, f domain.ProjectFilter) ([]*domain.Project, int64, error) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if f.Status != "" {
		add("status = ?", f.Status)
	}
	if f.ClientID != uuid.Nil {
		add("client_id = ?", f.ClientID)
	}
	if f.FreelancerID != uuid.Nil {
		add("freelancer_id = ?", f.FreelancerID)
	}
	if f.BudgetMin != nil {
		add("budget_max >= ?", *f.BudgetMin)
	}
	if f.BudgetMax != nil {
		add("budget_min <= ?", *f.BudgetMax)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM projects`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("projectRepo.List: count: %w", err)
	}

	limit := f.Limit
	offset := (f.Page - 1) * f.Limit

	rows, err := r.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects`+where+
			` ORDER BY created_at DESC LIMIT `+strconv.Itoa(limit)+` OFFSET `+strconv.Itoa(offset),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("projectRepo.List: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("projectRepo.List: scan: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("projectRepo.List: rows: %w", err)
	}

	return projects, total, nil
}

func (r *ProjectRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("projectRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("projectRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ProjectRepo) Assign(ctx context.Context, id, freelancerID uuid.UUID, agreedRate float64, status domain.ProjectStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET freelancer_id = $1, agreed_rate = $2, status = $3, updated_at = now()
		 WHERE id = $4`,
		freelancerID, agreedRate, status, id,
	)
	if err != nil {
		return fmt.Errorf("projectRepo.Assign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("projectRepo.Assign: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("projectRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("projectRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.ClientID, &p.FreelancerID, &p.Title, &p.Description, &p.BudgetMin, &p.BudgetMax,
		&p.Deadline, &p.Status, &p.Type, &p.AgreedRate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
