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

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Create: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `WHERE email = $1`, email)
}

func (r *UserRepo) get(ctx context.Context, where string, arg any) (*domain.User, error) {
	var u domain.User

	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name, role, created_at, updated_at FROM users `+where,
		arg,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo: %w", err)
	}

	return &u, nil
}

type FreelancerProfileRepo struct {
	pool *pgxpool.Pool
}

func NewFreelancerProfileRepo(pool *pgxpool.Pool) *FreelancerProfileRepo {
	return &FreelancerProfileRepo{pool: pool}
}

func (r *FreelancerProfileRepo) Create(ctx context.Context, p *domain.FreelancerProfile) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO freelancer_profiles (user_id, hourly_rate, availability, portfolio_url,
		        rating, completed_projects, on_time_rate, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.UserID, p.HourlyRate, p.Availability, p.PortfolioURL,
		p.Rating, p.CompletedProjects, p.OnTimeRate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("freelancerProfileRepo.Create: %w", err)
	}

	return nil
}

func (r *FreelancerProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.FreelancerProfile, error) {
	var p domain.FreelancerProfile

	err := r.pool.QueryRow(ctx,
		`SELECT user_id, hourly_rate, availability, portfolio_url, rating,
		        completed_projects, on_time_rate, created_at, updated_at
		 FROM freelancer_profiles WHERE user_id = $1`,
		userID,
	).Scan(
		&p.UserID, &p.HourlyRate, &p.Availability, &p.PortfolioURL, &p.Rating,
		&p.CompletedProjects, &p.OnTimeRate, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("freelancerProfileRepo.GetByUserID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("freelancerProfileRepo.GetByUserID: %w", err)
	}

	return &p, nil
}

func (r *FreelancerProfileRepo) Update(ctx context.Context, p *domain.FreelancerProfile) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE freelancer_profiles
		 SET hourly_rate = $1, availability = $2, portfolio_url = $3, rating = $4,
		     completed_projects = $5, on_time_rate = $6, updated_at = now()
		 WHERE user_id = $7`,
		p.HourlyRate, p.Availability, p.PortfolioURL, p.Rating,
		p.CompletedProjects, p.OnTimeRate, p.UserID,
	)
	if err != nil {
		return fmt.Errorf("freelancerProfileRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("freelancerProfileRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}
