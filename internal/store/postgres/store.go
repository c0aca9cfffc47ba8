package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

type Store struct {
	pool       *pgxpool.Pool
	users      *UserRepo
	profiles   *FreelancerProfileRepo
	projects   *ProjectRepo
	bids       *BidRepo
	milestones *MilestoneRepo
	entries    *TimeEntryRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:       pool,
		users:      NewUserRepo(pool),
		profiles:   NewFreelancerProfileRepo(pool),
		projects:   NewProjectRepo(pool),
		bids:       NewBidRepo(pool),
		milestones: NewMilestoneRepo(pool),
		entries:    NewTimeEntryRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Users() domain.UserRepository                   { return s.users }
func (s *Store) Profiles() domain.FreelancerProfileRepository   { return s.profiles }
func (s *Store) Projects() domain.ProjectRepository             { return s.projects }
func (s *Store) Bids() domain.BidRepository                     { return s.bids }
func (s *Store) Milestones() domain.MilestoneRepository         { return s.milestones }
func (s *Store) TimeEntries() domain.TimeEntryRepository        { return s.entries }
