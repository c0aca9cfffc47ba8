package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleFreelancer
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUser(email, passwordHash, name string, role Role) (*User, error) {
	if email == "" {
		return nil, &ValidationError{Msg: "user: email is required"}
	}
	if name == "" {
		return nil, &ValidationError{Msg: "user: name is required"}
	}
	if !role.Valid() {
		return nil, &ValidationError{Msg: "user: role must be client or freelancer"}
	}

	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type Availability string

const (
	AvailabilityAvailable   Availability = "AVAILABLE"
	AvailabilityBusy        Availability = "BUSY"
	AvailabilityUnavailable Availability = "UNAVAILABLE"
)

// FreelancerProfile carries the public marketplace identity of a
// freelancer. Rating feeds bid ranking.
type FreelancerProfile struct {
	UserID            uuid.UUID
	HourlyRate        *float64
	Availability      Availability
	PortfolioURL      *string
	Rating            float64
	CompletedProjects int
	OnTimeRate        float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type FreelancerProfileRepository interface {
	Create(ctx context.Context, p *FreelancerProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*FreelancerProfile, error)
	Update(ctx context.Context, p *FreelancerProfile) error
}
