package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
)

type GetFreelancerInput struct {
	ID uuid.UUID `path:"id" doc:"Freelancer user ID"`
}

type GetFreelancerOutput struct {
	Body struct {
		Name    string                    `json:"name"`
		Profile *domain.FreelancerProfile `json:"profile"`
	}
}

type UpdateMyProfileInput struct {
	Body struct {
		HourlyRate   *float64 `json:"hourly_rate,omitempty" doc:"Default hourly rate"`
		Availability string   `json:"availability" enum:"AVAILABLE,BUSY,UNAVAILABLE" doc:"Current availability"`
		PortfolioURL *string  `json:"portfolio_url,omitempty" maxLength:"2048" doc:"Portfolio link"`
	}
}

type UpdateMyProfileOutput struct {
	Body *domain.FreelancerProfile
}

type MeOutput struct {
	Body *domain.User
}

func RegisterFreelancerRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-freelancer",
		Method:      http.MethodGet,
		Path:        "/freelancers/{id}",
		Summary:     "Get a freelancer's public profile",
		Tags:        []string{"Freelancers"},
	}, func(ctx context.Context, input *GetFreelancerInput) (*GetFreelancerOutput, error) {
		user, err := store.Users().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("freelancer not found")
			}
			return nil, huma.Error500InternalServerError("failed to get freelancer")
		}
		if user.Role != domain.RoleFreelancer {
			return nil, huma.Error404NotFound("freelancer not found")
		}

		profile, err := store.Profiles().GetByUserID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("freelancer not found")
			}
			return nil, huma.Error500InternalServerError("failed to get profile")
		}

		out := &GetFreelancerOutput{}
		out.Body.Name = user.Name
		out.Body.Profile = profile
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-my-profile",
		Method:      http.MethodPut,
		Path:        "/freelancers/me/profile",
		Summary:     "Update the caller's freelancer profile",
		Tags:        []string{"Freelancers"},
	}, func(ctx context.Context, input *UpdateMyProfileInput) (*UpdateMyProfileOutput, error) {
		userID, err := requireRole(ctx, domain.RoleFreelancer)
		if err != nil {
			return nil, err
		}

		profile, err := store.Profiles().GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("profile not found")
			}
			return nil, huma.Error500InternalServerError("failed to get profile")
		}

		profile.HourlyRate = input.Body.HourlyRate
		profile.Availability = domain.Availability(input.Body.Availability)
		profile.PortfolioURL = input.Body.PortfolioURL

		if err := store.Profiles().Update(ctx, profile); err != nil {
			return nil, huma.Error500InternalServerError("failed to update profile")
		}

		return &UpdateMyProfileOutput{Body: profile}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-me",
		Method:      http.MethodGet,
		Path:        "/users/me",
		Summary:     "Get the authenticated user",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, _ *struct{}) (*MeOutput, error) {
		userID, err := requireUser(ctx)
		if err != nil {
			return nil, err
		}

		user, err := store.Users().GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to get user")
		}

		user.PasswordHash = ""
		return &MeOutput{Body: user}, nil
	})
}
