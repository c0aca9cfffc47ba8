package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/marketplace"
)

type AddMilestoneInput struct {
	ProjectID uuid.UUID `path:"id" doc:"Project ID"`
	Body      struct {
		Title       string  `json:"title" minLength:"1" maxLength:"500" doc:"Milestone title"`
		Description *string `json:"description,omitempty" doc:"Milestone description"`
		Amount      float64 `json:"amount" minimum:"0" doc:"Payout amount for this milestone"`
		SortOrder   int     `json:"sort_order,omitempty" doc:"Display order within the project"`
	}
}

type AddMilestoneOutput struct {
	Body *domain.Milestone
}

type ListMilestonesInput struct {
	ProjectID uuid.UUID `path:"id" doc:"Project ID"`
}

type ListMilestonesOutput struct {
	Body []*domain.Milestone
}

type UpdateMilestoneStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Milestone ID"`
	Body struct {
		Status string `json:"status" enum:"PENDING,IN_PROGRESS,COMPLETED" doc:"Target status"`
	}
}

type UpdateMilestoneStatusOutput struct {
	Body *domain.Milestone
}

func RegisterMilestoneRoutes(api huma.API, milestoneSvc MilestoneService) {
	huma.Register(api, huma.Operation{
		OperationID: "add-milestone",
		Method:      http.MethodPost,
		Path:        "/projects/{id}/milestones",
		Summary:     "Add a milestone to an owned project",
		Tags:        []string{"Milestones"},
	}, func(ctx context.Context, input *AddMilestoneInput) (*AddMilestoneOutput, error) {
		clientID, err := requireRole(ctx, domain.RoleClient)
		if err != nil {
			return nil, err
		}

		milestone, err := milestoneSvc.Add(ctx, input.ProjectID, clientID, marketplace.AddMilestoneParams{
			Title:       input.Body.Title,
			Description: input.Body.Description,
			Amount:      input.Body.Amount,
			SortOrder:   input.Body.SortOrder,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("project not found")
			case errors.Is(err, marketplace.ErrNotProjectOwner):
				return nil, huma.Error403Forbidden(marketplace.ErrNotProjectOwner.Error())
			case errors.Is(err, domain.ErrValidation):
				return nil, huma.Error422UnprocessableEntity("invalid milestone", err)
			}
			return nil, huma.Error500InternalServerError("failed to add milestone")
		}

		return &AddMilestoneOutput{Body: milestone}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-milestones",
		Method:      http.MethodGet,
		Path:        "/projects/{id}/milestones",
		Summary:     "List a project's milestones",
		Tags:        []string{"Milestones"},
	}, func(ctx context.Context, input *ListMilestonesInput) (*ListMilestonesOutput, error) {
		if _, err := requireUser(ctx); err != nil {
			return nil, err
		}

		milestones, err := milestoneSvc.ListByProject(ctx, input.ProjectID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to list milestones")
		}

		return &ListMilestonesOutput{Body: milestones}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-milestone-status",
		Method:      http.MethodPatch,
		Path:        "/milestones/{id}/status",
		Summary:     "Update a milestone's status",
		Tags:        []string{"Milestones"},
	}, func(ctx context.Context, input *UpdateMilestoneStatusInput) (*UpdateMilestoneStatusOutput, error) {
		callerID, err := requireUser(ctx)
		if err != nil {
			return nil, err
		}

		milestone, err := milestoneSvc.UpdateStatus(ctx, input.ID, callerID, domain.MilestoneStatus(input.Body.Status))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("milestone not found")
			case errors.Is(err, marketplace.ErrNotProjectOwner):
				return nil, huma.Error403Forbidden(marketplace.ErrNotProjectOwner.Error())
			}
			return nil, huma.Error500InternalServerError("failed to update milestone status")
		}

		return &UpdateMilestoneStatusOutput{Body: milestone}, nil
	})
}
