package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/marketplace"
)

type CreateProjectInput struct {
	Body struct {
		Title       string    `json:"title" minLength:"1" maxLength:"500" doc:"Project title"`
		Description string    `json:"description,omitempty" doc:"Project description"`
		BudgetMin   float64   `json:"budget_min" minimum:"0" doc:"Lower budget bound"`
		BudgetMax   float64   `json:"budget_max" minimum:"0" doc:"Upper budget bound"`
		Deadline    time.Time `json:"deadline" doc:"Project deadline"`
		Type        string    `json:"type" enum:"FIXED,HOURLY" doc:"Billing type"`
		Publish     bool      `json:"publish,omitempty" doc:"Open for bidding immediately instead of saving as draft"`
	}
}

type CreateProjectOutput struct {
	Body *domain.Project
}

type ListProjectsInput struct {
	Status       string   `query:"status" doc:"Filter by status"`
	ClientID     string   `query:"client_id" format:"uuid" doc:"Filter by owning client"`
	FreelancerID string   `query:"freelancer_id" format:"uuid" doc:"Filter by assigned freelancer"`
	BudgetMin    *float64 `query:"budget_min" doc:"Only projects whose budget range reaches this bound"`
	BudgetMax    *float64 `query:"budget_max" doc:"Only projects whose budget range stays under this bound"`
	Page         int      `query:"page" doc:"Page number, 1-based"`
	Limit        int      `query:"limit" doc:"Page size"`
}

type ListProjectsOutput struct {
	Body struct {
		Projects []*domain.Project `json:"projects"`
		Total    int64             `json:"total"`
		Page     int               `json:"page"`
		Limit    int               `json:"limit"`
	}
}

type GetProjectInput struct {
	ID uuid.UUID `path:"id" doc:"Project ID"`
}

type GetProjectOutput struct {
	Body *domain.Project
}

type TransitionProjectStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Project ID"`
	Body struct {
		Status string `json:"status" minLength:"1" doc:"Target status"`
	}
}

type TransitionProjectStatusOutput struct {
	Body *domain.Project
}

type DeleteProjectInput struct {
	ID uuid.UUID `path:"id" doc:"Project ID"`
}

func RegisterProjectRoutes(api huma.API, projectSvc ProjectService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-project",
		Method:      http.MethodPost,
		Path:        "/projects",
		Summary:     "Create a new project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *CreateProjectInput) (*CreateProjectOutput, error) {
		clientID, err := requireRole(ctx, domain.RoleClient)
		if err != nil {
			return nil, err
		}

		project, err := projectSvc.Create(ctx, clientID, marketplace.CreateProjectParams{
			Title:       input.Body.Title,
			Description: input.Body.Description,
			BudgetMin:   input.Body.BudgetMin,
			BudgetMax:   input.Body.BudgetMax,
			Deadline:    input.Body.Deadline,
			Type:        domain.ProjectType(input.Body.Type),
			Publish:     input.Body.Publish,
		})
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return nil, huma.Error422UnprocessableEntity("invalid project", err)
			}
			return nil, huma.Error500InternalServerError("failed to create project")
		}

		return &CreateProjectOutput{Body: project}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/projects",
		Summary:     "Browse projects",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *ListProjectsInput) (*ListProjectsOutput, error) {
		filter := domain.ProjectFilter{
			Status:    domain.ProjectStatus(input.Status),
			BudgetMin: input.BudgetMin,
			BudgetMax: input.BudgetMax,
			Page:      input.Page,
			Limit:     input.Limit,
		}
		if input.ClientID != "" {
			id, err := uuid.Parse(input.ClientID)
			if err != nil {
				return nil, huma.Error422UnprocessableEntity("invalid client_id")
			}
			filter.ClientID = id
		}
		if input.FreelancerID != "" {
			id, err := uuid.Parse(input.FreelancerID)
			if err != nil {
				return nil, huma.Error422UnprocessableEntity("invalid freelancer_id")
			}
			filter.FreelancerID = id
		}

		projects, total, err := projectSvc.List(ctx, filter)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list projects")
		}

		out := &ListProjectsOutput{}
		out.Body.Projects = projects
		out.Body.Total = total
		out.Body.Page = max(filter.Page, 1)
		out.Body.Limit = filter.Limit
		if out.Body.Limit <= 0 {
			out.Body.Limit = marketplace.DefaultPageLimit
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-project",
		Method:      http.MethodGet,
		Path:        "/projects/{id}",
		Summary:     "Get a project by ID",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *GetProjectInput) (*GetProjectOutput, error) {
		project, err := projectSvc.Get(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to get project")
		}
		return &GetProjectOutput{Body: project}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transition-project-status",
		Method:      http.MethodPatch,
		Path:        "/projects/{id}/status",
		Summary:     "Transition the project lifecycle status",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *TransitionProjectStatusInput) (*TransitionProjectStatusOutput, error) {
		clientID, err := requireUser(ctx)
		if err != nil {
			return nil, err
		}

		project, err := projectSvc.ChangeStatus(ctx, input.ID, clientID, domain.ProjectStatus(input.Body.Status))
		if err != nil {
			var transitionErr *domain.InvalidTransitionError
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("project not found")
			case errors.Is(err, marketplace.ErrNotProjectOwner):
				return nil, huma.Error403Forbidden(marketplace.ErrNotProjectOwner.Error())
			case errors.As(err, &transitionErr):
				return nil, huma.Error409Conflict(transitionErr.Error())
			}
			return nil, huma.Error500InternalServerError("failed to transition project")
		}

		return &TransitionProjectStatusOutput{Body: project}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-project",
		Method:      http.MethodDelete,
		Path:        "/projects/{id}",
		Summary:     "Delete a draft project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *DeleteProjectInput) (*struct{}, error) {
		clientID, err := requireUser(ctx)
		if err != nil {
			return nil, err
		}

		if err := projectSvc.Remove(ctx, input.ID, clientID); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("project not found")
			case errors.Is(err, marketplace.ErrNotProjectOwner):
				return nil, huma.Error403Forbidden(marketplace.ErrNotProjectOwner.Error())
			case errors.Is(err, marketplace.ErrProjectNotDraft):
				return nil, huma.Error409Conflict(marketplace.ErrProjectNotDraft.Error())
			}
			return nil, huma.Error500InternalServerError("failed to delete project")
		}

		return nil, nil
	})
}
