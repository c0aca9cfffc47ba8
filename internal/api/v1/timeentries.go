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

type LogTimeInput struct {
	ProjectID uuid.UUID `path:"id" doc:"Project ID"`
	Body      struct {
		MilestoneID *uuid.UUID `json:"milestone_id,omitempty" doc:"Optional milestone the work belongs to"`
		Hours       float64    `json:"hours" exclusiveMinimum:"0" maximum:"24" doc:"Hours worked, at most 24 per entry"`
		Description string     `json:"description" minLength:"1" maxLength:"2000" doc:"What was done"`
		WorkDate    time.Time  `json:"work_date" doc:"Day the work happened"`
	}
}

type LogTimeOutput struct {
	Body *domain.TimeEntry
}

type ListTimeEntriesInput struct {
	ProjectID uuid.UUID `path:"id" doc:"Project ID"`
}

type ListTimeEntriesOutput struct {
	Body struct {
		Entries []*domain.TimeEntry     `json:"entries"`
		Summary marketplace.TimeSummary `json:"summary"`
	}
}

func RegisterTimeEntryRoutes(api huma.API, timeSvc TimeEntryService) {
	huma.Register(api, huma.Operation{
		OperationID: "log-time",
		Method:      http.MethodPost,
		Path:        "/projects/{id}/time-entries",
		Summary:     "Log hours against an active hourly project",
		Tags:        []string{"TimeEntries"},
	}, func(ctx context.Context, input *LogTimeInput) (*LogTimeOutput, error) {
		freelancerID, err := requireRole(ctx, domain.RoleFreelancer)
		if err != nil {
			return nil, err
		}

		entry, err := timeSvc.Log(ctx, input.ProjectID, freelancerID, marketplace.LogTimeParams{
			MilestoneID: input.Body.MilestoneID,
			Hours:       input.Body.Hours,
			Description: input.Body.Description,
			WorkDate:    input.Body.WorkDate,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("project not found")
			case errors.Is(err, marketplace.ErrNotAssigned):
				return nil, huma.Error403Forbidden(marketplace.ErrNotAssigned.Error())
			case errors.Is(err, marketplace.ErrProjectNotHourly):
				return nil, huma.Error409Conflict(marketplace.ErrProjectNotHourly.Error())
			case errors.Is(err, marketplace.ErrProjectNotActive):
				return nil, huma.Error409Conflict(marketplace.ErrProjectNotActive.Error())
			case errors.Is(err, domain.ErrValidation):
				return nil, huma.Error422UnprocessableEntity("invalid time entry", err)
			}
			return nil, huma.Error500InternalServerError("failed to log time")
		}

		return &LogTimeOutput{Body: entry}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-time-entries",
		Method:      http.MethodGet,
		Path:        "/projects/{id}/time-entries",
		Summary:     "List a project's time entries with totals",
		Tags:        []string{"TimeEntries"},
	}, func(ctx context.Context, input *ListTimeEntriesInput) (*ListTimeEntriesOutput, error) {
		callerID, err := requireUser(ctx)
		if err != nil {
			return nil, err
		}

		entries, summary, err := timeSvc.ListByProject(ctx, input.ProjectID, callerID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("project not found")
			case errors.Is(err, marketplace.ErrNotProjectOwner):
				return nil, huma.Error403Forbidden("only the project parties can view time entries")
			}
			return nil, huma.Error500InternalServerError("failed to list time entries")
		}

		out := &ListTimeEntriesOutput{}
		out.Body.Entries = entries
		out.Body.Summary = summary
		return out, nil
	})
}
