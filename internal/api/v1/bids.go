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

type SubmitBidInput struct {
	ProjectID uuid.UUID `path:"id" doc:"Project ID"`
	Body      struct {
		ProposedRate          float64 `json:"proposed_rate" exclusiveMinimum:"0" doc:"Hourly rate offered by the freelancer"`
		EstimatedDurationDays int     `json:"estimated_duration_days" minimum:"1" doc:"Estimated duration in days"`
		CoverLetter           string  `json:"cover_letter" minLength:"1" maxLength:"5000" doc:"Pitch to the client"`
	}
}

type SubmitBidOutput struct {
	Body *domain.Bid
}

type ListProjectBidsInput struct {
	ProjectID uuid.UUID `path:"id" doc:"Project ID"`
	RankBy    string    `query:"rank_by" doc:"Ranking strategy: composite (default), price or rating"`
}

type ListProjectBidsOutput struct {
	Body []domain.RankedBid
}

type MyBidsOutput struct {
	Body []*domain.Bid
}

type BidDecisionInput struct {
	ID uuid.UUID `path:"id" doc:"Bid ID"`
}

type BidDecisionOutput struct {
	Body *domain.Bid
}

func RegisterBidRoutes(api huma.API, bidSvc BidService) {
	huma.Register(api, huma.Operation{
		OperationID: "submit-bid",
		Method:      http.MethodPost,
		Path:        "/projects/{id}/bids",
		Summary:     "Submit a bid on an open project",
		Tags:        []string{"Bids"},
	}, func(ctx context.Context, input *SubmitBidInput) (*SubmitBidOutput, error) {
		freelancerID, err := requireRole(ctx, domain.RoleFreelancer)
		if err != nil {
			return nil, err
		}

		bid, err := bidSvc.Submit(ctx, input.ProjectID, freelancerID, input.Body.ProposedRate, input.Body.EstimatedDurationDays, input.Body.CoverLetter)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("project not found")
			case errors.Is(err, marketplace.ErrProjectNotOpen):
				return nil, huma.Error409Conflict(marketplace.ErrProjectNotOpen.Error())
			case errors.Is(err, domain.ErrValidation):
				return nil, huma.Error422UnprocessableEntity("invalid bid", err)
			}
			return nil, huma.Error500InternalServerError("failed to submit bid")
		}

		return &SubmitBidOutput{Body: bid}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-project-bids",
		Method:      http.MethodGet,
		Path:        "/projects/{id}/bids",
		Summary:     "List bids on a project, ranked",
		Tags:        []string{"Bids"},
	}, func(ctx context.Context, input *ListProjectBidsInput) (*ListProjectBidsOutput, error) {
		if _, err := requireUser(ctx); err != nil {
			return nil, err
		}

		ranked, err := bidSvc.ListRanked(ctx, input.ProjectID, input.RankBy)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to list bids")
		}

		return &ListProjectBidsOutput{Body: ranked}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-my-bids",
		Method:      http.MethodGet,
		Path:        "/bids/mine",
		Summary:     "List the caller's own bids",
		Tags:        []string{"Bids"},
	}, func(ctx context.Context, _ *struct{}) (*MyBidsOutput, error) {
		freelancerID, err := requireRole(ctx, domain.RoleFreelancer)
		if err != nil {
			return nil, err
		}

		bids, err := bidSvc.ListByFreelancer(ctx, freelancerID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list bids")
		}

		return &MyBidsOutput{Body: bids}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "accept-bid",
		Method:      http.MethodPatch,
		Path:        "/bids/{id}/accept",
		Summary:     "Accept a bid, rejecting its pending siblings",
		Tags:        []string{"Bids"},
	}, func(ctx context.Context, input *BidDecisionInput) (*BidDecisionOutput, error) {
		clientID, err := requireRole(ctx, domain.RoleClient)
		if err != nil {
			return nil, err
		}

		bid, err := bidSvc.Accept(ctx, input.ID, clientID)
		if err != nil {
			return nil, mapBidDecisionError(err, marketplace.ErrBidNotPendingAccept)
		}

		return &BidDecisionOutput{Body: bid}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reject-bid",
		Method:      http.MethodPatch,
		Path:        "/bids/{id}/reject",
		Summary:     "Reject a pending bid",
		Tags:        []string{"Bids"},
	}, func(ctx context.Context, input *BidDecisionInput) (*BidDecisionOutput, error) {
		clientID, err := requireRole(ctx, domain.RoleClient)
		if err != nil {
			return nil, err
		}

		bid, err := bidSvc.Reject(ctx, input.ID, clientID)
		if err != nil {
			return nil, mapBidDecisionError(err, marketplace.ErrBidNotPendingReject)
		}

		return &BidDecisionOutput{Body: bid}, nil
	})
}

// mapBidDecisionError translates accept/reject failures into API errors.
// Both decisions share the same failure surface apart from their
// "not pending" sentinel.
func mapBidDecisionError(err, notPending error) error {
	var transitionErr *domain.InvalidTransitionError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound("bid not found")
	case errors.Is(err, marketplace.ErrNotProjectOwner):
		return huma.Error403Forbidden(marketplace.ErrNotProjectOwner.Error())
	case errors.Is(err, notPending):
		return huma.Error409Conflict(notPending.Error())
	case errors.As(err, &transitionErr):
		return huma.Error409Conflict(transitionErr.Error())
	}
	return huma.Error500InternalServerError("failed to process bid decision")
}
