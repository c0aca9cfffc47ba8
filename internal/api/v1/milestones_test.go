package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/api/v1"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/marketplace"
)

func fixtureMilestone(projectID uuid.UUID) *domain.Milestone {
	now := time.Now()
	return &domain.Milestone{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     "Schema and migrations",
		Amount:    1500,
		SortOrder: 1,
		Status:    domain.MilestoneStatusPending,
		DueDate:   now.AddDate(0, 1, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ---------------------------------------------------------------------------
// POST /projects/{id}/milestones
// ---------------------------------------------------------------------------

func TestAddMilestone(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()
	clientID := uuid.New()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockMilestoneService{
			addFunc: func(_ context.Context, pid, cid uuid.UUID, params marketplace.AddMilestoneParams) (*domain.Milestone, error) {
				assert.Equal(t, projectID, pid)
				assert.Equal(t, clientID, cid)
				assert.Equal(t, "Schema and migrations", params.Title)
				assert.Equal(t, 1500.0, params.Amount)
				return fixtureMilestone(pid), nil
			},
		}
		v1.RegisterMilestoneRoutes(api, svc)

		resp := api.PostCtx(clientCtx(clientID), "/projects/"+projectID.String()+"/milestones", map[string]any{
			"title":      "Schema and migrations",
			"amount":     1500,
			"sort_order": 1,
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Milestone
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, domain.MilestoneStatusPending, body.Status)
		assert.Equal(t, projectID, body.ProjectID)
	})

	t.Run("not_owner", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockMilestoneService{
			addFunc: func(_ context.Context, _, _ uuid.UUID, _ marketplace.AddMilestoneParams) (*domain.Milestone, error) {
				return nil, marketplace.ErrNotProjectOwner
			},
		}
		v1.RegisterMilestoneRoutes(api, svc)

		resp := api.PostCtx(clientCtx(uuid.New()), "/projects/"+projectID.String()+"/milestones", map[string]any{
			"title":  "Nope",
			"amount": 100,
		})

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("freelancer_forbidden", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterMilestoneRoutes(api, &mockMilestoneService{})

		resp := api.PostCtx(freelancerCtx(uuid.New()), "/projects/"+projectID.String()+"/milestones", map[string]any{
			"title":  "Nope",
			"amount": 100,
		})

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// GET /projects/{id}/milestones
// ---------------------------------------------------------------------------

func TestListMilestones(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockMilestoneService{
			listByProjectFunc: func(_ context.Context, pid uuid.UUID) ([]*domain.Milestone, error) {
				assert.Equal(t, projectID, pid)
				return []*domain.Milestone{fixtureMilestone(pid)}, nil
			},
		}
		v1.RegisterMilestoneRoutes(api, svc)

		resp := api.GetCtx(clientCtx(uuid.New()), "/projects/"+projectID.String()+"/milestones")

		require.Equal(t, http.StatusOK, resp.Code)

		var body []*domain.Milestone
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body, 1)
	})

	t.Run("project_not_found", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockMilestoneService{
			listByProjectFunc: func(_ context.Context, _ uuid.UUID) ([]*domain.Milestone, error) {
				return nil, domain.ErrNotFound
			},
		}
		v1.RegisterMilestoneRoutes(api, svc)

		resp := api.GetCtx(clientCtx(uuid.New()), "/projects/"+uuid.New().String()+"/milestones")

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// PATCH /milestones/{id}/status
// ---------------------------------------------------------------------------

func TestUpdateMilestoneStatus(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		callerID := uuid.New()
		milestone := fixtureMilestone(uuid.New())
		_, api := humatest.New(t)
		svc := &mockMilestoneService{
			updateStatusFunc: func(_ context.Context, mid, cid uuid.UUID, status domain.MilestoneStatus) (*domain.Milestone, error) {
				assert.Equal(t, milestone.ID, mid)
				assert.Equal(t, callerID, cid)
				assert.Equal(t, domain.MilestoneStatusCompleted, status)
				milestone.Status = status
				return milestone, nil
			},
		}
		v1.RegisterMilestoneRoutes(api, svc)

		resp := api.PatchCtx(freelancerCtx(callerID), "/milestones/"+milestone.ID.String()+"/status", map[string]any{
			"status": "COMPLETED",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Milestone
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, domain.MilestoneStatusCompleted, body.Status)
	})

	t.Run("unknown_status_rejected_by_schema", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterMilestoneRoutes(api, &mockMilestoneService{})

		resp := api.PatchCtx(clientCtx(uuid.New()), "/milestones/"+uuid.New().String()+"/status", map[string]any{
			"status": "SHIPPED",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockMilestoneService{
			updateStatusFunc: func(_ context.Context, _, _ uuid.UUID, _ domain.MilestoneStatus) (*domain.Milestone, error) {
				return nil, marketplace.ErrNotProjectOwner
			},
		}
		v1.RegisterMilestoneRoutes(api, svc)

		resp := api.PatchCtx(clientCtx(uuid.New()), "/milestones/"+uuid.New().String()+"/status", map[string]any{
			"status": "IN_PROGRESS",
		})

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}
