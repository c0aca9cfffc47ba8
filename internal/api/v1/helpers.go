package v1

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/domain"
	"github.com/kaloyan-gavrilov/Freelancer-Client-Dashboard/internal/server/middleware"
)

// requireUser pulls the authenticated user ID out of the request context.
// The auth middleware guarantees it on protected routes; a miss means the
// route was wired outside the authenticated group.
func requireUser(ctx context.Context) (uuid.UUID, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, huma.Error401Unauthorized("missing user context")
	}
	return userID, nil
}

// requireRole additionally checks the caller's account role.
func requireRole(ctx context.Context, role domain.Role) (uuid.UUID, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	got, ok := middleware.RoleFromContext(ctx)
	if !ok || got != string(role) {
		return uuid.Nil, huma.Error403Forbidden("this action requires the " + string(role) + " role")
	}
	return userID, nil
}
