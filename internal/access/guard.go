package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// OwnershipStore resolves ownership-chain hops. Implementations return
// uuid.Nil with a nil error when the record does not exist, so the guard can
// tell "missing" apart from a query failure.
type OwnershipStore interface {
	TeamOwner(ctx context.Context, teamID uuid.UUID) (uuid.UUID, error)
	ProjectTeam(ctx context.Context, projectID uuid.UUID) (uuid.UUID, error)
}

// Guard verifies team ownership for the acting identity. It is stateless:
// every check re-resolves current ownership, because ownership can change
// between calls. Grants are never cached.
type Guard struct {
	store OwnershipStore
}

// NewGuard creates a Guard backed by the given store.
func NewGuard(store OwnershipStore) *Guard {
	return &Guard{store: store}
}

// RequireTeamOwnership verifies that userID owns the team directly.
func (g *Guard) RequireTeamOwnership(ctx context.Context, userID, teamID uuid.UUID) error {
	if userID == uuid.Nil {
		return &UnauthenticatedError{}
	}

	ownerID, err := g.store.TeamOwner(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to check team ownership: %w", err)
	}
	if ownerID == uuid.Nil {
		return &NotFoundError{Resource: "team", ID: teamID}
	}
	if ownerID != userID {
		return &ForbiddenError{Resource: "team", ID: teamID}
	}
	return nil
}

// RequireProjectAccess verifies that userID owns the team the project belongs
// to, resolving project → team → owner transitively.
func (g *Guard) RequireProjectAccess(ctx context.Context, userID, projectID uuid.UUID) error {
	if userID == uuid.Nil {
		return &UnauthenticatedError{}
	}

	teamID, err := g.store.ProjectTeam(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to resolve project: %w", err)
	}
	if teamID == uuid.Nil {
		return &NotFoundError{Resource: "project", ID: projectID}
	}

	return g.RequireTeamOwnership(ctx, userID, teamID)
}
