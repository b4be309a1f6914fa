package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Teams returns the generic repository for the teams table
func (db *DB) Teams() *Collection[Team] {
	return NewCollection[Team](db, "teams")
}

// ListTeamsByOwner retrieves all teams owned by a user
func (db *DB) ListTeamsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Team, error) {
	return db.Teams().List(ctx, "owner_id = $1", ownerID)
}

// TeamOwner resolves the owning identity of a team. Returns uuid.Nil, nil
// when the team does not exist, so callers can distinguish "missing team"
// from a query failure.
func (db *DB) TeamOwner(ctx context.Context, teamID uuid.UUID) (uuid.UUID, error) {
	var ownerID uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT owner_id FROM teams WHERE id = $1`,
		teamID,
	).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("failed to resolve team owner: %w", err)
	}
	return ownerID, nil
}
