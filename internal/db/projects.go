package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Projects returns the generic repository for the projects table
func (db *DB) Projects() *Collection[Project] {
	return NewCollection[Project](db, "projects")
}

// ListProjectsByTeam retrieves all projects belonging to a team
func (db *DB) ListProjectsByTeam(ctx context.Context, teamID uuid.UUID) ([]Project, error) {
	return db.Projects().List(ctx, "team_id = $1", teamID)
}

// ProjectTeam resolves the team a project belongs to. Returns uuid.Nil, nil
// when the project does not exist.
func (db *DB) ProjectTeam(ctx context.Context, projectID uuid.UUID) (uuid.UUID, error) {
	var teamID uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT team_id FROM projects WHERE id = $1`,
		projectID,
	).Scan(&teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("failed to resolve project team: %w", err)
	}
	return teamID, nil
}
