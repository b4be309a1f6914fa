package db

import (
	"context"

	"github.com/google/uuid"
)

// ProjectURLs returns the generic repository for the project_urls table
func (db *DB) ProjectURLs() *Collection[ProjectURL] {
	return NewCollection[ProjectURL](db, "project_urls")
}

// ListURLsByProject retrieves all tracked URLs registered for a project
func (db *DB) ListURLsByProject(ctx context.Context, projectID uuid.UUID) ([]ProjectURL, error) {
	return db.ProjectURLs().List(ctx, "project_id = $1", projectID)
}

// GetProjectURL retrieves a tracked URL by ID. Returns nil, nil when not
// found.
func (db *DB) GetProjectURL(ctx context.Context, urlID uuid.UUID) (*ProjectURL, error) {
	return db.ProjectURLs().Get(ctx, urlID)
}
