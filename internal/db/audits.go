package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Audits returns the generic repository for the audits table
func (db *DB) Audits() *Collection[Audit] {
	return NewCollection[Audit](db, "audits")
}

// AuditScores holds the sub-scores recorded for a single audit.
type AuditScores struct {
	Overall   float64 `json:"overall"`
	Content   float64 `json:"content"`
	Meta      float64 `json:"meta"`
	OnPage    float64 `json:"on_page"`
	Technical float64 `json:"technical"`
}

// CreateAudit records a scored audit snapshot for a tracked URL
func (db *DB) CreateAudit(ctx context.Context, urlID uuid.UUID, scores AuditScores) (*Audit, error) {
	return db.Audits().Create(ctx, map[string]any{
		"project_url_id":  urlID,
		"overall_score":   scores.Overall,
		"content_score":   scores.Content,
		"meta_score":      scores.Meta,
		"on_page_score":   scores.OnPage,
		"technical_score": scores.Technical,
	})
}

// GetAuditHistory retrieves all audits for a tracked URL, oldest first. The
// latest audit is the last element. A URL with no audits yields an empty
// slice, not an error.
func (db *DB) GetAuditHistory(ctx context.Context, urlID uuid.UUID) ([]Audit, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT * FROM audits WHERE project_url_id = $1 ORDER BY created_at ASC`,
		urlID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit history: %w", err)
	}
	audits, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[Audit])
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit history: %w", err)
	}
	if audits == nil {
		audits = []Audit{}
	}
	return audits, nil
}

// GetLatestAudit retrieves the single most recent audit across all tracked
// URLs of a project. Returns nil, nil when the project has no audits.
// Timestamp ties are broken by backend row order; there is deliberately no
// secondary sort, matching how dashboards consumed this before.
func (db *DB) GetLatestAudit(ctx context.Context, projectID uuid.UUID) (*Audit, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.* FROM audits a
		 JOIN project_urls u ON u.id = a.project_url_id
		 WHERE u.project_id = $1
		 ORDER BY a.created_at DESC
		 LIMIT 1`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest audit: %w", err)
	}
	audit, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[Audit])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest audit: %w", err)
	}
	return &audit, nil
}

// CountAuditedPages counts the distinct tracked URLs of a project that have
// at least one audit.
func (db *DB) CountAuditedPages(ctx context.Context, projectID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT a.project_url_id) FROM audits a
		 JOIN project_urls u ON u.id = a.project_url_id
		 WHERE u.project_id = $1`,
		projectID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audited pages: %w", err)
	}
	return count, nil
}
