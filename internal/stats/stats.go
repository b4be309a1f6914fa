// Package stats rolls audit and task counts into project-level dashboard
// snapshots.
package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

// ProjectStats is an ephemeral aggregate recomputed on demand; it is never
// persisted and all counts are non-negative.
type ProjectStats struct {
	PagesAudited   int `json:"pages_audited"`
	OpenTasks      int `json:"open_tasks"`
	MyPendingTasks int `json:"my_pending_tasks"`
}

// Zero is the snapshot callers substitute when aggregation fails outright,
// so dashboards render instead of stalling.
func Zero() ProjectStats {
	return ProjectStats{}
}

// Counter provides the three independent count queries the aggregate is
// built from.
type Counter interface {
	CountAuditedPages(ctx context.Context, projectID uuid.UUID) (int, error)
	CountOpenTasks(ctx context.Context, projectID uuid.UUID) (int, error)
	CountPendingTasks(ctx context.Context, projectID, userID uuid.UUID) (int, error)
}

// AggregationError indicates the stats aggregate could not be computed.
type AggregationError struct {
	ProjectID uuid.UUID
	Cause     error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("failed to aggregate stats for project %s: %v", e.ProjectID, e.Cause)
}

func (e *AggregationError) Unwrap() error {
	return e.Cause
}

// Aggregator computes project statistics.
type Aggregator struct {
	counter Counter
}

// New creates an Aggregator over the given counter.
func New(counter Counter) *Aggregator {
	return &Aggregator{counter: counter}
}

// ProjectStats runs the three count lookups concurrently and joins them into
// one snapshot. Running them sequentially would triple the end-to-end
// latency. A nil userID defines MyPendingTasks as 0 without issuing the
// assignment query. A query that finds nothing counts as zero; only a hard
// query failure fails the whole aggregate.
func (a *Aggregator) ProjectStats(ctx context.Context, projectID uuid.UUID, userID *uuid.UUID) (ProjectStats, error) {
	var stats ProjectStats

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := a.counter.CountAuditedPages(gCtx, projectID)
		if err != nil {
			return softenNoRows(err)
		}
		stats.PagesAudited = count
		return nil
	})

	g.Go(func() error {
		count, err := a.counter.CountOpenTasks(gCtx, projectID)
		if err != nil {
			return softenNoRows(err)
		}
		stats.OpenTasks = count
		return nil
	})

	if userID != nil {
		uid := *userID
		g.Go(func() error {
			count, err := a.counter.CountPendingTasks(gCtx, projectID, uid)
			if err != nil {
				return softenNoRows(err)
			}
			stats.MyPendingTasks = count
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Zero(), &AggregationError{ProjectID: projectID, Cause: err}
	}
	return stats, nil
}

// softenNoRows treats an empty count result as zero rather than a failure;
// a query returning no error but no count is indistinguishable from zero.
func softenNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}
