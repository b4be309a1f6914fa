package stats

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCounter simulates the three count queries with configurable latencies
// and failures.
type fakeCounter struct {
	auditedPages int
	openTasks    int
	pendingTasks int

	auditedErr error
	openErr    error
	pendingErr error

	latency time.Duration

	pendingCalls atomic.Int32
}

func (f *fakeCounter) CountAuditedPages(ctx context.Context, _ uuid.UUID) (int, error) {
	if err := f.sleep(ctx); err != nil {
		return 0, err
	}
	return f.auditedPages, f.auditedErr
}

func (f *fakeCounter) CountOpenTasks(ctx context.Context, _ uuid.UUID) (int, error) {
	if err := f.sleep(ctx); err != nil {
		return 0, err
	}
	return f.openTasks, f.openErr
}

func (f *fakeCounter) CountPendingTasks(ctx context.Context, _, _ uuid.UUID) (int, error) {
	f.pendingCalls.Add(1)
	if err := f.sleep(ctx); err != nil {
		return 0, err
	}
	return f.pendingTasks, f.pendingErr
}

func (f *fakeCounter) sleep(ctx context.Context) error {
	if f.latency == 0 {
		return nil
	}
	select {
	case <-time.After(f.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestProjectStats_AllCounts(t *testing.T) {
	counter := &fakeCounter{auditedPages: 7, openTasks: 4, pendingTasks: 2}
	agg := New(counter)

	userID := uuid.New()
	stats, err := agg.ProjectStats(context.Background(), uuid.New(), &userID)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.PagesAudited)
	assert.Equal(t, 4, stats.OpenTasks)
	assert.Equal(t, 2, stats.MyPendingTasks)
}

func TestProjectStats_NoUserSkipsPendingQuery(t *testing.T) {
	counter := &fakeCounter{auditedPages: 3, openTasks: 1, pendingTasks: 9}
	agg := New(counter)

	stats, err := agg.ProjectStats(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.MyPendingTasks)
	assert.Equal(t, int32(0), counter.pendingCalls.Load(), "pending-task query must not be issued without a user")
}

func TestProjectStats_EmptyCountDefaultsToZero(t *testing.T) {
	counter := &fakeCounter{auditedPages: 5, openTasks: 2, pendingErr: pgx.ErrNoRows}
	agg := New(counter)

	userID := uuid.New()
	stats, err := agg.ProjectStats(context.Background(), uuid.New(), &userID)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.PagesAudited)
	assert.Equal(t, 0, stats.MyPendingTasks)
}

func TestProjectStats_HardFailureFailsAggregate(t *testing.T) {
	counter := &fakeCounter{openErr: errors.New("connection refused")}
	agg := New(counter)

	stats, err := agg.ProjectStats(context.Background(), uuid.New(), nil)
	require.Error(t, err)

	var aggErr *AggregationError
	assert.ErrorAs(t, err, &aggErr)
	assert.Equal(t, Zero(), stats)
}

func TestProjectStats_QueriesRunConcurrently(t *testing.T) {
	latency := 100 * time.Millisecond
	counter := &fakeCounter{latency: latency}
	agg := New(counter)

	userID := uuid.New()
	start := time.Now()
	_, err := agg.ProjectStats(context.Background(), uuid.New(), &userID)
	elapsed := time.Since(start)

	require.NoError(t, err)
	// Three sequential queries would take 3x the latency; the fan-out should
	// finish in roughly one.
	assert.Less(t, elapsed, 2*latency, "sub-queries appear to run sequentially")
}
