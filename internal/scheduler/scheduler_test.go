package scheduler

import (
	"context"
	"testing"
	"time"

	allocationdomain "github.com/smallbiznis/voltra/internal/allocation/domain"
	"github.com/smallbiznis/voltra/internal/clock"
	feederdomain "github.com/smallbiznis/voltra/internal/feeder/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFeederService struct {
	feederdomain.Service
	codes []string
}

func (s *stubFeederService) ListActiveCodes(ctx context.Context) ([]string, error) {
	return s.codes, nil
}

type stubAllocationService struct {
	allocationdomain.Service
	completed map[string]bool
	runs      []allocationdomain.RunRequest
	runErr    error
}

func (s *stubAllocationService) HasCompletedRun(ctx context.Context, feederCode, period string) (bool, error) {
	return s.completed[feederCode+":"+period], nil
}

func (s *stubAllocationService) Run(ctx context.Context, req allocationdomain.RunRequest) (allocationdomain.RunSummary, error) {
	if s.runErr != nil {
		return allocationdomain.RunSummary{}, s.runErr
	}
	s.runs = append(s.runs, req)
	s.completed[req.FeederCode+":"+req.Period] = true
	return allocationdomain.RunSummary{FeederCode: req.FeederCode, Period: req.Period}, nil
}

func newTestScheduler(t *testing.T, clk clock.Clock, feeders *stubFeederService, alloc *stubAllocationService) *Scheduler {
	t.Helper()
	sched, err := New(Params{
		Log:           zap.NewNop(),
		Clock:         clk,
		AllocationSvc: alloc,
		FeederSvc:     feeders,
	})
	require.NoError(t, err)
	return sched
}

func TestRunOnceClosesPreviousMonth(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 8, 3, 10, 0, 0, 0, time.UTC))
	feeders := &stubFeederService{codes: []string{"F1", "F2"}}
	alloc := &stubAllocationService{completed: map[string]bool{}}

	sched := newTestScheduler(t, clk, feeders, alloc)
	require.NoError(t, sched.RunOnce(context.Background()))

	require.Len(t, alloc.runs, 2)
	assert.Equal(t, "2025-07", alloc.runs[0].Period)
	assert.Equal(t, "F1", alloc.runs[0].FeederCode)
	assert.Equal(t, "F2", alloc.runs[1].FeederCode)
}

func TestRunOnceSkipsClosedFeeders(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 8, 3, 10, 0, 0, 0, time.UTC))
	feeders := &stubFeederService{codes: []string{"F1", "F2"}}
	alloc := &stubAllocationService{completed: map[string]bool{
		"F1:2025-07": true,
	}}

	sched := newTestScheduler(t, clk, feeders, alloc)
	require.NoError(t, sched.RunOnce(context.Background()))

	require.Len(t, alloc.runs, 1)
	assert.Equal(t, "F2", alloc.runs[0].FeederCode)
}

func TestRunOnceIsIdempotentAcrossTicks(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 8, 3, 10, 0, 0, 0, time.UTC))
	feeders := &stubFeederService{codes: []string{"F1"}}
	alloc := &stubAllocationService{completed: map[string]bool{}}

	sched := newTestScheduler(t, clk, feeders, alloc)
	require.NoError(t, sched.RunOnce(context.Background()))
	require.NoError(t, sched.RunOnce(context.Background()))

	assert.Len(t, alloc.runs, 1)
}

func TestRunOnceOpensNewMonthAfterRollover(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 8, 31, 23, 0, 0, 0, time.UTC))
	feeders := &stubFeederService{codes: []string{"F1"}}
	alloc := &stubAllocationService{completed: map[string]bool{}}

	sched := newTestScheduler(t, clk, feeders, alloc)
	require.NoError(t, sched.RunOnce(context.Background()))

	clk.Advance(2 * time.Hour)
	require.NoError(t, sched.RunOnce(context.Background()))

	require.Len(t, alloc.runs, 2)
	assert.Equal(t, "2025-07", alloc.runs[0].Period)
	assert.Equal(t, "2025-08", alloc.runs[1].Period)
}

func TestRunOnceToleratesRunInProgress(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 8, 3, 10, 0, 0, 0, time.UTC))
	feeders := &stubFeederService{codes: []string{"F1"}}
	alloc := &stubAllocationService{
		completed: map[string]bool{},
		runErr:    allocationdomain.ErrRunInProgress,
	}

	sched := newTestScheduler(t, clk, feeders, alloc)
	assert.NoError(t, sched.RunOnce(context.Background()))
}

func TestPreviousPeriod(t *testing.T) {
	assert.Equal(t, "2025-07", previousPeriod(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-12", previousPeriod(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)))
}
