package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
	"github.com/riskibarqy/nfl-projections/internal/usecase"
)

type stubRunner struct{}

func (stubRunner) RunWeeklyImport(_ context.Context) usecase.ImportResult {
	return usecase.ImportResult{Success: true}
}

func TestSchedulerLifecycle(t *testing.T) {
	t.Parallel()

	s := New(stubRunner{}, logging.NewNop())
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	jobs := s.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(jobs))
	}
	if jobs[0].Spec != weeklyImportSpec {
		t.Fatalf("got spec %q", jobs[0].Spec)
	}
	if jobs[0].NextRun.IsZero() {
		t.Fatal("expected a next run time")
	}
	// Cron spec is Tuesday 08:00 UTC.
	if next := jobs[0].NextRun; next.Weekday() != time.Tuesday || next.Hour() != 8 {
		t.Fatalf("unexpected next run: %s", next)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
