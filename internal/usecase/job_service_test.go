package usecase

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/nfl-projections/internal/domain/jobs"
	"github.com/riskibarqy/nfl-projections/internal/loader"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

type stubImporter struct {
	mu      sync.Mutex
	params  []ImportParams
	succeed bool
}

func (s *stubImporter) ImportWeek(_ context.Context, params ImportParams) ImportResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = append(s.params, params)
	result := ImportResult{
		Success:   s.succeed,
		Season:    params.Season,
		Week:      params.Week,
		Source:    params.Source,
		Errors:    []string{},
		Timestamp: time.Now().UTC(),
	}
	if !s.succeed {
		result.Errors = append(result.Errors, "boom")
	}
	return result
}

type stubJobsRepo struct {
	mu         sync.Mutex
	executions []jobs.Execution
	insertErr  error
}

func (r *stubJobsRepo) Insert(_ context.Context, record jobs.Record) (jobs.Execution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return jobs.Execution{}, r.insertErr
	}
	execution := jobs.Execution{
		ID:         "exec-" + strconv.Itoa(len(r.executions)+1),
		JobID:      record.JobID,
		Status:     record.Status,
		Result:     record.Result,
		Season:     record.Season,
		Week:       record.Week,
		ExecutedAt: time.Now().UTC(),
	}
	r.executions = append(r.executions, execution)
	return execution, nil
}

func (r *stubJobsRepo) List(_ context.Context, jobID string, limit int) ([]jobs.Execution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]jobs.Execution, 0, limit)
	for i := len(r.executions) - 1; i >= 0 && len(out) < limit; i-- {
		if jobID == "" || r.executions[i].JobID == jobID {
			out = append(out, r.executions[i])
		}
	}
	return out, nil
}

func (r *stubJobsRepo) LastByJob(_ context.Context, jobID string) (jobs.Execution, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.executions) - 1; i >= 0; i-- {
		if r.executions[i].JobID == jobID {
			return r.executions[i], true, nil
		}
	}
	return jobs.Execution{}, false, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRunWeeklyImportTargets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		now        time.Time
		wantSeason int
		wantWeek   int
	}{
		{"offseason", time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC), 2024, 18},
		{"september start", time.Date(2025, time.September, 9, 8, 0, 0, 0, time.UTC), 2025, 1},
		{"october", time.Date(2025, time.October, 14, 8, 0, 0, 0, time.UTC), 2025, 5},
		{"december", time.Date(2025, time.December, 16, 8, 0, 0, 0, time.UTC), 2025, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			importer := &stubImporter{succeed: true}
			svc := NewJobService(importer, &stubJobsRepo{}, logging.NewNop())
			svc.now = fixedClock(tt.now)

			result := svc.RunWeeklyImport(context.Background())
			if result.Season != tt.wantSeason || result.Week != tt.wantWeek {
				t.Fatalf("got season=%d week=%d, want %d/%d", result.Season, result.Week, tt.wantSeason, tt.wantWeek)
			}

			if len(importer.params) != 1 {
				t.Fatalf("importer invoked %d times, want 1", len(importer.params))
			}
			params := importer.params[0]
			if params.Source != loader.SourceNFLVerse || !params.UseFallback {
				t.Fatalf("unexpected params: %+v", params)
			}
		})
	}
}

func TestRunWeeklyImportRecordsExecution(t *testing.T) {
	t.Parallel()

	repo := &stubJobsRepo{}
	svc := NewJobService(&stubImporter{succeed: true}, repo, logging.NewNop())
	svc.RunWeeklyImport(context.Background())

	execution, found, err := repo.LastByJob(context.Background(), jobs.JobWeeklyImport)
	if err != nil || !found {
		t.Fatalf("expected recorded execution, found=%v err=%v", found, err)
	}
	if execution.Status != jobs.StatusSuccess {
		t.Fatalf("got status %q, want success", execution.Status)
	}
	if !strings.Contains(execution.Result, `"success":true`) {
		t.Fatalf("result payload missing success flag: %s", execution.Result)
	}
	if execution.Season == nil || execution.Week == nil {
		t.Fatal("expected season and week on the execution")
	}
}

func TestRunWeeklyImportRecordsFailure(t *testing.T) {
	t.Parallel()

	repo := &stubJobsRepo{}
	svc := NewJobService(&stubImporter{succeed: false}, repo, logging.NewNop())
	result := svc.RunWeeklyImport(context.Background())
	if result.Success {
		t.Fatal("expected failed result")
	}

	execution, found, _ := repo.LastByJob(context.Background(), jobs.JobWeeklyImport)
	if !found || execution.Status != jobs.StatusFailed {
		t.Fatalf("expected failed execution, got %+v", execution)
	}
}

func TestRunWeeklyImportSurvivesAuditFailure(t *testing.T) {
	t.Parallel()

	repo := &stubJobsRepo{insertErr: crerr.New("db down")}
	svc := NewJobService(&stubImporter{succeed: true}, repo, logging.NewNop())

	// Audit writes are best effort; the import result still comes back.
	result := svc.RunWeeklyImport(context.Background())
	if !result.Success {
		t.Fatalf("import result lost on audit failure: %+v", result)
	}
}

func TestManualImport(t *testing.T) {
	t.Parallel()

	importer := &stubImporter{succeed: true}
	repo := &stubJobsRepo{}
	svc := NewJobService(importer, repo, logging.NewNop())

	result, err := svc.ManualImport(context.Background(), 2024, 3, loader.SourceFFDP, false)
	if err != nil {
		t.Fatalf("ManualImport: %v", err)
	}
	if !result.Success || result.Week != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}

	execution, found, _ := repo.LastByJob(context.Background(), jobs.JobManualImport)
	if !found {
		t.Fatal("expected manual execution record")
	}
	if execution.Week == nil || *execution.Week != 3 {
		t.Fatalf("unexpected execution week: %+v", execution.Week)
	}
}

func TestManualImportDefaultsSource(t *testing.T) {
	t.Parallel()

	importer := &stubImporter{succeed: true}
	svc := NewJobService(importer, &stubJobsRepo{}, logging.NewNop())

	if _, err := svc.ManualImport(context.Background(), 2024, 1, "", true); err != nil {
		t.Fatalf("ManualImport: %v", err)
	}
	if importer.params[0].Source != loader.SourceNFLVerse {
		t.Fatalf("got source %q, want nflverse default", importer.params[0].Source)
	}
}

func TestManualImportValidation(t *testing.T) {
	t.Parallel()

	svc := NewJobService(&stubImporter{succeed: true}, &stubJobsRepo{}, logging.NewNop())

	if _, err := svc.ManualImport(context.Background(), 0, 1, "", false); !crerr.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for season 0, got %v", err)
	}
	if _, err := svc.ManualImport(context.Background(), 2024, 19, "", false); !crerr.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for week 19, got %v", err)
	}
}

func TestExecutionsAndLastExecution(t *testing.T) {
	t.Parallel()

	repo := &stubJobsRepo{}
	svc := NewJobService(&stubImporter{succeed: true}, repo, logging.NewNop())

	svc.RunWeeklyImport(context.Background())
	svc.RunWeeklyImport(context.Background())

	executions, err := svc.Executions(context.Background(), jobs.JobWeeklyImport, 10)
	if err != nil {
		t.Fatalf("Executions: %v", err)
	}
	if len(executions) != 2 {
		t.Fatalf("got %d executions, want 2", len(executions))
	}

	last, err := svc.LastExecution(context.Background(), jobs.JobWeeklyImport)
	if err != nil {
		t.Fatalf("LastExecution: %v", err)
	}
	if last.ID != executions[0].ID {
		t.Fatalf("last execution mismatch: %s vs %s", last.ID, executions[0].ID)
	}

	if _, err := svc.LastExecution(context.Background(), "unknown"); !crerr.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
