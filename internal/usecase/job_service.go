package usecase

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/nfl-projections/internal/domain/jobs"
	"github.com/riskibarqy/nfl-projections/internal/domain/projection"
	"github.com/riskibarqy/nfl-projections/internal/loader"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

type weeklyImporter interface {
	ImportWeek(ctx context.Context, params ImportParams) ImportResult
}

// JobService runs scheduled and manual imports and keeps their audit trail.
type JobService struct {
	importer weeklyImporter
	jobsRepo jobs.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewJobService(importer weeklyImporter, jobsRepo jobs.Repository, logger *logging.Logger) *JobService {
	if logger == nil {
		logger = logging.Default()
	}
	return &JobService{
		importer: importer,
		jobsRepo: jobsRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// RunWeeklyImport imports the most recently completed week, estimated from
// the calendar. Runs every Tuesday once game data has settled.
func (s *JobService) RunWeeklyImport(ctx context.Context) ImportResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.RunWeeklyImport")
	defer span.End()

	season, week := s.currentTarget()
	s.logger.InfoContext(ctx, "weekly import job starting", "season", season, "week", week)

	result := s.importer.ImportWeek(ctx, ImportParams{
		Season:      season,
		Week:        week,
		Source:      loader.SourceNFLVerse,
		UseFallback: true,
	})

	s.recordExecution(ctx, jobs.JobWeeklyImport, result)

	if result.Success {
		s.logger.InfoContext(ctx, "weekly import job complete",
			"season", season, "week", week,
			"players", result.PlayersImported, "projections", result.ProjectionsImported)
	} else {
		s.logger.ErrorContext(ctx, "weekly import job failed",
			"season", season, "week", week, "errors", result.Errors)
	}
	return result
}

// ManualImport runs an import for an explicit (season, week, source) and
// records it under the manual job id.
func (s *JobService) ManualImport(ctx context.Context, season, week int, source string, useFallback bool) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.ManualImport")
	defer span.End()

	if season <= 0 {
		return ImportResult{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if week < projection.MinWeek || week > projection.MaxWeek {
		return ImportResult{}, fmt.Errorf("%w: week must be between %d and %d", ErrInvalidInput, projection.MinWeek, projection.MaxWeek)
	}
	if source == "" {
		source = loader.SourceNFLVerse
	}

	result := s.importer.ImportWeek(ctx, ImportParams{
		Season:      season,
		Week:        week,
		Source:      source,
		UseFallback: useFallback,
	})
	s.recordExecution(ctx, jobs.JobManualImport, result)
	return result, nil
}

// Executions lists recent audit records for a job.
func (s *JobService) Executions(ctx context.Context, jobID string, limit int) ([]jobs.Execution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.Executions")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}
	executions, err := s.jobsRepo.List(ctx, jobID, limit)
	if err != nil {
		return nil, fmt.Errorf("list job executions: %w", err)
	}
	return executions, nil
}

// LastExecution returns the most recent audit record for a job.
func (s *JobService) LastExecution(ctx context.Context, jobID string) (jobs.Execution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.LastExecution")
	defer span.End()

	execution, found, err := s.jobsRepo.LastByJob(ctx, jobID)
	if err != nil {
		return jobs.Execution{}, fmt.Errorf("load last execution: %w", err)
	}
	if !found {
		return jobs.Execution{}, fmt.Errorf("%w: no executions for job %q", ErrNotFound, jobID)
	}
	return execution, nil
}

// currentTarget estimates the most recently completed NFL week from the
// calendar. Before September the season has not started, so the target is
// the final week of the previous season.
func (s *JobService) currentTarget() (season, week int) {
	now := s.now().UTC()
	if int(now.Month()) < 9 {
		return now.Year() - 1, projection.MaxWeek
	}
	week = (int(now.Month())-9)*4 + 1
	if week > projection.MaxWeek {
		week = projection.MaxWeek
	}
	return now.Year(), week
}

// recordExecution writes the audit row best effort. A logging failure must
// never sink the import itself.
func (s *JobService) recordExecution(ctx context.Context, jobID string, result ImportResult) {
	status := jobs.StatusFailed
	if result.Success {
		status = jobs.StatusSuccess
	}

	payload, err := sonic.MarshalString(result)
	if err != nil {
		status = jobs.StatusError
		payload = fmt.Sprintf(`{"error":%q}`, err.Error())
	}

	season := result.Season
	week := result.Week
	if _, err := s.jobsRepo.Insert(ctx, jobs.Record{
		JobID:  jobID,
		Status: status,
		Result: payload,
		Season: &season,
		Week:   &week,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to record job execution",
			"job_id", jobID, "error", err)
	}
}
