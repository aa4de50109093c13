package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/riskibarqy/nfl-projections/internal/domain/jobs"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
	"github.com/riskibarqy/nfl-projections/internal/usecase"
)

// Weekly import runs Tuesday 08:00 UTC. Sunday and Monday games have
// settled by then and the stat files are published.
const weeklyImportSpec = "0 8 * * 2"

const jobTimeout = 10 * time.Minute

// JobInfo describes one registered job for API listings.
type JobInfo struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Spec    string    `json:"spec"`
	NextRun time.Time `json:"next_run"`
}

type weeklyRunner interface {
	RunWeeklyImport(ctx context.Context) usecase.ImportResult
}

// Scheduler owns the cron runner for background imports.
type Scheduler struct {
	cron     *cron.Cron
	jobSvc   weeklyRunner
	logger   *logging.Logger
	weeklyID cron.EntryID
}

func New(jobSvc weeklyRunner, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	runner := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return &Scheduler{
		cron:   runner,
		jobSvc: jobSvc,
		logger: logger,
	}
}

// Start registers the weekly import and begins ticking.
func (s *Scheduler) Start() error {
	id, err := s.cron.AddFunc(weeklyImportSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		s.jobSvc.RunWeeklyImport(ctx)
	})
	if err != nil {
		return err
	}
	s.weeklyID = id

	s.cron.Start()
	s.logger.Info("scheduler started",
		"job_id", jobs.JobWeeklyImport, "spec", weeklyImportSpec)
	return nil
}

// Shutdown stops scheduling and waits for a running job to finish, up to
// the context deadline.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.logger.Info("scheduler shutting down")
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Jobs lists registered jobs with their next scheduled run.
func (s *Scheduler) Jobs() []JobInfo {
	entries := s.cron.Entries()
	out := make([]JobInfo, 0, len(entries))
	for _, entry := range entries {
		info := JobInfo{
			ID:      jobs.JobWeeklyImport,
			Name:    "Weekly NFL Data Import",
			Spec:    weeklyImportSpec,
			NextRun: entry.Next,
		}
		out = append(out, info)
	}
	return out
}
