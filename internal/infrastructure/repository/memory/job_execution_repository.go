package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/domain/jobs"
	"github.com/riskibarqy/nfl-projections/internal/platform/id"
)

type JobExecutionRepository struct {
	mu         sync.RWMutex
	executions []jobs.Execution
	ids        id.Generator
}

func NewJobExecutionRepository(ids id.Generator) *JobExecutionRepository {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	return &JobExecutionRepository{ids: ids}
}

func (r *JobExecutionRepository) Insert(_ context.Context, record jobs.Record) (jobs.Execution, error) {
	if err := record.Validate(); err != nil {
		return jobs.Execution{}, err
	}

	publicID, err := r.ids.NewID()
	if err != nil {
		return jobs.Execution{}, fmt.Errorf("generate execution id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	execution := jobs.Execution{
		ID:         publicID,
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

func (r *JobExecutionRepository) List(_ context.Context, jobID string, limit int) ([]jobs.Execution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]jobs.Execution, 0, limit)
	for i := len(r.executions) - 1; i >= 0; i-- {
		if jobID != "" && r.executions[i].JobID != jobID {
			continue
		}
		out = append(out, r.executions[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *JobExecutionRepository) LastByJob(_ context.Context, jobID string) (jobs.Execution, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.executions) - 1; i >= 0; i-- {
		if r.executions[i].JobID == jobID {
			return r.executions[i], true, nil
		}
	}
	return jobs.Execution{}, false, nil
}
