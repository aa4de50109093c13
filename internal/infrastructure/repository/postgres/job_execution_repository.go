package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nfl-projections/internal/domain/jobs"
	"github.com/riskibarqy/nfl-projections/internal/platform/id"
	qb "github.com/riskibarqy/nfl-projections/internal/platform/querybuilder"
)

// JobExecutionRepository stores the append-only job audit trail.
type JobExecutionRepository struct {
	db  *sqlx.DB
	ids id.Generator
}

var jobExecutionSelectColumns = []string{
	"id",
	"public_id",
	"job_id",
	"status",
	"result",
	"season",
	"week",
	"executed_at",
}

func NewJobExecutionRepository(db *sqlx.DB, ids id.Generator) *JobExecutionRepository {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	return &JobExecutionRepository{db: db, ids: ids}
}

func (r *JobExecutionRepository) Insert(ctx context.Context, record jobs.Record) (jobs.Execution, error) {
	if err := record.Validate(); err != nil {
		return jobs.Execution{}, err
	}

	publicID, err := r.ids.NewID()
	if err != nil {
		return jobs.Execution{}, fmt.Errorf("generate execution id: %w", err)
	}

	result := record.Result
	if result == "" {
		result = "{}"
	}

	query, args, err := qb.InsertInto("job_executions").
		Columns("public_id", "job_id", "status", "result", "season", "week").
		Values(publicID, record.JobID, record.Status, result, intPtrToNullInt64(record.Season), intPtrToNullInt64(record.Week)).
		Suffix("RETURNING " + joinColumns(jobExecutionSelectColumns)).
		ToSQL()
	if err != nil {
		return jobs.Execution{}, fmt.Errorf("build insert execution query: %w", err)
	}

	var row jobExecutionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return jobs.Execution{}, fmt.Errorf("insert execution: %w", err)
	}

	return row.toDomain(), nil
}

func (r *JobExecutionRepository) List(ctx context.Context, jobID string, limit int) ([]jobs.Execution, error) {
	builder := qb.Select(jobExecutionSelectColumns...).From("job_executions").
		OrderBy("executed_at DESC", "id DESC")
	if jobID != "" {
		builder = builder.Where(qb.Eq("job_id", jobID))
	}
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list executions query: %w", err)
	}

	var rows []jobExecutionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list executions: %w", err)
	}

	out := make([]jobs.Execution, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *JobExecutionRepository) LastByJob(ctx context.Context, jobID string) (jobs.Execution, bool, error) {
	query, args, err := qb.Select(jobExecutionSelectColumns...).From("job_executions").
		Where(qb.Eq("job_id", jobID)).
		OrderBy("executed_at DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return jobs.Execution{}, false, fmt.Errorf("build last execution query: %w", err)
	}

	var row jobExecutionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return jobs.Execution{}, false, nil
		}
		return jobs.Execution{}, false, fmt.Errorf("select last execution: %w", err)
	}

	return row.toDomain(), true, nil
}
