package jobs

import "context"

// Repository persists job execution audit records.
type Repository interface {
	Insert(ctx context.Context, record Record) (Execution, error)
	List(ctx context.Context, jobID string, limit int) ([]Execution, error)
	LastByJob(ctx context.Context, jobID string) (Execution, bool, error)
}
