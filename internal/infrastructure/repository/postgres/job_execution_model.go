package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/domain/jobs"
)

type jobExecutionTableModel struct {
	ID         int64         `db:"id"`
	PublicID   string        `db:"public_id"`
	JobID      string        `db:"job_id"`
	Status     string        `db:"status"`
	Result     string        `db:"result"`
	Season     sql.NullInt64 `db:"season"`
	Week       sql.NullInt64 `db:"week"`
	ExecutedAt time.Time     `db:"executed_at"`
}

func (m jobExecutionTableModel) toDomain() jobs.Execution {
	return jobs.Execution{
		ID:         m.PublicID,
		JobID:      m.JobID,
		Status:     m.Status,
		Result:     m.Result,
		Season:     nullInt64ToIntPtr(m.Season),
		Week:       nullInt64ToIntPtr(m.Week),
		ExecutedAt: m.ExecutedAt,
	}
}
