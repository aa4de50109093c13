package jobs

import (
	"fmt"
	"time"
)

// Known job identifiers.
const (
	JobWeeklyImport = "weekly_import"
	JobManualImport = "manual_import"
)

// Execution statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusError   = "error"
)

// Execution is one audit record of a scheduled or manually triggered job
// run. Records are append-only.
type Execution struct {
	ID         string
	JobID      string
	Status     string
	Result     string
	Season     *int
	Week       *int
	ExecutedAt time.Time
}

// Record is the insert payload for a new execution row.
type Record struct {
	JobID  string
	Status string
	Result string
	Season *int
	Week   *int
}

func (r Record) Validate() error {
	if r.JobID == "" {
		return fmt.Errorf("job id is required")
	}
	switch r.Status {
	case StatusSuccess, StatusFailed, StatusError:
	default:
		return fmt.Errorf("unknown execution status %q", r.Status)
	}
	return nil
}
