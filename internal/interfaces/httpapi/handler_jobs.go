package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/nfl-projections/internal/domain/jobs"
	"github.com/riskibarqy/nfl-projections/internal/usecase"
)

type triggerJobRequest struct {
	Season      int    `json:"season" validate:"required,gte=1999"`
	Week        int    `json:"week" validate:"required,gte=1,lte=18"`
	Source      string `json:"source" validate:"omitempty,max=40"`
	UseFallback *bool  `json:"fallback"`
}

type jobDTO struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Spec          string        `json:"spec"`
	NextRun       string        `json:"next_run"`
	LastExecution *executionDTO `json:"last_execution,omitempty"`
}

type executionDTO struct {
	ID         string          `json:"id"`
	JobID      string          `json:"job_id"`
	Status     string          `json:"status"`
	Season     *int            `json:"season,omitempty"`
	Week       *int            `json:"week,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	ExecutedAt string          `json:"executed_at"`
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJobs")
	defer span.End()

	if h.jobLister == nil {
		writeError(ctx, w, fmt.Errorf("%w: scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	infos := h.jobLister.Jobs()
	items := make([]jobDTO, 0, len(infos))
	for _, info := range infos {
		item := jobDTO{
			ID:      info.ID,
			Name:    info.Name,
			Spec:    info.Spec,
			NextRun: formatTime(info.NextRun),
		}

		last, err := h.jobService.LastExecution(ctx, info.ID)
		switch {
		case err == nil:
			dto := executionToDTO(last)
			item.LastExecution = &dto
		case errors.Is(err, usecase.ErrNotFound):
			// Never ran yet.
		default:
			h.logger.WarnContext(ctx, "load last execution failed", "job_id", info.ID, "error", err)
		}

		items = append(items, item)
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) TriggerJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerJob")
	defer span.End()

	var req triggerJobRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	useFallback := true
	if req.UseFallback != nil {
		useFallback = *req.UseFallback
	}

	result, err := h.jobService.ManualImport(ctx, req.Season, req.Week, req.Source, useFallback)
	if err != nil {
		h.logger.WarnContext(ctx, "manual import trigger failed",
			"season", req.Season, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	writeSuccess(ctx, w, status, result)
}

func (h *Handler) JobHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JobHistory")
	defer span.End()

	values := r.URL.Query()
	jobID := values.Get("job_id")
	limit, _, err := queryInt(values, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	executions, err := h.jobService.Executions(ctx, jobID, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list job executions failed", "job_id", jobID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]executionDTO, 0, len(executions))
	for _, execution := range executions {
		items = append(items, executionToDTO(execution))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func executionToDTO(execution jobs.Execution) executionDTO {
	dto := executionDTO{
		ID:         execution.ID,
		JobID:      execution.JobID,
		Status:     execution.Status,
		Season:     execution.Season,
		Week:       execution.Week,
		ExecutedAt: formatTime(execution.ExecutedAt),
	}
	if json.Valid([]byte(execution.Result)) {
		dto.Result = json.RawMessage(execution.Result)
	}
	return dto
}
