package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/nfl-projections/internal/loader"
	"github.com/riskibarqy/nfl-projections/internal/usecase"
)

type weeklyImportRequest struct {
	Season      int    `json:"season" validate:"required,gte=1999"`
	Week        int    `json:"week" validate:"required,gte=1,lte=18"`
	Source      string `json:"source" validate:"omitempty,max=40"`
	UseFallback *bool  `json:"fallback"`
}

type seasonImportRequest struct {
	Season      int    `json:"season" validate:"required,gte=1999"`
	StartWeek   int    `json:"start_week" validate:"required,gte=1,lte=18"`
	EndWeek     int    `json:"end_week" validate:"required,gte=1,lte=18"`
	Source      string `json:"source" validate:"omitempty,max=40"`
	UseFallback *bool  `json:"fallback"`
}

func (h *Handler) ImportWeekly(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportWeekly")
	defer span.End()

	var req weeklyImportRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if req.Source == "" {
		req.Source = loader.SourceNFLVerse
	}
	useFallback := true
	if req.UseFallback != nil {
		useFallback = *req.UseFallback
	}

	result := h.importService.ImportWeek(ctx, usecase.ImportParams{
		Season:      req.Season,
		Week:        req.Week,
		Source:      req.Source,
		UseFallback: useFallback,
	})

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
		h.logger.WarnContext(ctx, "weekly import failed",
			"season", req.Season, "week", req.Week, "errors", result.Errors)
	}
	writeSuccess(ctx, w, status, result)
}

func (h *Handler) ImportSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportSeason")
	defer span.End()

	var req seasonImportRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.StartWeek > req.EndWeek {
		writeError(ctx, w, fmt.Errorf("%w: start_week %d is after end_week %d", usecase.ErrInvalidInput, req.StartWeek, req.EndWeek))
		return
	}

	if req.Source == "" {
		req.Source = loader.SourceNFLVerse
	}
	useFallback := true
	if req.UseFallback != nil {
		useFallback = *req.UseFallback
	}

	results, err := h.importService.ImportSeason(ctx, req.Season, req.StartWeek, req.EndWeek, req.Source, useFallback)
	if err != nil {
		h.logger.WarnContext(ctx, "season import failed", "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, results)
}

func (h *Handler) ImportSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportSummary")
	defer span.End()

	summaries, err := h.queryService.WeekSummaries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list import summaries failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]weekSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, weekSummaryDTO{
			Season: s.Season,
			Week:   s.Week,
			Source: s.Source,
			Count:  s.Count,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListSources(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSources")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.importService.AvailableSources(ctx))
}

type weekSummaryDTO struct {
	Season int    `json:"season"`
	Week   int    `json:"week"`
	Source string `json:"source"`
	Count  int    `json:"count"`
}
