package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/nfl-projections/internal/usecase"
	"github.com/shopspring/decimal"
)

func (h *Handler) ListProjections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProjections")
	defer span.End()

	values := r.URL.Query()

	season, ok, err := queryInt(values, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: season is required", usecase.ErrInvalidInput))
		return
	}
	week, ok, err := queryInt(values, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: week is required", usecase.ErrInvalidInput))
		return
	}

	query := usecase.ProjectionQuery{
		Season:        season,
		Week:          week,
		Source:        values.Get("source"),
		Position:      values.Get("position"),
		Team:          values.Get("team"),
		ScoringConfig: values.Get("scoring"),
		SortBy:        values.Get("sort_by"),
		Order:         values.Get("order"),
	}

	if raw := values.Get("min_points"); raw != "" {
		minPoints, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: min_points must be a number", usecase.ErrInvalidInput))
			return
		}
		query.MinPoints = &minPoints
	}
	if limit, ok, err := queryInt(values, "limit"); err != nil {
		writeError(ctx, w, err)
		return
	} else if ok {
		query.Limit = limit
	}
	if offset, ok, err := queryInt(values, "offset"); err != nil {
		writeError(ctx, w, err)
		return
	} else if ok {
		query.Offset = offset
	}

	page, err := h.queryService.ListProjections(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "list projections failed",
			"season", season, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, page)
}

func (h *Handler) ListScoringConfigs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScoringConfigs")
	defer span.End()

	configs, err := h.queryService.ScoringConfigs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list scoring configs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scoringConfigDTO, 0, len(configs))
	for _, cfg := range configs {
		items = append(items, scoringConfigDTO{
			ID:              cfg.ID,
			Name:            cfg.Name,
			PassYdsPerPoint: cfg.PassYdsPerPoint,
			PassTdPoints:    cfg.PassTdPoints,
			PassIntPoints:   cfg.PassIntPoints,
			RushYdsPerPoint: cfg.RushYdsPerPoint,
			RushTdPoints:    cfg.RushTdPoints,
			RecYdsPerPoint:  cfg.RecYdsPerPoint,
			RecTdPoints:     cfg.RecTdPoints,
			RecPoints:       cfg.RecPoints,
			FumblePoints:    cfg.FumblePoints,
			IsDefault:       cfg.IsDefault,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type scoringConfigDTO struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	PassYdsPerPoint decimal.Decimal `json:"pass_yds_per_point"`
	PassTdPoints    decimal.Decimal `json:"pass_td_points"`
	PassIntPoints   decimal.Decimal `json:"pass_int_points"`
	RushYdsPerPoint decimal.Decimal `json:"rush_yds_per_point"`
	RushTdPoints    decimal.Decimal `json:"rush_td_points"`
	RecYdsPerPoint  decimal.Decimal `json:"rec_yds_per_point"`
	RecTdPoints     decimal.Decimal `json:"rec_td_points"`
	RecPoints       decimal.Decimal `json:"rec_points"`
	FumblePoints    decimal.Decimal `json:"fumble_points"`
	IsDefault       bool            `json:"is_default"`
}
