package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
	"github.com/riskibarqy/nfl-projections/internal/scheduler"
	"github.com/riskibarqy/nfl-projections/internal/usecase"
)

// JobLister exposes the scheduler's registered jobs without tying the
// handler to a running cron instance.
type JobLister interface {
	Jobs() []scheduler.JobInfo
}

type Handler struct {
	importService *usecase.ImportService
	queryService  *usecase.ProjectionQueryService
	jobService    *usecase.JobService
	jobLister     JobLister
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	importService *usecase.ImportService,
	queryService *usecase.ProjectionQueryService,
	jobService *usecase.JobService,
	jobLister JobLister,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		importService: importService,
		queryService:  queryService,
		jobService:    jobService,
		jobLister:     jobLister,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func queryInt(values url.Values, key string) (int, bool, error) {
	raw := values.Get(key)
	if raw == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return parsed, true, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
