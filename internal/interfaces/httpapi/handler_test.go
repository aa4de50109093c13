package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/nfl-projections/internal/domain/jobs"
	"github.com/riskibarqy/nfl-projections/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nfl-projections/internal/loader"
	"github.com/riskibarqy/nfl-projections/internal/platform/cache"
	"github.com/riskibarqy/nfl-projections/internal/platform/id"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
	"github.com/riskibarqy/nfl-projections/internal/scheduler"
	"github.com/riskibarqy/nfl-projections/internal/usecase"
)

type stubSource struct {
	tag   string
	table loader.Table
	err   error
}

func (s *stubSource) Tag() string         { return s.tag }
func (s *stubSource) Description() string { return "stub " + s.tag }

func (s *stubSource) LoadWeek(_ context.Context, _, _ int) (loader.Table, error) {
	if s.err != nil {
		return loader.Table{}, s.err
	}
	return s.table, nil
}

func (s *stubSource) Available(_ context.Context) bool { return s.err == nil }

type stubJobLister struct {
	infos []scheduler.JobInfo
}

func (s stubJobLister) Jobs() []scheduler.JobInfo { return s.infos }

func statsTable() loader.Table {
	return loader.Table{
		Columns: []string{"player_name", "recent_team", "position", "week", "passing_yards", "passing_tds", "receptions", "receiving_yards"},
		Rows: []loader.Row{
			{"player_name": "P.Mahomes", "recent_team": "KC", "position": "QB", "week": "1", "passing_yards": "300", "passing_tds": "3"},
			{"player_name": "J.Chase", "recent_team": "CIN", "position": "WR", "week": "1", "receptions": "5", "receiving_yards": "50"},
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	ids := id.NewRandomGenerator()
	playerRepo := memory.NewPlayerRepository(ids)
	projectionRepo := memory.NewProjectionRepository(playerRepo, ids)
	scoringRepo := memory.NewScoringConfigRepository()
	jobsRepo := memory.NewJobExecutionRepository(ids)

	registry := loader.NewRegistry(
		&stubSource{tag: loader.SourceNFLVerse, table: statsTable()},
		&stubSource{tag: loader.SourceFFDP},
	)

	logger := logging.NewNop()
	importSvc := usecase.NewImportService(registry, loader.NewMapper(), playerRepo, projectionRepo, logger)
	querySvc := usecase.NewProjectionQueryService(projectionRepo, scoringRepo, cache.NewStore(time.Minute), logger)
	jobSvc := usecase.NewJobService(importSvc, jobsRepo, logger)

	lister := stubJobLister{infos: []scheduler.JobInfo{{
		ID:      jobs.JobWeeklyImport,
		Name:    "Weekly NFL Data Import",
		Spec:    "0 8 * * 2",
		NextRun: time.Date(2024, 9, 10, 8, 0, 0, 0, time.UTC),
	}}}

	handler := NewHandler(importSvc, querySvc, jobSvc, lister, logger)
	return NewRouter(handler, logger, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		APIVersion string           `json:"apiVersion"`
		Data       json.RawMessage  `json:"data"`
		Error      *googleErrorBody `json:"error"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, googleAPIVersion, envelope.APIVersion)
	if out != nil {
		require.NotNil(t, envelope.Data)
		require.NoError(t, sonic.Unmarshal(envelope.Data, out))
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) googleErrorBody {
	t.Helper()

	var envelope struct {
		Error *googleErrorBody `json:"error"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	return *envelope.Error
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var data map[string]string
	decodeData(t, rec, &data)
	require.Equal(t, "ok", data["status"])
}

func TestImportWeeklyThenListProjections(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/imports/weekly", `{"season":2024,"week":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result usecase.ImportResult
	decodeData(t, rec, &result)
	require.True(t, result.Success)
	require.Equal(t, 2, result.PlayersImported)
	require.Equal(t, 2, result.ProjectionsImported)
	require.Equal(t, loader.SourceNFLVerse, result.Source)

	rec = doRequest(t, router, http.MethodGet, "/v1/projections?season=2024&week=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items []struct {
			PlayerName string          `json:"player_name"`
			Points     decimal.Decimal `json:"points"`
		} `json:"items"`
		Total         int    `json:"total"`
		ScoringConfig string `json:"scoring_config"`
	}
	decodeData(t, rec, &page)
	require.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	// Points descend by default: 300/25 + 3*4 = 24 beats 5 + 50/10 = 10.
	require.Equal(t, "P.Mahomes", page.Items[0].PlayerName)
	require.True(t, page.Items[0].Points.Equal(decimal.RequireFromString("24")), "got %s", page.Items[0].Points)
	require.Equal(t, "J.Chase", page.Items[1].PlayerName)
	require.True(t, page.Items[1].Points.Equal(decimal.RequireFromString("10")), "got %s", page.Items[1].Points)
}

func TestImportWeeklyValidation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/v1/imports/weekly", `{"season":2024}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_ARGUMENT", decodeError(t, rec).Status)
}

func TestImportSeasonRejectsReversedRange(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/v1/imports/season", `{"season":2024,"start_week":5,"end_week":2}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_ARGUMENT", decodeError(t, rec).Status)
}

func TestListProjectionsUnknownScoringConfig(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/projections?season=2024&week=1&scoring=nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", decodeError(t, rec).Status)
}

func TestListScoringConfigs(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/scoring-configs", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []scoringConfigDTO
	decodeData(t, rec, &items)
	require.Len(t, items, 3)

	defaults := 0
	for _, item := range items {
		if item.IsDefault {
			defaults++
		}
	}
	require.Equal(t, 1, defaults)
}

func TestListSources(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/sources", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []usecase.SourceStatus
	decodeData(t, rec, &items)
	require.Len(t, items, 2)
}

func TestTriggerJobRecordsExecution(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/jobs/trigger", `{"season":2024,"week":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result usecase.ImportResult
	decodeData(t, rec, &result)
	require.True(t, result.Success)

	rec = doRequest(t, router, http.MethodGet, "/v1/jobs/history?job_id="+jobs.JobManualImport, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var history []executionDTO
	decodeData(t, rec, &history)
	require.Len(t, history, 1)
	require.Equal(t, jobs.JobManualImport, history[0].JobID)
	require.Equal(t, jobs.StatusSuccess, history[0].Status)
	require.NotEmpty(t, history[0].Result)
}

func TestListJobs(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/v1/jobs", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []jobDTO
	decodeData(t, rec, &items)
	require.Len(t, items, 1)
	require.Equal(t, jobs.JobWeeklyImport, items[0].ID)
	require.Equal(t, "0 8 * * 2", items[0].Spec)
	require.Nil(t, items[0].LastExecution)
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "NFL Projections")
	require.Contains(t, rec.Body.String(), loader.SourceNFLVerse)
}
