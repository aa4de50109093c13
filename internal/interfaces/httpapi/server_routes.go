package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /{$}", handler.Dashboard)
}

func registerImportRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/imports/weekly", handler.ImportWeekly)
	mux.HandleFunc("POST /v1/imports/season", handler.ImportSeason)
	mux.HandleFunc("GET /v1/imports/summary", handler.ImportSummary)
	mux.HandleFunc("GET /v1/sources", handler.ListSources)
}

func registerProjectionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/projections", handler.ListProjections)
	mux.HandleFunc("GET /v1/scoring-configs", handler.ListScoringConfigs)
}

func registerJobRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/jobs", handler.ListJobs)
	mux.HandleFunc("POST /v1/jobs/trigger", handler.TriggerJob)
	mux.HandleFunc("GET /v1/jobs/history", handler.JobHistory)
}
