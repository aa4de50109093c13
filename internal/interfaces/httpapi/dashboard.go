package httpapi

import (
	"html/template"
	"net/http"

	"github.com/riskibarqy/nfl-projections/internal/scheduler"
	"github.com/riskibarqy/nfl-projections/internal/usecase"
)

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>NFL Projections</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { margin-bottom: 0.25rem; }
h2 { margin-top: 2rem; border-bottom: 1px solid #ddd; padding-bottom: 0.25rem; }
table { border-collapse: collapse; margin-top: 0.5rem; }
th, td { border: 1px solid #ccc; padding: 0.35rem 0.75rem; text-align: left; }
th { background: #f4f4f4; }
.muted { color: #777; }
</style>
</head>
<body>
<h1>NFL Projections</h1>
<p class="muted">Weekly player stat imports and fantasy-point projections.</p>

<h2>Imported weeks</h2>
{{if .Summaries}}
<table>
<tr><th>Season</th><th>Week</th><th>Source</th><th>Projections</th></tr>
{{range .Summaries}}
<tr><td>{{.Season}}</td><td>{{.Week}}</td><td>{{.Source}}</td><td>{{.Count}}</td></tr>
{{end}}
</table>
{{else}}
<p class="muted">No data imported yet.</p>
{{end}}

<h2>Data sources</h2>
<table>
<tr><th>Name</th><th>Status</th><th>Description</th></tr>
{{range .Sources}}
<tr><td>{{.Name}}</td><td>{{.Status}}</td><td>{{.Description}}</td></tr>
{{end}}
</table>

<h2>Scheduled jobs</h2>
{{if .Jobs}}
<table>
<tr><th>Job</th><th>Schedule</th><th>Next run</th></tr>
{{range .Jobs}}
<tr><td>{{.Name}}</td><td>{{.Spec}}</td><td>{{.NextRun}}</td></tr>
{{end}}
</table>
{{else}}
<p class="muted">Scheduler disabled.</p>
{{end}}
</body>
</html>
`

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardHTML))

type dashboardData struct {
	Summaries []weekSummaryDTO
	Sources   []usecase.SourceStatus
	Jobs      []scheduler.JobInfo
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Dashboard")
	defer span.End()

	data := dashboardData{
		Sources: h.importService.AvailableSources(ctx),
	}
	if h.jobLister != nil {
		data.Jobs = h.jobLister.Jobs()
	}

	summaries, err := h.queryService.WeekSummaries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard summaries failed", "error", err)
		writeInternalError(ctx, w)
		return
	}
	for _, s := range summaries {
		data.Summaries = append(data.Summaries, weekSummaryDTO{
			Season: s.Season,
			Week:   s.Week,
			Source: s.Source,
			Count:  s.Count,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, data); err != nil {
		h.logger.ErrorContext(ctx, "dashboard render failed", "error", err)
	}
}
