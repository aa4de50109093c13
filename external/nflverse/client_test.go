package nflverse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/loader"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
	"github.com/riskibarqy/nfl-projections/internal/platform/resilience"
)

const seasonCSV = "player_name,position,week,passing_yards\n" +
	"P.Mahomes,QB,1,300\n" +
	"P.Mahomes,QB,2,250\n" +
	"J.Allen,QB,1,280\n"

func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})
}

func TestClientSeasonStats(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/player_stats/player_stats_2024.csv" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(seasonCSV))
	}))
	defer srv.Close()

	table, err := testClient(t, srv).SeasonStats(context.Background(), 2024)
	if err != nil {
		t.Fatalf("SeasonStats: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("got %d rows, want 3", table.Len())
	}
	if !table.HasColumn("week") || !table.HasColumn("passing_yards") {
		t.Fatalf("unexpected columns: %v", table.Columns)
	}
	if table.Rows[0]["player_name"] != "P.Mahomes" {
		t.Fatalf("unexpected first row: %v", table.Rows[0])
	}
}

func TestClientSeasonStatsNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testClient(t, srv).SeasonStats(context.Background(), 2031)
	if !loader.IsDataNotAvailable(err) {
		t.Fatalf("expected data-not-available for 404, got %v", err)
	}
}

func TestClientSeasonStatsRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(seasonCSV))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		MaxRetries:     2,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	table, err := client.SeasonStats(context.Background(), 2024)
	if err != nil {
		t.Fatalf("SeasonStats: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("got %d rows, want 3", table.Len())
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("got %d calls, want 2", got)
	}
}

func TestClientSeasonStatsCircuitOpens(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.SeasonStats(context.Background(), 2024); !loader.IsLoaderError(err) {
		t.Fatalf("expected loader error, got %v", err)
	}
	seen := calls.Load()

	// Breaker is open now; the request must be rejected before the wire.
	if _, err := client.SeasonStats(context.Background(), 2024); !loader.IsLoaderError(err) {
		t.Fatalf("expected loader error from open breaker, got %v", err)
	}
	if calls.Load() != seen {
		t.Fatalf("open breaker still sent a request: %d calls", calls.Load())
	}
}

func TestClientPing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := testClient(t, srv).Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
