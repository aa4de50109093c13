package nflverse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/nfl-projections/internal/loader"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
	"github.com/riskibarqy/nfl-projections/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://github.com/nflverse/nflverse-data/releases/download"
	releaseTag     = "player_stats"
	maxBodyBytes   = 64 << 20
)

var errNFLVerseTransient = crerr.New("nflverse transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches season-wide weekly player statistics published as CSV
// assets on nflverse release pages.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 60 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// SeasonStats downloads the weekly player-stats CSV for a full season.
// Concurrent calls for the same season share one request.
func (c *Client) SeasonStats(ctx context.Context, season int) (loader.Table, error) {
	if season <= 0 {
		return loader.Table{}, crerr.Wrapf(loader.ErrLoader, "invalid season %d", season)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nflverse circuit breaker rejected request", "state", c.breaker.State())
			return loader.Table{}, crerr.Wrap(loader.ErrLoader, "stats provider is temporarily unavailable")
		}
	}

	url := c.seasonURL(season)
	out, err, _ := c.flight.Do(url, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, url)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errNFLVerseTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		if loader.IsDataNotAvailable(err) {
			return loader.Table{}, err
		}
		return loader.Table{}, crerr.Wrapf(loader.ErrLoader, "fetch nflverse season %d: %v", season, err)
	}

	raw, ok := out.([]byte)
	if !ok {
		return loader.Table{}, crerr.Wrapf(loader.ErrLoader, "unexpected response payload type %T", out)
	}

	table, err := loader.ParseCSV(raw)
	if err != nil {
		return loader.Table{}, crerr.Wrapf(loader.ErrLoader, "parse nflverse csv: %v", err)
	}

	c.logger.InfoContext(ctx, "fetched nflverse season stats",
		"season", season, "rows", table.Len(), "columns", len(table.Columns))
	return table, nil
}

// Ping probes the current-year release asset without downloading it.
func (c *Client) Ping(ctx context.Context) error {
	url := c.seasonURL(time.Now().UTC().Year())
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("provider status=%d", resp.StatusCode)
	}
	return nil
}

func (c *Client) seasonURL(season int) string {
	return fmt.Sprintf("%s/%s/player_stats_%d.csv", c.baseURL, releaseTag, season)
}

func (c *Client) executeRequest(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "text/csv")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errNFLVerseTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errNFLVerseTransient, readErr)
			case resp.StatusCode == http.StatusNotFound:
				return nil, crerr.Wrapf(loader.ErrDataNotAvailable, "no season asset at %s", url)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d", errNFLVerseTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "nflverse request failed", "url", url, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
