package ffdp

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
)

const (
	defaultBaseURL = "https://raw.githubusercontent.com/fantasydatapros/data/master/weekly"
	maxRetries     = 3
	retryDelay     = 2 * time.Second
	maxBodyBytes   = 16 << 20
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client fetches per-week player stat CSVs from the Fantasy Football Data
// Pros GitHub repository. The source is flat files, so there is no breaker;
// a fixed short retry covers transient raw.githubusercontent hiccups.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
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
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// WeekStats downloads the CSV for one season week.
func (c *Client) WeekStats(ctx context.Context, season, week int) (loader.Table, error) {
	url := c.weekURL(season, week)

	raw, err := c.executeRequest(ctx, url, season, week)
	if err != nil {
		if loader.IsDataNotAvailable(err) {
			return loader.Table{}, err
		}
		return loader.Table{}, crerr.Wrapf(loader.ErrLoader, "fetch ffdp season %d week %d: %v", season, week, err)
	}

	table, err := loader.ParseCSV(raw)
	if err != nil {
		return loader.Table{}, crerr.Wrapf(loader.ErrLoader, "parse ffdp csv: %v", err)
	}
	if table.Empty() {
		return loader.Table{}, crerr.Wrapf(loader.ErrDataNotAvailable, "csv file is empty for season %d week %d", season, week)
	}

	c.logger.InfoContext(ctx, "fetched ffdp week stats",
		"season", season, "week", week, "rows", table.Len())
	return table, nil
}

func (c *Client) weekURL(season, week int) string {
	return fmt.Sprintf("%s/%d/week%d.csv", c.baseURL, season, week)
}

func (c *Client) executeRequest(ctx context.Context, url string, season, week int) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "text/csv")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("send request: %w", err)
			c.logger.WarnContext(ctx, "ffdp request failed",
				"url", url, "attempt", attempt, "error", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("read response body: %w", readErr)
			case resp.StatusCode == http.StatusNotFound:
				// Missing weeks are permanent, retrying will not help.
				return nil, crerr.Wrapf(loader.ErrDataNotAvailable, "data not available for season %d week %d (404)", season, week)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				lastErr = fmt.Errorf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == maxRetries {
			break
		}
		timer := time.NewTimer(retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, lastErr)
}
