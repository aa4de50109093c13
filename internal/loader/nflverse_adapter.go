package loader

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

// SourceNFLVerse is the primary data source tag.
const SourceNFLVerse = "nflverse"

// nflverse stat columns; a season table missing all of them is not usable.
var nflverseStatColumns = []string{
	"passing_yards",
	"rushing_yards",
	"receiving_yards",
	"completions",
	"attempts",
	"carries",
	"receptions",
}

// SeasonStatsProvider fetches a full season of weekly player statistics.
type SeasonStatsProvider interface {
	SeasonStats(ctx context.Context, season int) (Table, error)
	Ping(ctx context.Context) error
}

// NFLVerseAdapter adapts season-wide nflverse data to the per-week
// SourceAdapter contract by filtering on the week column.
type NFLVerseAdapter struct {
	provider SeasonStatsProvider
	logger   *logging.Logger
}

func NewNFLVerseAdapter(provider SeasonStatsProvider, logger *logging.Logger) *NFLVerseAdapter {
	if logger == nil {
		logger = logging.Default()
	}
	return &NFLVerseAdapter{provider: provider, logger: logger}
}

func (a *NFLVerseAdapter) Tag() string { return SourceNFLVerse }

func (a *NFLVerseAdapter) Description() string {
	return "NFLVerse historical player statistics"
}

func (a *NFLVerseAdapter) LoadWeek(ctx context.Context, season, week int) (Table, error) {
	table, err := a.provider.SeasonStats(ctx, season)
	if err != nil {
		return Table{}, err
	}
	if table.Empty() {
		return Table{}, errors.Wrapf(ErrDataNotAvailable, "no nflverse data for season %d", season)
	}
	if !table.HasColumn("week") {
		return Table{}, errors.Wrap(ErrLoader, "week column missing from nflverse data")
	}
	if !a.hasStatColumns(table) {
		return Table{}, errors.Wrap(ErrLoader, "no recognized stat columns in nflverse data")
	}

	wantWeek := strconv.Itoa(week)
	filtered := table.Filter(func(row Row) bool {
		return row["week"] == wantWeek
	})
	if filtered.Empty() {
		return Table{}, errors.Wrapf(ErrDataNotAvailable, "no nflverse data for season %d week %d", season, week)
	}

	a.logger.InfoContext(ctx, "loaded nflverse week",
		"season", season, "week", week, "rows", filtered.Len())
	return filtered, nil
}

func (a *NFLVerseAdapter) Available(ctx context.Context) bool {
	return a.provider.Ping(ctx) == nil
}

func (a *NFLVerseAdapter) hasStatColumns(table Table) bool {
	for _, col := range nflverseStatColumns {
		if table.HasColumn(col) {
			return true
		}
	}
	return false
}
