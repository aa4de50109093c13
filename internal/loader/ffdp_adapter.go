package loader

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

// SourceFFDP is the backup data source tag.
const SourceFFDP = "ffdp"

// ffdp CSVs vary in casing across seasons; any of these identifies the
// player column.
var ffdpPlayerColumns = []string{"Player", "player", "player_name", "name"}

// WeekStatsProvider fetches one week of player statistics.
type WeekStatsProvider interface {
	WeekStats(ctx context.Context, season, week int) (Table, error)
}

// FFDPAdapter serves Fantasy Football Data Pros CSV files as a backup
// source.
type FFDPAdapter struct {
	provider WeekStatsProvider
	logger   *logging.Logger
}

func NewFFDPAdapter(provider WeekStatsProvider, logger *logging.Logger) *FFDPAdapter {
	if logger == nil {
		logger = logging.Default()
	}
	return &FFDPAdapter{provider: provider, logger: logger}
}

func (a *FFDPAdapter) Tag() string { return SourceFFDP }

func (a *FFDPAdapter) Description() string {
	return "Fantasy Football Data Pros CSV files"
}

func (a *FFDPAdapter) LoadWeek(ctx context.Context, season, week int) (Table, error) {
	table, err := a.provider.WeekStats(ctx, season, week)
	if err != nil {
		return Table{}, err
	}
	if table.Empty() {
		return Table{}, errors.Wrapf(ErrDataNotAvailable, "no ffdp data for season %d week %d", season, week)
	}
	if !a.hasPlayerColumn(table) {
		return Table{}, errors.Wrap(ErrLoader, "no player identifier column in ffdp data")
	}

	a.logger.InfoContext(ctx, "loaded ffdp week",
		"season", season, "week", week, "rows", table.Len())
	return table, nil
}

// Available always reports true: the source is plain HTTP with no session
// or credential to probe.
func (a *FFDPAdapter) Available(ctx context.Context) bool { return true }

func (a *FFDPAdapter) hasPlayerColumn(table Table) bool {
	for _, col := range ffdpPlayerColumns {
		if table.HasColumn(col) {
			return true
		}
	}
	return false
}
