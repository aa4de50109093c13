package loader

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

type stubSeasonProvider struct {
	table   Table
	err     error
	pingErr error
	calls   int
}

func (s *stubSeasonProvider) SeasonStats(ctx context.Context, season int) (Table, error) {
	s.calls++
	return s.table, s.err
}

func (s *stubSeasonProvider) Ping(ctx context.Context) error { return s.pingErr }

type stubWeekProvider struct {
	table Table
	err   error
}

func (s *stubWeekProvider) WeekStats(ctx context.Context, season, week int) (Table, error) {
	return s.table, s.err
}

func seasonTable() Table {
	return Table{
		Columns: []string{"player_name", "position", "week", "passing_yards"},
		Rows: []Row{
			{"player_name": "P.Mahomes", "position": "QB", "week": "1", "passing_yards": "300"},
			{"player_name": "P.Mahomes", "position": "QB", "week": "2", "passing_yards": "250"},
			{"player_name": "J.Allen", "position": "QB", "week": "1", "passing_yards": "280"},
		},
	}
}

func TestNFLVerseAdapterFiltersWeek(t *testing.T) {
	t.Parallel()

	adapter := NewNFLVerseAdapter(&stubSeasonProvider{table: seasonTable()}, logging.NewNop())
	got, err := adapter.LoadWeek(context.Background(), 2024, 1)
	if err != nil {
		t.Fatalf("LoadWeek: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("got %d rows, want 2", got.Len())
	}
	for _, row := range got.Rows {
		if row["week"] != "1" {
			t.Fatalf("row leaked from another week: %v", row)
		}
	}
}

func TestNFLVerseAdapterEmptyWeek(t *testing.T) {
	t.Parallel()

	adapter := NewNFLVerseAdapter(&stubSeasonProvider{table: seasonTable()}, logging.NewNop())
	_, err := adapter.LoadWeek(context.Background(), 2024, 9)
	if !IsDataNotAvailable(err) {
		t.Fatalf("expected data-not-available, got %v", err)
	}
}

func TestNFLVerseAdapterMissingWeekColumn(t *testing.T) {
	t.Parallel()

	table := Table{
		Columns: []string{"player_name", "position", "passing_yards"},
		Rows:    []Row{{"player_name": "P.Mahomes", "position": "QB", "passing_yards": "300"}},
	}
	adapter := NewNFLVerseAdapter(&stubSeasonProvider{table: table}, logging.NewNop())
	_, err := adapter.LoadWeek(context.Background(), 2024, 1)
	if !IsLoaderError(err) || IsDataNotAvailable(err) {
		t.Fatalf("expected structural loader error, got %v", err)
	}
}

func TestNFLVerseAdapterNoStatColumns(t *testing.T) {
	t.Parallel()

	table := Table{
		Columns: []string{"player_name", "position", "week"},
		Rows:    []Row{{"player_name": "P.Mahomes", "position": "QB", "week": "1"}},
	}
	adapter := NewNFLVerseAdapter(&stubSeasonProvider{table: table}, logging.NewNop())
	_, err := adapter.LoadWeek(context.Background(), 2024, 1)
	if !IsLoaderError(err) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestNFLVerseAdapterPropagatesProviderError(t *testing.T) {
	t.Parallel()

	providerErr := errors.Wrap(ErrLoader, "connection refused")
	adapter := NewNFLVerseAdapter(&stubSeasonProvider{err: providerErr}, logging.NewNop())
	_, err := adapter.LoadWeek(context.Background(), 2024, 1)
	if !IsLoaderError(err) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestNFLVerseAdapterAvailable(t *testing.T) {
	t.Parallel()

	up := NewNFLVerseAdapter(&stubSeasonProvider{table: seasonTable()}, logging.NewNop())
	if !up.Available(context.Background()) {
		t.Fatal("expected available")
	}

	down := NewNFLVerseAdapter(&stubSeasonProvider{pingErr: errors.New("unreachable")}, logging.NewNop())
	if down.Available(context.Background()) {
		t.Fatal("expected unavailable")
	}
}

func TestFFDPAdapterLoadWeek(t *testing.T) {
	t.Parallel()

	table := Table{
		Columns: []string{"Player", "Pos", "RushYds"},
		Rows:    []Row{{"Player": "A.Ekeler", "Pos": "RB", "RushYds": "88"}},
	}
	adapter := NewFFDPAdapter(&stubWeekProvider{table: table}, logging.NewNop())
	got, err := adapter.LoadWeek(context.Background(), 2023, 4)
	if err != nil {
		t.Fatalf("LoadWeek: %v", err)
	}
	if got.Len() != 1 {
		t.Fatalf("got %d rows, want 1", got.Len())
	}
	if !adapter.Available(context.Background()) {
		t.Fatal("ffdp must always report available")
	}
}

func TestFFDPAdapterMissingPlayerColumn(t *testing.T) {
	t.Parallel()

	table := Table{
		Columns: []string{"Team", "RushYds"},
		Rows:    []Row{{"Team": "LAC", "RushYds": "88"}},
	}
	adapter := NewFFDPAdapter(&stubWeekProvider{table: table}, logging.NewNop())
	_, err := adapter.LoadWeek(context.Background(), 2023, 4)
	if !IsLoaderError(err) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	nflverse := NewNFLVerseAdapter(&stubSeasonProvider{}, logging.NewNop())
	ffdp := NewFFDPAdapter(&stubWeekProvider{}, logging.NewNop())
	registry := NewRegistry(nflverse, ffdp)

	if got := registry.Tags(); len(got) != 2 || got[0] != SourceFFDP || got[1] != SourceNFLVerse {
		t.Fatalf("unexpected tags: %v", got)
	}

	adapter, err := registry.Get(SourceNFLVerse)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if adapter.Tag() != SourceNFLVerse {
		t.Fatalf("got adapter %q", adapter.Tag())
	}

	if _, err := registry.Get("espn"); !IsLoaderError(err) {
		t.Fatalf("expected loader error for unknown tag, got %v", err)
	}
}
