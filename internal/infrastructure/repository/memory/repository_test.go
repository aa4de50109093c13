package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/nfl-projections/internal/domain/player"
	"github.com/riskibarqy/nfl-projections/internal/domain/projection"
)

func TestPlayerRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerRepository(nil)

	inserted, err := repo.Insert(ctx, player.Record{
		Name: "P.Mahomes", Position: player.PositionQuarterback, Team: "KC",
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if inserted.ID == "" || inserted.Status != "active" {
		t.Fatalf("unexpected inserted player: %+v", inserted)
	}

	got, found, err := repo.GetByNamePosition(ctx, "P.Mahomes", player.PositionQuarterback)
	if err != nil || !found {
		t.Fatalf("GetByNamePosition: found=%v err=%v", found, err)
	}
	if got.ID != inserted.ID {
		t.Fatalf("got id %q, want %q", got.ID, inserted.ID)
	}

	if err := repo.UpdateTeam(ctx, inserted.ID, "SF"); err != nil {
		t.Fatalf("UpdateTeam: %v", err)
	}
	got, _, _ = repo.GetByNamePosition(ctx, "P.Mahomes", player.PositionQuarterback)
	if got.Team != "SF" {
		t.Fatalf("got team %q after update", got.Team)
	}

	if count, _ := repo.Count(ctx); count != 1 {
		t.Fatalf("got count %d, want 1", count)
	}
}

func TestPlayerRepositoryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerRepository(nil)
	record := player.Record{Name: "J.Chase", Position: player.PositionWideReceiver, Team: "CIN"}

	if _, err := repo.Insert(ctx, record); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := repo.Insert(ctx, record); err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
}

func TestProjectionRepositoryJoinAndSummaries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	players := NewPlayerRepository(nil)
	repo := NewProjectionRepository(players, nil)

	qb, err := players.Insert(ctx, player.Record{Name: "P.Mahomes", Position: player.PositionQuarterback, Team: "KC"})
	if err != nil {
		t.Fatalf("insert player: %v", err)
	}
	wr, err := players.Insert(ctx, player.Record{Name: "J.Chase", Position: player.PositionWideReceiver, Team: "CIN"})
	if err != nil {
		t.Fatalf("insert player: %v", err)
	}

	stat := decimal.NullDecimal{Decimal: decimal.RequireFromString("300"), Valid: true}
	for _, playerID := range []string{qb.ID, wr.ID} {
		if err := repo.Insert(ctx, projection.Record{
			PlayerID: playerID, Season: 2024, Week: 1, Source: "nflverse",
			Stats: projection.StatLine{PassYds: stat},
		}); err != nil {
			t.Fatalf("insert projection: %v", err)
		}
	}

	rows, err := repo.ListWithPlayers(ctx, projection.Filter{Season: 2024, Week: 1})
	if err != nil {
		t.Fatalf("ListWithPlayers: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Name-sorted, so Chase first.
	if rows[0].PlayerName != "J.Chase" || rows[0].PlayerPosition != player.PositionWideReceiver {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}

	filtered, err := repo.ListWithPlayers(ctx, projection.Filter{Season: 2024, Week: 1, Position: player.PositionQuarterback})
	if err != nil {
		t.Fatalf("ListWithPlayers filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].PlayerName != "P.Mahomes" {
		t.Fatalf("unexpected filtered rows: %+v", filtered)
	}

	summaries, err := repo.Summaries(ctx)
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Count != 2 {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestProjectionRepositoryUpdateStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	players := NewPlayerRepository(nil)
	repo := NewProjectionRepository(players, nil)

	p, _ := players.Insert(ctx, player.Record{Name: "A.Ekeler", Position: player.PositionRunningBack, Team: "LAC"})
	record := projection.Record{PlayerID: p.ID, Season: 2024, Week: 2, Source: "ffdp"}
	if err := repo.Insert(ctx, record); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	stored, found, _ := repo.GetByKey(ctx, p.ID, 2024, 2, "ffdp")
	if !found {
		t.Fatal("projection not found after insert")
	}

	updated := projection.StatLine{RushYds: decimal.NullDecimal{Decimal: decimal.RequireFromString("95.5"), Valid: true}}
	if err := repo.UpdateStats(ctx, stored.ID, updated); err != nil {
		t.Fatalf("UpdateStats: %v", err)
	}

	stored, _, _ = repo.GetByKey(ctx, p.ID, 2024, 2, "ffdp")
	if !stored.Stats.RushYds.Valid || stored.Stats.RushYds.Decimal.String() != "95.5" {
		t.Fatalf("stats not updated: %+v", stored.Stats.RushYds)
	}
}
