package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nfl-projections/internal/domain/player"
	"github.com/riskibarqy/nfl-projections/internal/platform/id"
	qb "github.com/riskibarqy/nfl-projections/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db  *sqlx.DB
	ids id.Generator
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"position",
	"team",
	"status",
	"external_id",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB, ids id.Generator) *PlayerRepository {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	return &PlayerRepository{db: db, ids: ids}
}

func (r *PlayerRepository) GetByNamePosition(ctx context.Context, name string, position player.Position) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("name", name),
			qb.Eq("position", string(position)),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Insert(ctx context.Context, record player.Record) (player.Player, error) {
	if err := record.Validate(); err != nil {
		return player.Player{}, err
	}

	publicID, err := r.ids.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	status := record.Status
	if status == "" {
		status = "active"
	}

	query, args, err := qb.InsertInto("players").
		Columns("public_id", "name", "position", "team", "status", "external_id").
		Values(publicID, record.Name, string(record.Position), record.Team, status, ptrToNullInt64(record.ExternalID)).
		Suffix("RETURNING " + joinColumns(playerSelectColumns)).
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}

	return row.toDomain(), nil
}

func (r *PlayerRepository) UpdateTeam(ctx context.Context, playerID string, team string) error {
	query, args, err := qb.Update("players").
		Set("team", team).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("public_id", playerID)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player team query: %w", err)
	}

	var rowID int64
	if err := r.db.GetContext(ctx, &rowID, query, args...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("player %s not found", playerID)
		}
		return fmt.Errorf("update player team: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("players").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return count, nil
}
