package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nfl-projections/internal/domain/projection"
	"github.com/riskibarqy/nfl-projections/internal/platform/id"
	qb "github.com/riskibarqy/nfl-projections/internal/platform/querybuilder"
)

type ProjectionRepository struct {
	db  *sqlx.DB
	ids id.Generator
}

var projectionSelectColumns = []string{
	"id",
	"public_id",
	"player_public_id",
	"season",
	"week",
	"source",
	"pass_att",
	"pass_cmp",
	"pass_yds",
	"pass_tds",
	"pass_ints",
	"rush_att",
	"rush_yds",
	"rush_tds",
	"receptions",
	"rec_yds",
	"rec_tds",
	"targets",
	"fumbles",
	"created_at",
	"updated_at",
}

var statColumns = []string{
	"pass_att",
	"pass_cmp",
	"pass_yds",
	"pass_tds",
	"pass_ints",
	"rush_att",
	"rush_yds",
	"rush_tds",
	"receptions",
	"rec_yds",
	"rec_tds",
	"targets",
	"fumbles",
}

func NewProjectionRepository(db *sqlx.DB, ids id.Generator) *ProjectionRepository {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	return &ProjectionRepository{db: db, ids: ids}
}

func (r *ProjectionRepository) GetByKey(ctx context.Context, playerID string, season, week int, source string) (projection.Projection, bool, error) {
	query, args, err := qb.Select(projectionSelectColumns...).From("projections").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("season", season),
			qb.Eq("week", week),
			qb.Eq("source", source),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return projection.Projection{}, false, fmt.Errorf("build select projection query: %w", err)
	}

	var row projectionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return projection.Projection{}, false, nil
		}
		return projection.Projection{}, false, fmt.Errorf("select projection: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *ProjectionRepository) Insert(ctx context.Context, record projection.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	publicID, err := r.ids.NewID()
	if err != nil {
		return fmt.Errorf("generate projection id: %w", err)
	}

	columns := append([]string{"public_id", "player_public_id", "season", "week", "source"}, statColumns...)
	values := []any{
		publicID, record.PlayerID, record.Season, record.Week, record.Source,
		record.Stats.PassAtt, record.Stats.PassCmp, record.Stats.PassYds, record.Stats.PassTds, record.Stats.PassInts,
		record.Stats.RushAtt, record.Stats.RushYds, record.Stats.RushTds,
		record.Stats.Receptions, record.Stats.RecYds, record.Stats.RecTds, record.Stats.Targets,
		record.Stats.Fumbles,
	}

	query, args, err := qb.InsertInto("projections").
		Columns(columns...).
		Values(values...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert projection query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert projection: %w", err)
	}
	return nil
}

func (r *ProjectionRepository) UpdateStats(ctx context.Context, projectionID string, stats projection.StatLine) error {
	builder := qb.Update("projections").
		Set("pass_att", stats.PassAtt).
		Set("pass_cmp", stats.PassCmp).
		Set("pass_yds", stats.PassYds).
		Set("pass_tds", stats.PassTds).
		Set("pass_ints", stats.PassInts).
		Set("rush_att", stats.RushAtt).
		Set("rush_yds", stats.RushYds).
		Set("rush_tds", stats.RushTds).
		Set("receptions", stats.Receptions).
		Set("rec_yds", stats.RecYds).
		Set("rec_tds", stats.RecTds).
		Set("targets", stats.Targets).
		Set("fumbles", stats.Fumbles).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("public_id", projectionID)).
		Suffix("RETURNING id")

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build update projection query: %w", err)
	}

	var rowID int64
	if err := r.db.GetContext(ctx, &rowID, query, args...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("projection %s not found", projectionID)
		}
		return fmt.Errorf("update projection: %w", err)
	}
	return nil
}

func (r *ProjectionRepository) ListWithPlayers(ctx context.Context, filter projection.Filter) ([]projection.WithPlayer, error) {
	columns := make([]string, 0, len(projectionSelectColumns)+3)
	for _, col := range projectionSelectColumns {
		columns = append(columns, "pr."+col)
	}
	columns = append(columns,
		"pl.name AS player_name",
		"pl.team AS player_team",
		"pl.position AS player_position",
	)

	conditions := []qb.Condition{
		qb.Eq("pr.season", filter.Season),
		qb.Eq("pr.week", filter.Week),
	}
	if filter.Source != "" {
		conditions = append(conditions, qb.Eq("pr.source", filter.Source))
	}
	if filter.Position != "" {
		conditions = append(conditions, qb.Eq("pl.position", string(filter.Position)))
	}
	if filter.Team != "" {
		conditions = append(conditions, qb.Eq("pl.team", filter.Team))
	}

	query, args, err := qb.Select(columns...).
		From("projections pr JOIN players pl ON pl.public_id = pr.player_public_id").
		Where(conditions...).
		OrderBy("pl.name", "pr.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list projections query: %w", err)
	}

	var rows []projectionWithPlayerModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list projections: %w", err)
	}

	out := make([]projection.WithPlayer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ProjectionRepository) Summaries(ctx context.Context) ([]projection.WeekSummary, error) {
	query, args, err := qb.Select("season", "week", "source", "COUNT(*) AS count").
		From("projections").
		GroupBy("season", "week", "source").
		OrderBy("season DESC", "week DESC", "source").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build summaries query: %w", err)
	}

	var rows []struct {
		Season int    `db:"season"`
		Week   int    `db:"week"`
		Source string `db:"source"`
		Count  int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select summaries: %w", err)
	}

	out := make([]projection.WeekSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, projection.WeekSummary{
			Season: row.Season,
			Week:   row.Week,
			Source: row.Source,
			Count:  row.Count,
		})
	}
	return out, nil
}
