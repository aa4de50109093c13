package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nfl-projections/internal/domain/scoring"
	qb "github.com/riskibarqy/nfl-projections/internal/platform/querybuilder"
)

type ScoringConfigRepository struct {
	db *sqlx.DB
}

var scoringConfigSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"pass_yds_per_point",
	"pass_td_points",
	"pass_int_points",
	"rush_yds_per_point",
	"rush_td_points",
	"rec_yds_per_point",
	"rec_td_points",
	"rec_points",
	"fumble_points",
	"is_default",
	"created_at",
}

func NewScoringConfigRepository(db *sqlx.DB) *ScoringConfigRepository {
	return &ScoringConfigRepository{db: db}
}

func (r *ScoringConfigRepository) GetByName(ctx context.Context, name string) (scoring.Config, bool, error) {
	query, args, err := qb.Select(scoringConfigSelectColumns...).From("scoring_configs").
		Where(qb.Eq("name", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return scoring.Config{}, false, fmt.Errorf("build select scoring config query: %w", err)
	}

	var row scoringConfigTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Config{}, false, nil
		}
		return scoring.Config{}, false, fmt.Errorf("select scoring config: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *ScoringConfigRepository) List(ctx context.Context) ([]scoring.Config, error) {
	query, args, err := qb.Select(scoringConfigSelectColumns...).From("scoring_configs").
		OrderBy("is_default DESC", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scoring configs query: %w", err)
	}

	var rows []scoringConfigTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scoring configs: %w", err)
	}

	out := make([]scoring.Config, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ScoringConfigRepository) Default(ctx context.Context) (scoring.Config, bool, error) {
	query, args, err := qb.Select(scoringConfigSelectColumns...).From("scoring_configs").
		Where(qb.Eq("is_default", true)).
		Limit(1).
		ToSQL()
	if err != nil {
		return scoring.Config{}, false, fmt.Errorf("build select default scoring config query: %w", err)
	}

	var row scoringConfigTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Config{}, false, nil
		}
		return scoring.Config{}, false, fmt.Errorf("select default scoring config: %w", err)
	}

	return row.toDomain(), true, nil
}
