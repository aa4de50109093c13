package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/nfl-projections/internal/domain/scoring"
	"github.com/riskibarqy/nfl-projections/internal/platform/id"
	qb "github.com/riskibarqy/nfl-projections/internal/platform/querybuilder"
)

// SeedScoringConfigs inserts the canonical scoring schemes. Existing rows
// are left untouched, so the seed is safe to run on every boot.
func SeedScoringConfigs(ctx context.Context, db *sqlx.DB, ids id.Generator) error {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}

	for _, cfg := range scoring.DefaultConfigs() {
		publicID, err := ids.NewID()
		if err != nil {
			return fmt.Errorf("generate scoring config id: %w", err)
		}

		query, args, err := qb.InsertInto("scoring_configs").
			Columns(
				"public_id", "name",
				"pass_yds_per_point", "pass_td_points", "pass_int_points",
				"rush_yds_per_point", "rush_td_points",
				"rec_yds_per_point", "rec_td_points", "rec_points",
				"fumble_points", "is_default",
			).
			Values(
				publicID, cfg.Name,
				cfg.PassYdsPerPoint, cfg.PassTdPoints, cfg.PassIntPoints,
				cfg.RushYdsPerPoint, cfg.RushTdPoints,
				cfg.RecYdsPerPoint, cfg.RecTdPoints, cfg.RecPoints,
				cfg.FumblePoints, cfg.IsDefault,
			).
			Suffix("ON CONFLICT (name) DO NOTHING").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build seed scoring config query: %w", err)
		}

		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed scoring config %q: %w", cfg.Name, err)
		}
	}
	return nil
}
