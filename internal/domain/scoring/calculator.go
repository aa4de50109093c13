package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/nfl-projections/internal/domain/projection"
)

// roundPlaces is the precision of reported fantasy points. Rounding is
// half-up (ties away from zero), applied once at the end of each category
// and of the total.
const roundPlaces = 2

// Breakdown splits a fantasy-point total by stat category.
type Breakdown struct {
	Passing   decimal.Decimal `json:"passing"`
	Rushing   decimal.Decimal `json:"rushing"`
	Receiving decimal.Decimal `json:"receiving"`
	Fumbles   decimal.Decimal `json:"fumbles"`
	Total     decimal.Decimal `json:"total"`
}

// Points computes the fantasy-point total for a stat line under a config.
// Absent stat fields contribute exactly zero.
func Points(cfg Config, stats projection.StatLine) decimal.Decimal {
	total := passingPoints(cfg, stats).
		Add(rushingPoints(cfg, stats)).
		Add(receivingPoints(cfg, stats)).
		Add(fumblePoints(cfg, stats))
	return total.Round(roundPlaces)
}

// CalculateBreakdown computes per-category points plus the total. Each
// category is rounded independently for display; the total is rounded from
// the unrounded category sum so it matches Points exactly.
func CalculateBreakdown(cfg Config, stats projection.StatLine) Breakdown {
	passing := passingPoints(cfg, stats)
	rushing := rushingPoints(cfg, stats)
	receiving := receivingPoints(cfg, stats)
	fumbles := fumblePoints(cfg, stats)

	return Breakdown{
		Passing:   passing.Round(roundPlaces),
		Rushing:   rushing.Round(roundPlaces),
		Receiving: receiving.Round(roundPlaces),
		Fumbles:   fumbles.Round(roundPlaces),
		Total:     passing.Add(rushing).Add(receiving).Add(fumbles).Round(roundPlaces),
	}
}

func passingPoints(cfg Config, stats projection.StatLine) decimal.Decimal {
	points := decimal.Zero
	if stats.PassYds.Valid {
		points = points.Add(stats.PassYds.Decimal.Div(cfg.PassYdsPerPoint))
	}
	if stats.PassTds.Valid {
		points = points.Add(stats.PassTds.Decimal.Mul(cfg.PassTdPoints))
	}
	if stats.PassInts.Valid {
		points = points.Add(stats.PassInts.Decimal.Mul(cfg.PassIntPoints))
	}
	return points
}

func rushingPoints(cfg Config, stats projection.StatLine) decimal.Decimal {
	points := decimal.Zero
	if stats.RushYds.Valid {
		points = points.Add(stats.RushYds.Decimal.Div(cfg.RushYdsPerPoint))
	}
	if stats.RushTds.Valid {
		points = points.Add(stats.RushTds.Decimal.Mul(cfg.RushTdPoints))
	}
	return points
}

func receivingPoints(cfg Config, stats projection.StatLine) decimal.Decimal {
	points := decimal.Zero
	if stats.Receptions.Valid {
		points = points.Add(stats.Receptions.Decimal.Mul(cfg.RecPoints))
	}
	if stats.RecYds.Valid {
		points = points.Add(stats.RecYds.Decimal.Div(cfg.RecYdsPerPoint))
	}
	if stats.RecTds.Valid {
		points = points.Add(stats.RecTds.Decimal.Mul(cfg.RecTdPoints))
	}
	return points
}

func fumblePoints(cfg Config, stats projection.StatLine) decimal.Decimal {
	if !stats.Fumbles.Valid {
		return decimal.Zero
	}
	return stats.Fumbles.Decimal.Mul(cfg.FumblePoints)
}
