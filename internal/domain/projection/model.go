package projection

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/nfl-projections/internal/domain/player"
)

const (
	MinWeek = 1
	MaxWeek = 18
)

// StatLine holds the raw statistical fields of one projection row. All fields
// are exact decimals; an invalid NullDecimal means the source reported no
// value, which is distinct from a reported zero.
type StatLine struct {
	PassAtt    decimal.NullDecimal
	PassCmp    decimal.NullDecimal
	PassYds    decimal.NullDecimal
	PassTds    decimal.NullDecimal
	PassInts   decimal.NullDecimal
	RushAtt    decimal.NullDecimal
	RushYds    decimal.NullDecimal
	RushTds    decimal.NullDecimal
	Receptions decimal.NullDecimal
	RecYds     decimal.NullDecimal
	RecTds     decimal.NullDecimal
	Targets    decimal.NullDecimal
	Fumbles    decimal.NullDecimal
}

// Projection is one source's reported statistics for one player in one
// (season, week). Uniquely identified by (player, season, week, source).
type Projection struct {
	ID        string
	PlayerID  string
	Season    int
	Week      int
	Source    string
	Stats     StatLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Record is a mapped projection row from a source table, prior to upsert.
type Record struct {
	PlayerID string
	Season   int
	Week     int
	Source   string
	Stats    StatLine
}

func (r Record) Validate() error {
	if r.PlayerID == "" {
		return fmt.Errorf("projection player id is required")
	}
	if r.Week < MinWeek || r.Week > MaxWeek {
		return fmt.Errorf("projection week must be between %d and %d", MinWeek, MaxWeek)
	}
	if r.Season <= 0 {
		return fmt.Errorf("projection season is required")
	}
	if r.Source == "" {
		return fmt.Errorf("projection source is required")
	}
	return nil
}

// WithPlayer joins a projection with the identity fields of its player.
type WithPlayer struct {
	Projection
	PlayerName     string
	PlayerTeam     string
	PlayerPosition player.Position
}

// Filter narrows projection listing. Season and Week are required; the rest
// are optional equality filters.
type Filter struct {
	Season   int
	Week     int
	Source   string
	Position player.Position
	Team     string
}

// WeekSummary aggregates stored projections per (season, week, source).
type WeekSummary struct {
	Season int
	Week   int
	Source string
	Count  int
}
