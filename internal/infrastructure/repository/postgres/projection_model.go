package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/nfl-projections/internal/domain/player"
	"github.com/riskibarqy/nfl-projections/internal/domain/projection"
)

type projectionTableModel struct {
	ID             int64               `db:"id"`
	PublicID       string              `db:"public_id"`
	PlayerPublicID string              `db:"player_public_id"`
	Season         int                 `db:"season"`
	Week           int                 `db:"week"`
	Source         string              `db:"source"`
	PassAtt        decimal.NullDecimal `db:"pass_att"`
	PassCmp        decimal.NullDecimal `db:"pass_cmp"`
	PassYds        decimal.NullDecimal `db:"pass_yds"`
	PassTds        decimal.NullDecimal `db:"pass_tds"`
	PassInts       decimal.NullDecimal `db:"pass_ints"`
	RushAtt        decimal.NullDecimal `db:"rush_att"`
	RushYds        decimal.NullDecimal `db:"rush_yds"`
	RushTds        decimal.NullDecimal `db:"rush_tds"`
	Receptions     decimal.NullDecimal `db:"receptions"`
	RecYds         decimal.NullDecimal `db:"rec_yds"`
	RecTds         decimal.NullDecimal `db:"rec_tds"`
	Targets        decimal.NullDecimal `db:"targets"`
	Fumbles        decimal.NullDecimal `db:"fumbles"`
	CreatedAt      time.Time           `db:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at"`
}

func (m projectionTableModel) toDomain() projection.Projection {
	return projection.Projection{
		ID:        m.PublicID,
		PlayerID:  m.PlayerPublicID,
		Season:    m.Season,
		Week:      m.Week,
		Source:    m.Source,
		Stats:     m.toStatLine(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m projectionTableModel) toStatLine() projection.StatLine {
	return projection.StatLine{
		PassAtt:    m.PassAtt,
		PassCmp:    m.PassCmp,
		PassYds:    m.PassYds,
		PassTds:    m.PassTds,
		PassInts:   m.PassInts,
		RushAtt:    m.RushAtt,
		RushYds:    m.RushYds,
		RushTds:    m.RushTds,
		Receptions: m.Receptions,
		RecYds:     m.RecYds,
		RecTds:     m.RecTds,
		Targets:    m.Targets,
		Fumbles:    m.Fumbles,
	}
}

type projectionWithPlayerModel struct {
	projectionTableModel
	PlayerName     string `db:"player_name"`
	PlayerTeam     string `db:"player_team"`
	PlayerPosition string `db:"player_position"`
}

func (m projectionWithPlayerModel) toDomain() projection.WithPlayer {
	return projection.WithPlayer{
		Projection:     m.projectionTableModel.toDomain(),
		PlayerName:     m.PlayerName,
		PlayerTeam:     m.PlayerTeam,
		PlayerPosition: player.Position(m.PlayerPosition),
	}
}
