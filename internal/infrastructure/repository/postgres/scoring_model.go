package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/nfl-projections/internal/domain/scoring"
)

type scoringConfigTableModel struct {
	ID              int64           `db:"id"`
	PublicID        string          `db:"public_id"`
	Name            string          `db:"name"`
	PassYdsPerPoint decimal.Decimal `db:"pass_yds_per_point"`
	PassTdPoints    decimal.Decimal `db:"pass_td_points"`
	PassIntPoints   decimal.Decimal `db:"pass_int_points"`
	RushYdsPerPoint decimal.Decimal `db:"rush_yds_per_point"`
	RushTdPoints    decimal.Decimal `db:"rush_td_points"`
	RecYdsPerPoint  decimal.Decimal `db:"rec_yds_per_point"`
	RecTdPoints     decimal.Decimal `db:"rec_td_points"`
	RecPoints       decimal.Decimal `db:"rec_points"`
	FumblePoints    decimal.Decimal `db:"fumble_points"`
	IsDefault       bool            `db:"is_default"`
	CreatedAt       time.Time       `db:"created_at"`
}

func (m scoringConfigTableModel) toDomain() scoring.Config {
	return scoring.Config{
		ID:              m.PublicID,
		Name:            m.Name,
		PassYdsPerPoint: m.PassYdsPerPoint,
		PassTdPoints:    m.PassTdPoints,
		PassIntPoints:   m.PassIntPoints,
		RushYdsPerPoint: m.RushYdsPerPoint,
		RushTdPoints:    m.RushTdPoints,
		RecYdsPerPoint:  m.RecYdsPerPoint,
		RecTdPoints:     m.RecTdPoints,
		RecPoints:       m.RecPoints,
		FumblePoints:    m.FumblePoints,
		IsDefault:       m.IsDefault,
		CreatedAt:       m.CreatedAt,
	}
}
