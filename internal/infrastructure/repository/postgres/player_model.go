package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/domain/player"
)

type playerTableModel struct {
	ID         int64         `db:"id"`
	PublicID   string        `db:"public_id"`
	Name       string        `db:"name"`
	Position   string        `db:"position"`
	Team       string        `db:"team"`
	Status     string        `db:"status"`
	ExternalID sql.NullInt64 `db:"external_id"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:         m.PublicID,
		Name:       m.Name,
		Position:   player.Position(m.Position),
		Team:       m.Team,
		Status:     m.Status,
		ExternalID: nullInt64ToPtr(m.ExternalID),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
