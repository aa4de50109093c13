package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByNamePosition(ctx context.Context, name string, position Position) (Player, bool, error)
	Insert(ctx context.Context, record Record) (Player, error)
	UpdateTeam(ctx context.Context, id string, team string) error
	Count(ctx context.Context) (int, error)
}
