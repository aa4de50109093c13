package projection

import "context"

// Repository describes projection persistence needs from use cases.
type Repository interface {
	GetByKey(ctx context.Context, playerID string, season, week int, source string) (Projection, bool, error)
	Insert(ctx context.Context, record Record) error
	UpdateStats(ctx context.Context, id string, stats StatLine) error
	ListWithPlayers(ctx context.Context, filter Filter) ([]WithPlayer, error)
	Summaries(ctx context.Context) ([]WeekSummary, error)
}
