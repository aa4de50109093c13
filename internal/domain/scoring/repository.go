package scoring

import "context"

// Repository describes scoring-config persistence. Configs are seed data,
// read-only at request time.
type Repository interface {
	GetByName(ctx context.Context, name string) (Config, bool, error)
	List(ctx context.Context) ([]Config, error)
	Default(ctx context.Context) (Config, bool, error)
}
