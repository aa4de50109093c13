package loader

import (
	"context"
	"fmt"
	"sort"
)

// SourceAdapter fetches one week of player statistics from a data source
// and reports its availability.
type SourceAdapter interface {
	// Tag is the stable identifier recorded on imported rows.
	Tag() string
	// Description is a short human-readable label for API listings.
	Description() string
	// LoadWeek returns the stats table for a season and week. It returns
	// an error wrapping ErrDataNotAvailable when the source has nothing
	// for that week, and ErrLoader for transport or format failures.
	LoadWeek(ctx context.Context, season, week int) (Table, error)
	// Available reports whether the source can currently be reached.
	Available(ctx context.Context) bool
}

// Registry holds source adapters keyed by tag.
type Registry struct {
	adapters map[string]SourceAdapter
}

func NewRegistry(adapters ...SourceAdapter) *Registry {
	r := &Registry{adapters: make(map[string]SourceAdapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Tag()] = a
	}
	return r
}

func (r *Registry) Get(tag string) (SourceAdapter, error) {
	a, ok := r.adapters[tag]
	if !ok {
		return nil, fmt.Errorf("%w: unknown data source %q", ErrLoader, tag)
	}
	return a, nil
}

// Tags returns the registered source tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.adapters))
	for tag := range r.adapters {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
