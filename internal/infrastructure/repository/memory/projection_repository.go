package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/domain/projection"
	"github.com/riskibarqy/nfl-projections/internal/platform/id"
)

type ProjectionRepository struct {
	mu      sync.RWMutex
	byKey   map[string]projection.Projection
	byID    map[string]projection.Projection
	players *PlayerRepository
	ids     id.Generator
}

// NewProjectionRepository joins player fields through the given player
// repository, mirroring the SQL join of the postgres implementation.
func NewProjectionRepository(players *PlayerRepository, ids id.Generator) *ProjectionRepository {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	return &ProjectionRepository{
		byKey:   make(map[string]projection.Projection),
		byID:    make(map[string]projection.Projection),
		players: players,
		ids:     ids,
	}
}

func projectionKey(playerID string, season, week int, source string) string {
	return fmt.Sprintf("%s|%d|%d|%s", playerID, season, week, source)
}

func (r *ProjectionRepository) GetByKey(_ context.Context, playerID string, season, week int, source string) (projection.Projection, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byKey[projectionKey(playerID, season, week, source)]
	return p, ok, nil
}

func (r *ProjectionRepository) Insert(_ context.Context, record projection.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	publicID, err := r.ids.NewID()
	if err != nil {
		return fmt.Errorf("generate projection id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := projectionKey(record.PlayerID, record.Season, record.Week, record.Source)
	if _, exists := r.byKey[key]; exists {
		return fmt.Errorf("projection %s already exists", key)
	}

	now := time.Now().UTC()
	p := projection.Projection{
		ID:        publicID,
		PlayerID:  record.PlayerID,
		Season:    record.Season,
		Week:      record.Week,
		Source:    record.Source,
		Stats:     record.Stats,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.byKey[key] = p
	r.byID[p.ID] = p
	return nil
}

func (r *ProjectionRepository) UpdateStats(_ context.Context, projectionID string, stats projection.StatLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[projectionID]
	if !ok {
		return fmt.Errorf("projection %s not found", projectionID)
	}
	p.Stats = stats
	p.UpdatedAt = time.Now().UTC()
	r.byID[projectionID] = p
	r.byKey[projectionKey(p.PlayerID, p.Season, p.Week, p.Source)] = p
	return nil
}

func (r *ProjectionRepository) ListWithPlayers(_ context.Context, filter projection.Filter) ([]projection.WithPlayer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]projection.WithPlayer, 0, len(r.byID))
	for _, p := range r.byID {
		if p.Season != filter.Season || p.Week != filter.Week {
			continue
		}
		if filter.Source != "" && p.Source != filter.Source {
			continue
		}

		joined, ok := r.players.Get(p.PlayerID)
		if !ok {
			continue
		}
		if filter.Position != "" && joined.Position != filter.Position {
			continue
		}
		if filter.Team != "" && joined.Team != filter.Team {
			continue
		}

		out = append(out, projection.WithPlayer{
			Projection:     p,
			PlayerName:     joined.Name,
			PlayerTeam:     joined.Team,
			PlayerPosition: joined.Position,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PlayerName != out[j].PlayerName {
			return out[i].PlayerName < out[j].PlayerName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ProjectionRepository) Summaries(_ context.Context) ([]projection.WeekSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]projection.WeekSummary)
	for _, p := range r.byID {
		key := fmt.Sprintf("%d|%d|%s", p.Season, p.Week, p.Source)
		summary := counts[key]
		summary.Season = p.Season
		summary.Week = p.Week
		summary.Source = p.Source
		summary.Count++
		counts[key] = summary
	}

	out := make([]projection.WeekSummary, 0, len(counts))
	for _, summary := range counts {
		out = append(out, summary)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season > out[j].Season
		}
		if out[i].Week != out[j].Week {
			return out[i].Week > out[j].Week
		}
		return out[i].Source < out[j].Source
	})
	return out, nil
}
