package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/domain/player"
	"github.com/riskibarqy/nfl-projections/internal/platform/id"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	byKey   map[string]player.Player
	byID    map[string]player.Player
	ids     id.Generator
}

func NewPlayerRepository(ids id.Generator) *PlayerRepository {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	return &PlayerRepository{
		byKey: make(map[string]player.Player),
		byID:  make(map[string]player.Player),
		ids:   ids,
	}
}

func (r *PlayerRepository) GetByNamePosition(_ context.Context, name string, position player.Position) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byKey[player.CompositeKey(name, position)]
	return p, ok, nil
}

func (r *PlayerRepository) Insert(_ context.Context, record player.Record) (player.Player, error) {
	if err := record.Validate(); err != nil {
		return player.Player{}, err
	}

	publicID, err := r.ids.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := player.CompositeKey(record.Name, record.Position)
	if _, exists := r.byKey[key]; exists {
		return player.Player{}, fmt.Errorf("player %s already exists", key)
	}

	status := record.Status
	if status == "" {
		status = "active"
	}
	now := time.Now().UTC()
	p := player.Player{
		ID:         publicID,
		Name:       record.Name,
		Position:   record.Position,
		Team:       record.Team,
		Status:     status,
		ExternalID: record.ExternalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.byKey[key] = p
	r.byID[p.ID] = p
	return p, nil
}

func (r *PlayerRepository) UpdateTeam(_ context.Context, playerID string, team string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[playerID]
	if !ok {
		return fmt.Errorf("player %s not found", playerID)
	}
	p.Team = team
	p.UpdatedAt = time.Now().UTC()
	r.byID[playerID] = p
	r.byKey[player.CompositeKey(p.Name, p.Position)] = p
	return nil
}

func (r *PlayerRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

// Get returns a player by public id. Used by the projection repository to
// join player fields without a database.
func (r *PlayerRepository) Get(id string) (player.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	return p, ok
}
