package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/nfl-projections/internal/domain/scoring"
)

type ScoringConfigRepository struct {
	mu      sync.RWMutex
	configs []scoring.Config
}

// NewScoringConfigRepository starts pre-seeded with the canonical schemes.
func NewScoringConfigRepository() *ScoringConfigRepository {
	return &ScoringConfigRepository{configs: scoring.DefaultConfigs()}
}

func (r *ScoringConfigRepository) GetByName(_ context.Context, name string) (scoring.Config, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cfg := range r.configs {
		if cfg.Name == name {
			return cfg, true, nil
		}
	}
	return scoring.Config{}, false, nil
}

func (r *ScoringConfigRepository) List(_ context.Context) ([]scoring.Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Config, len(r.configs))
	copy(out, r.configs)
	return out, nil
}

func (r *ScoringConfigRepository) Default(_ context.Context) (scoring.Config, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cfg := range r.configs {
		if cfg.IsDefault {
			return cfg, true, nil
		}
	}
	return scoring.Config{}, false, nil
}
