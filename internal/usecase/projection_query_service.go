package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/nfl-projections/internal/domain/player"
	"github.com/riskibarqy/nfl-projections/internal/domain/projection"
	"github.com/riskibarqy/nfl-projections/internal/domain/scoring"
	"github.com/riskibarqy/nfl-projections/internal/platform/cache"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

const (
	SortByPoints = "points"
	SortByName   = "name"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	defaultPageLimit = 50
	maxPageLimit     = 500
	scoringWorkers   = 8
)

// ProjectionQuery filters and shapes a scored projection listing.
type ProjectionQuery struct {
	Season   int
	Week     int
	Source   string
	Position string
	Team     string
	// ScoringConfig selects the scheme by name; empty means the default.
	ScoringConfig string
	MinPoints *decimal.Decimal
	SortBy    string
	// Order overrides the sort direction; empty keeps the natural order
	// for the chosen key (points descend, names ascend).
	Order  string
	Limit  int
	Offset int
}

// ScoredProjection is one projection row joined with its player and scored
// under the selected config.
type ScoredProjection struct {
	ProjectionID string              `json:"projection_id"`
	PlayerID     string              `json:"player_id"`
	PlayerName   string              `json:"player_name"`
	Team         string              `json:"team"`
	Position     player.Position     `json:"position"`
	Season       int                 `json:"season"`
	Week         int                 `json:"week"`
	Source       string              `json:"source"`
	Stats        projection.StatLine `json:"-"`
	Points       decimal.Decimal     `json:"points"`
	Breakdown    scoring.Breakdown   `json:"breakdown"`
}

// ProjectionPage is one page of scored projections. Total counts rows after
// the min-points filter, before pagination.
type ProjectionPage struct {
	Items         []ScoredProjection `json:"items"`
	Total         int                `json:"total"`
	Limit         int                `json:"limit"`
	Offset        int                `json:"offset"`
	ScoringConfig string             `json:"scoring_config"`
}

// ProjectionQueryService serves scored projection reads. Scoring configs are
// cached; per-row scoring fans out over a worker pool.
type ProjectionQueryService struct {
	projectionRepo projection.Repository
	scoringRepo    scoring.Repository
	configCache    *cache.Store
	logger         *logging.Logger
}

func NewProjectionQueryService(
	projectionRepo projection.Repository,
	scoringRepo scoring.Repository,
	configCache *cache.Store,
	logger *logging.Logger,
) *ProjectionQueryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProjectionQueryService{
		projectionRepo: projectionRepo,
		scoringRepo:    scoringRepo,
		configCache:    configCache,
		logger:         logger,
	}
}

// ListProjections returns one page of projections scored under the selected
// config, filtered and sorted per the query.
func (s *ProjectionQueryService) ListProjections(ctx context.Context, query ProjectionQuery) (ProjectionPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProjectionQueryService.ListProjections")
	defer span.End()

	if err := s.validateQuery(query); err != nil {
		return ProjectionPage{}, err
	}

	cfg, err := s.resolveConfig(ctx, query.ScoringConfig)
	if err != nil {
		return ProjectionPage{}, err
	}

	rows, err := s.projectionRepo.ListWithPlayers(ctx, projection.Filter{
		Season:   query.Season,
		Week:     query.Week,
		Source:   query.Source,
		Position: player.Position(strings.ToUpper(strings.TrimSpace(query.Position))),
		Team:     strings.ToUpper(strings.TrimSpace(query.Team)),
	})
	if err != nil {
		return ProjectionPage{}, fmt.Errorf("list projections: %w", err)
	}

	items, err := s.scoreRows(rows, cfg)
	if err != nil {
		return ProjectionPage{}, err
	}

	if query.MinPoints != nil {
		filtered := items[:0]
		for _, item := range items {
			if item.Points.GreaterThanOrEqual(*query.MinPoints) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = SortByPoints
	}

	var ascending bool
	switch sortBy {
	case SortByPoints:
		ascending = false
	case SortByName:
		ascending = true
	default:
		return ProjectionPage{}, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, query.SortBy)
	}
	switch query.Order {
	case "":
	case OrderAsc:
		ascending = true
	case OrderDesc:
		ascending = false
	default:
		return ProjectionPage{}, fmt.Errorf("%w: unknown order %q", ErrInvalidInput, query.Order)
	}

	switch sortBy {
	case SortByPoints:
		sort.SliceStable(items, func(i, j int) bool {
			if !items[i].Points.Equal(items[j].Points) {
				if ascending {
					return items[i].Points.LessThan(items[j].Points)
				}
				return items[i].Points.GreaterThan(items[j].Points)
			}
			return items[i].PlayerName < items[j].PlayerName
		})
	case SortByName:
		sort.SliceStable(items, func(i, j int) bool {
			if ascending {
				return items[i].PlayerName < items[j].PlayerName
			}
			return items[i].PlayerName > items[j].PlayerName
		})
	}

	total := len(items)
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	if offset >= len(items) {
		items = []ScoredProjection{}
	} else {
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		items = items[offset:end]
	}

	return ProjectionPage{
		Items:         items,
		Total:         total,
		Limit:         limit,
		Offset:        offset,
		ScoringConfig: cfg.Name,
	}, nil
}

// WeekSummaries lists stored (season, week, source) groups with row counts.
func (s *ProjectionQueryService) WeekSummaries(ctx context.Context) ([]projection.WeekSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProjectionQueryService.WeekSummaries")
	defer span.End()

	summaries, err := s.projectionRepo.Summaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list week summaries: %w", err)
	}
	return summaries, nil
}

// ScoringConfigs lists all stored scoring schemes.
func (s *ProjectionQueryService) ScoringConfigs(ctx context.Context) ([]scoring.Config, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProjectionQueryService.ScoringConfigs")
	defer span.End()

	value, err := s.configCache.GetOrLoad(ctx, "scoring-configs", func(ctx context.Context) (any, error) {
		return s.scoringRepo.List(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list scoring configs: %w", err)
	}
	configs, ok := value.([]scoring.Config)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload type %T", value)
	}
	return configs, nil
}

func (s *ProjectionQueryService) validateQuery(query ProjectionQuery) error {
	if query.Season <= 0 {
		return fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if query.Week < projection.MinWeek || query.Week > projection.MaxWeek {
		return fmt.Errorf("%w: week must be between %d and %d", ErrInvalidInput, projection.MinWeek, projection.MaxWeek)
	}
	if query.Position != "" {
		pos := player.Position(strings.ToUpper(strings.TrimSpace(query.Position)))
		if _, ok := player.AllPositions[pos]; !ok {
			return fmt.Errorf("%w: unknown position %q", ErrInvalidInput, query.Position)
		}
	}
	return nil
}

// resolveConfig loads a scoring config by name, or the default scheme when
// the name is empty. Configs barely change, so reads go through the cache.
func (s *ProjectionQueryService) resolveConfig(ctx context.Context, name string) (scoring.Config, error) {
	name = strings.TrimSpace(name)
	key := "scoring-config:" + name

	value, err := s.configCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		if name == "" {
			cfg, found, err := s.scoringRepo.Default(ctx)
			if err != nil {
				return nil, fmt.Errorf("load default scoring config: %w", err)
			}
			if !found {
				return nil, fmt.Errorf("%w: no default scoring config", ErrNotFound)
			}
			return cfg, nil
		}

		cfg, found, err := s.scoringRepo.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load scoring config: %w", err)
		}
		if !found {
			return nil, fmt.Errorf("%w: scoring config %q", ErrNotFound, name)
		}
		return cfg, nil
	})
	if err != nil {
		return scoring.Config{}, err
	}

	cfg, ok := value.(scoring.Config)
	if !ok {
		return scoring.Config{}, fmt.Errorf("unexpected cache payload type %T", value)
	}
	return cfg, nil
}

// scoreRows computes points for every row over a bounded worker pool.
func (s *ProjectionQueryService) scoreRows(rows []projection.WithPlayer, cfg scoring.Config) ([]ScoredProjection, error) {
	items := make([]ScoredProjection, len(rows))
	if len(rows) == 0 {
		return items, nil
	}

	workers := scoringWorkers
	if len(rows) < workers {
		workers = len(rows)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for idx := range rows {
		idx := idx
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			row := rows[idx]
			breakdown := scoring.CalculateBreakdown(cfg, row.Stats)
			items[idx] = ScoredProjection{
				ProjectionID: row.ID,
				PlayerID:     row.PlayerID,
				PlayerName:   row.PlayerName,
				Team:         row.PlayerTeam,
				Position:     row.PlayerPosition,
				Season:       row.Season,
				Week:         row.Week,
				Source:       row.Source,
				Stats:        row.Stats,
				Points:       breakdown.Total,
				Breakdown:    breakdown,
			}
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit scoring task: %w", err)
		}
	}
	wg.Wait()

	return items, nil
}
