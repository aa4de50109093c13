package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/domain/player"
	"github.com/riskibarqy/nfl-projections/internal/domain/projection"
	"github.com/riskibarqy/nfl-projections/internal/loader"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

// ImportParams control one weekly import run.
type ImportParams struct {
	Season int
	Week   int
	// Source is the adapter tag to load from.
	Source string
	// UseFallback allows falling back to the backup source when the
	// primary fails. Only applies when Source is the primary.
	UseFallback bool
}

// ImportResult reports the outcome of one weekly import. Source reflects
// the source that actually supplied the data, which differs from the
// requested source after a fallback.
type ImportResult struct {
	Success             bool      `json:"success"`
	Season              int       `json:"season"`
	Week                int       `json:"week"`
	Source              string    `json:"source"`
	PlayersImported     int       `json:"players_imported"`
	PlayersUpdated      int       `json:"players_updated"`
	ProjectionsImported int       `json:"projections_imported"`
	ProjectionsUpdated  int       `json:"projections_updated"`
	RowsSkipped         int       `json:"rows_skipped"`
	Errors              []string  `json:"errors"`
	Timestamp           time.Time `json:"timestamp"`
}

// SourceStatus describes one registered data source for API listings.
type SourceStatus struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// ImportService orchestrates loading stats from a source, mapping them,
// and upserting players and projections.
type ImportService struct {
	registry       *loader.Registry
	mapper         *loader.Mapper
	playerRepo     player.Repository
	projectionRepo projection.Repository
	logger         *logging.Logger
	now            func() time.Time
}

func NewImportService(
	registry *loader.Registry,
	mapper *loader.Mapper,
	playerRepo player.Repository,
	projectionRepo projection.Repository,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ImportService{
		registry:       registry,
		mapper:         mapper,
		playerRepo:     playerRepo,
		projectionRepo: projectionRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// ImportWeek runs a full import for one (season, week). It never returns an
// error for data problems; failures are reported on the result so a season
// import can keep going past bad weeks.
func (s *ImportService) ImportWeek(ctx context.Context, params ImportParams) ImportResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportWeek")
	defer span.End()

	result := ImportResult{
		Season:    params.Season,
		Week:      params.Week,
		Source:    params.Source,
		Errors:    []string{},
		Timestamp: s.now().UTC(),
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "import panicked",
				"season", params.Season, "week", params.Week, "panic", fmt.Sprint(r))
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("internal failure: %v", r))
		}
	}()

	if err := s.validateParams(params); err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	table, actualSource, err := s.loadWeek(ctx, params)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Source = actualSource

	s.logger.InfoContext(ctx, "loaded week data",
		"season", params.Season, "week", params.Week,
		"source", actualSource, "rows", table.Len())

	players, err := s.mapper.MapPlayers(table, actualSource)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	lookup, newCount, updatedCount := s.upsertPlayers(ctx, players)
	result.PlayersImported = newCount
	result.PlayersUpdated = updatedCount

	records, skipped, err := s.mapper.MapProjections(table, actualSource, params.Season, params.Week, lookup)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.RowsSkipped = skipped

	projNew, projUpdated := s.upsertProjections(ctx, records)
	result.ProjectionsImported = projNew
	result.ProjectionsUpdated = projUpdated

	s.logger.InfoContext(ctx, "import complete",
		"season", params.Season, "week", params.Week, "source", actualSource,
		"players_imported", newCount, "players_updated", updatedCount,
		"projections_imported", projNew, "projections_updated", projUpdated,
		"rows_skipped", skipped)

	result.Success = true
	return result
}

// ImportSeason imports a contiguous range of weeks. Weeks that fail are
// reported in their own results; the run continues to the next week.
func (s *ImportService) ImportSeason(ctx context.Context, season, startWeek, endWeek int, source string, useFallback bool) ([]ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.ImportSeason")
	defer span.End()

	if startWeek < projection.MinWeek || endWeek > projection.MaxWeek {
		return nil, fmt.Errorf("%w: weeks must be between %d and %d", ErrInvalidInput, projection.MinWeek, projection.MaxWeek)
	}
	if startWeek > endWeek {
		return nil, fmt.Errorf("%w: start week %d is after end week %d", ErrInvalidInput, startWeek, endWeek)
	}

	results := make([]ImportResult, 0, endWeek-startWeek+1)
	for week := startWeek; week <= endWeek; week++ {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		results = append(results, s.ImportWeek(ctx, ImportParams{
			Season:      season,
			Week:        week,
			Source:      source,
			UseFallback: useFallback,
		}))
	}
	return results, nil
}

// AvailableSources lists registered adapters with a liveness probe.
func (s *ImportService) AvailableSources(ctx context.Context) []SourceStatus {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImportService.AvailableSources")
	defer span.End()

	tags := s.registry.Tags()
	out := make([]SourceStatus, 0, len(tags))
	for _, tag := range tags {
		adapter, err := s.registry.Get(tag)
		if err != nil {
			continue
		}
		status := "available"
		if !adapter.Available(ctx) {
			status = "unavailable"
		}
		out = append(out, SourceStatus{
			Name:        tag,
			Status:      status,
			Description: adapter.Description(),
		})
	}
	return out
}

func (s *ImportService) validateParams(params ImportParams) error {
	if params.Season <= 0 {
		return fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if params.Week < projection.MinWeek || params.Week > projection.MaxWeek {
		return fmt.Errorf("%w: week must be between %d and %d", ErrInvalidInput, projection.MinWeek, projection.MaxWeek)
	}
	if params.Source == "" {
		return fmt.Errorf("%w: source is required", ErrInvalidInput)
	}
	return nil
}

// loadWeek resolves the adapter and loads the week, falling back to the
// backup source when allowed.
func (s *ImportService) loadWeek(ctx context.Context, params ImportParams) (loader.Table, string, error) {
	adapter, err := s.registry.Get(params.Source)
	if err != nil {
		return loader.Table{}, params.Source, err
	}

	table, err := adapter.LoadWeek(ctx, params.Season, params.Week)
	if err == nil {
		return table, params.Source, nil
	}

	if !params.UseFallback || params.Source != loader.SourceNFLVerse {
		return loader.Table{}, params.Source, err
	}

	s.logger.WarnContext(ctx, "primary source failed, trying fallback",
		"season", params.Season, "week", params.Week,
		"source", params.Source, "error", err)

	backup, backupErr := s.registry.Get(loader.SourceFFDP)
	if backupErr != nil {
		return loader.Table{}, params.Source, err
	}
	table, backupErr = backup.LoadWeek(ctx, params.Season, params.Week)
	if backupErr != nil {
		s.logger.ErrorContext(ctx, "fallback source failed",
			"season", params.Season, "week", params.Week, "error", backupErr)
		return loader.Table{}, params.Source, fmt.Errorf("both primary and fallback sources failed: %w", err)
	}
	return table, loader.SourceFFDP, nil
}

// upsertPlayers writes player records one at a time and builds the lookup
// map for projection linking. Individual failures are logged and skipped so
// one bad row cannot sink the import.
func (s *ImportService) upsertPlayers(ctx context.Context, records []player.Record) (map[string]string, int, int) {
	lookup := make(map[string]string, len(records)*2)
	newCount := 0
	updatedCount := 0

	for _, record := range records {
		existing, found, err := s.playerRepo.GetByNamePosition(ctx, record.Name, record.Position)
		if err != nil {
			s.logger.ErrorContext(ctx, "player lookup failed",
				"player", record.Name, "error", err)
			continue
		}

		if found {
			if record.Team != "" && record.Team != existing.Team {
				if err := s.playerRepo.UpdateTeam(ctx, existing.ID, record.Team); err != nil {
					s.logger.ErrorContext(ctx, "player team update failed",
						"player", record.Name, "error", err)
					continue
				}
				updatedCount++
			}
			lookup[record.Name] = existing.ID
			lookup[player.CompositeKey(record.Name, record.Position)] = existing.ID
			continue
		}

		inserted, err := s.playerRepo.Insert(ctx, record)
		if err != nil {
			s.logger.ErrorContext(ctx, "player insert failed",
				"player", record.Name, "error", err)
			continue
		}
		lookup[record.Name] = inserted.ID
		lookup[player.CompositeKey(record.Name, record.Position)] = inserted.ID
		newCount++
	}

	return lookup, newCount, updatedCount
}

// upsertProjections writes projection records keyed by
// (player, season, week, source). Re-imports update stats in place.
func (s *ImportService) upsertProjections(ctx context.Context, records []projection.Record) (int, int) {
	newCount := 0
	updatedCount := 0

	for _, record := range records {
		if err := record.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skipping invalid projection",
				"player_id", record.PlayerID, "error", err)
			continue
		}

		existing, found, err := s.projectionRepo.GetByKey(ctx, record.PlayerID, record.Season, record.Week, record.Source)
		if err != nil {
			s.logger.ErrorContext(ctx, "projection lookup failed",
				"player_id", record.PlayerID, "error", err)
			continue
		}

		if found {
			if err := s.projectionRepo.UpdateStats(ctx, existing.ID, record.Stats); err != nil {
				s.logger.ErrorContext(ctx, "projection update failed",
					"player_id", record.PlayerID, "error", err)
				continue
			}
			updatedCount++
			continue
		}

		if err := s.projectionRepo.Insert(ctx, record); err != nil {
			s.logger.ErrorContext(ctx, "projection insert failed",
				"player_id", record.PlayerID, "error", err)
			continue
		}
		newCount++
	}

	return newCount, updatedCount
}
