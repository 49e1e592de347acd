package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bracketworks/bracketboard/internal/domain/event"
	"github.com/bracketworks/bracketboard/internal/domain/player"
	"github.com/bracketworks/bracketboard/internal/domain/result"
	"github.com/bracketworks/bracketboard/internal/platform/cache"
	"github.com/bracketworks/bracketboard/internal/platform/logging"
)

// CacheRebuilder triggers a results cache rebuild. Implemented by
// CacheRebuildService; declared as an interface so the import service can
// be tested with a stub.
type CacheRebuilder interface {
	// Rebuild runs a full rebuild, or reports started=false when one is
	// already in flight. The returned status reflects the cache after the
	// call: the final status when a rebuild ran, the in-flight status when
	// it was skipped.
	Rebuild(ctx context.Context) (status CacheStatus, started bool)
}

// CacheRebuildService refetches standings for every registered event and
// swaps the results cache wholesale. Events are synced strictly one at a
// time; the provider sees at most one standings fetch in flight.
type CacheRebuildService struct {
	cache         *ResultsCache
	events        event.Repository
	players       player.Repository
	provider      StandingsProvider
	responseCache *cache.Store
	logger        *logging.Logger
}

func NewCacheRebuildService(
	resultsCache *ResultsCache,
	events event.Repository,
	players player.Repository,
	provider StandingsProvider,
	responseCache *cache.Store,
	logger *logging.Logger,
) *CacheRebuildService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CacheRebuildService{
		cache:         resultsCache,
		events:        events,
		players:       players,
		provider:      provider,
		responseCache: responseCache,
		logger:        logger,
	}
}

func (s *CacheRebuildService) Rebuild(ctx context.Context) (CacheStatus, bool) {
	ctx, span := startUsecaseSpan(ctx, "CacheRebuildService.Rebuild")
	defer span.End()

	events, err := s.events.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "results cache rebuild aborted: list events", "error", err)
		s.cache.recordFailure(fmt.Errorf("list events: %w", err))
		return s.cache.Status(), false
	}

	if !s.cache.beginRebuild(len(events)) {
		s.logger.InfoContext(ctx, "results cache rebuild already running, skipping")
		return s.cache.Status(), false
	}

	players, err := s.players.List(ctx)
	if err != nil {
		s.cache.finishRebuild(nil, fmt.Errorf("list players: %w", err))
		s.logger.ErrorContext(ctx, "results cache rebuild failed", "error", err)
		return s.cache.Status(), true
	}
	index := buildIdentityIndex(players)

	fresh := make([]result.Result, 0, 256)
	for _, item := range events {
		if strings.TrimSpace(item.Slug) == "" {
			// Registry entries without a slug (hand-edited data files) have
			// nothing to refetch; they are skipped, not treated as failures.
			s.logger.WarnContext(ctx, "rebuild skipped event without slug", "event_id", item.ID)
			s.cache.markEventProcessed()
			continue
		}
		mapped, err := s.rebuildEvent(ctx, item, index)
		if err != nil {
			// One failed event poisons the whole rebuild; the previous
			// cache stays in place.
			s.cache.finishRebuild(nil, fmt.Errorf("event %s: %w", item.ID, err))
			s.logger.ErrorContext(ctx, "results cache rebuild failed", "event_id", item.ID, "error", err)
			return s.cache.Status(), true
		}
		fresh = append(fresh, mapped...)
		s.cache.markEventProcessed()
	}

	s.cache.finishRebuild(fresh, nil)
	if s.responseCache != nil {
		s.responseCache.DeletePrefix(ctx, leaderboardCachePrefix)
	}
	s.logger.InfoContext(ctx, "results cache rebuilt",
		"events", len(events),
		"results", len(fresh),
	)

	return s.cache.Status(), true
}

func (s *CacheRebuildService) rebuildEvent(ctx context.Context, item event.Event, index map[int64]string) ([]result.Result, error) {
	external, err := s.provider.ResolveEvent(ctx, item.Slug)
	if err != nil {
		return nil, err
	}

	placements, err := s.provider.FetchAllStandings(ctx, external.ID)
	if err != nil {
		return nil, err
	}

	mapped, unmapped := normalizeStandings(item.ID, placements, index)
	if len(unmapped) > 0 {
		s.logger.DebugContext(ctx, "rebuild skipped unmapped placements",
			"event_id", item.ID,
			"unmapped", len(unmapped),
		)
	}

	return mapped, nil
}

var _ CacheRebuilder = (*CacheRebuildService)(nil)
