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

type ImportEventInput struct {
	EventSlug string
	Season    int
	Tier      string
}

type ImportEventResult struct {
	EventID      string
	EventName    string
	EventCreated bool
	Fetched      int
	Mapped       int
	Appended     int
	Unmapped     []UnmappedEntry
	Rebuild      CacheStatus
}

type ReimportEventResult struct {
	EventID  string
	Fetched  int
	Mapped   int
	Removed  int
	Appended int
	Unmapped []UnmappedEntry
	Rebuild  CacheStatus
}

type EventPreview struct {
	EventID  string
	Fetched  int
	Mapped   []result.Result
	Unmapped []UnmappedEntry
}

// ImportService pulls final standings for one event from the provider and
// folds them into the registries. Fetch, normalize, and store run strictly
// in sequence; nothing is written when the fetch fails partway.
type ImportService struct {
	events        event.Repository
	players       player.Repository
	results       result.Repository
	provider      StandingsProvider
	rebuilder     CacheRebuilder
	responseCache *cache.Store
	logger        *logging.Logger
}

func NewImportService(
	events event.Repository,
	players player.Repository,
	results result.Repository,
	provider StandingsProvider,
	rebuilder CacheRebuilder,
	responseCache *cache.Store,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ImportService{
		events:        events,
		players:       players,
		results:       results,
		provider:      provider,
		rebuilder:     rebuilder,
		responseCache: responseCache,
		logger:        logger,
	}
}

// ImportEvent resolves the slug, upserts the event registry entry, appends
// the mapped results with dedupe, and rebuilds the results cache.
func (s *ImportService) ImportEvent(ctx context.Context, input ImportEventInput) (ImportEventResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ImportService.ImportEvent")
	defer span.End()

	slug := strings.TrimSpace(input.EventSlug)
	if slug == "" {
		return ImportEventResult{}, fmt.Errorf("%w: event slug is required", ErrInvalidInput)
	}
	if input.Season < 0 {
		return ImportEventResult{}, fmt.Errorf("%w: season must not be negative", ErrInvalidInput)
	}

	external, err := s.provider.ResolveEvent(ctx, slug)
	if err != nil {
		return ImportEventResult{}, err
	}

	record := event.Event{
		ID:     internalEventID(external),
		Name:   eventDisplayName(external),
		Slug:   slug,
		Season: input.Season,
		Tier:   strings.TrimSpace(input.Tier),
	}
	created, err := s.events.Upsert(ctx, record)
	if err != nil {
		return ImportEventResult{}, fmt.Errorf("upsert event: %w", err)
	}

	sync, err := s.syncEvent(ctx, record.ID, external.ID)
	if err != nil {
		return ImportEventResult{}, err
	}

	appended, err := s.results.Append(ctx, sync.Mapped)
	if err != nil {
		return ImportEventResult{}, fmt.Errorf("append results: %w", err)
	}

	s.invalidateLeaderboards(ctx)
	rebuildStatus, _ := s.rebuilder.Rebuild(ctx)

	s.logger.InfoContext(ctx, "event imported",
		"event_id", record.ID,
		"event_created", created,
		"fetched", sync.Fetched,
		"mapped", len(sync.Mapped),
		"appended", appended,
		"unmapped", len(sync.Unmapped),
	)

	return ImportEventResult{
		EventID:      record.ID,
		EventName:    record.Name,
		EventCreated: created,
		Fetched:      sync.Fetched,
		Mapped:       len(sync.Mapped),
		Appended:     appended,
		Unmapped:     sync.Unmapped,
		Rebuild:      rebuildStatus,
	}, nil
}

// ReimportEvent refetches standings and atomically replaces every stored
// result for the event. This is the only path that can correct a placement
// that was already stored.
func (s *ImportService) ReimportEvent(ctx context.Context, slug string) (ReimportEventResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ImportService.ReimportEvent")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ReimportEventResult{}, fmt.Errorf("%w: event slug is required", ErrInvalidInput)
	}

	external, err := s.provider.ResolveEvent(ctx, slug)
	if err != nil {
		return ReimportEventResult{}, err
	}
	eventID := internalEventID(external)

	sync, err := s.syncEvent(ctx, eventID, external.ID)
	if err != nil {
		return ReimportEventResult{}, err
	}

	removed, appended, err := s.results.ReplaceForEvent(ctx, eventID, sync.Mapped)
	if err != nil {
		return ReimportEventResult{}, fmt.Errorf("replace results: %w", err)
	}

	s.invalidateLeaderboards(ctx)
	rebuildStatus, _ := s.rebuilder.Rebuild(ctx)

	s.logger.InfoContext(ctx, "event reimported",
		"event_id", eventID,
		"removed", removed,
		"appended", appended,
	)

	return ReimportEventResult{
		EventID:  eventID,
		Fetched:  sync.Fetched,
		Mapped:   len(sync.Mapped),
		Removed:  removed,
		Appended: appended,
		Unmapped: sync.Unmapped,
		Rebuild:  rebuildStatus,
	}, nil
}

// PreviewEvent fetches and normalizes standings without writing anything.
func (s *ImportService) PreviewEvent(ctx context.Context, slug string) (EventPreview, error) {
	ctx, span := startUsecaseSpan(ctx, "ImportService.PreviewEvent")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return EventPreview{}, fmt.Errorf("%w: event slug is required", ErrInvalidInput)
	}

	external, err := s.provider.ResolveEvent(ctx, slug)
	if err != nil {
		return EventPreview{}, err
	}
	eventID := internalEventID(external)

	sync, err := s.syncEvent(ctx, eventID, external.ID)
	if err != nil {
		return EventPreview{}, err
	}

	return EventPreview{
		EventID:  eventID,
		Fetched:  sync.Fetched,
		Mapped:   sync.Mapped,
		Unmapped: sync.Unmapped,
	}, nil
}

// ListTournamentEvents lists the events under a tournament slug so an
// operator can pick the one to import.
func (s *ImportService) ListTournamentEvents(ctx context.Context, slug string) (ExternalTournament, error) {
	ctx, span := startUsecaseSpan(ctx, "ImportService.ListTournamentEvents")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ExternalTournament{}, fmt.Errorf("%w: tournament slug is required", ErrInvalidInput)
	}

	return s.provider.ListTournamentEvents(ctx, slug)
}

type eventSync struct {
	Fetched  int
	Mapped   []result.Result
	Unmapped []UnmappedEntry
}

func (s *ImportService) syncEvent(ctx context.Context, eventID string, externalEventID int64) (eventSync, error) {
	placements, err := s.provider.FetchAllStandings(ctx, externalEventID)
	if err != nil {
		return eventSync{}, err
	}

	players, err := s.players.List(ctx)
	if err != nil {
		return eventSync{}, fmt.Errorf("list players: %w", err)
	}

	mapped, unmapped := normalizeStandings(eventID, placements, buildIdentityIndex(players))
	return eventSync{
		Fetched:  len(placements),
		Mapped:   mapped,
		Unmapped: unmapped,
	}, nil
}

func (s *ImportService) invalidateLeaderboards(ctx context.Context) {
	if s.responseCache != nil {
		s.responseCache.DeletePrefix(ctx, leaderboardCachePrefix)
	}
}

// internalEventID derives the registry ID. Events are keyed by their owning
// tournament, matching how the community tracks "an event" per tournament.
func internalEventID(external ExternalEvent) string {
	if external.TournamentID > 0 {
		return fmt.Sprintf("t_%d", external.TournamentID)
	}
	return fmt.Sprintf("e_%d", external.ID)
}

func eventDisplayName(external ExternalEvent) string {
	if name := strings.TrimSpace(external.TournamentName); name != "" {
		return name
	}
	if name := strings.TrimSpace(external.Name); name != "" {
		return name
	}
	return internalEventID(external)
}
