package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/bracketworks/bracketboard/internal/domain/event"
	"github.com/bracketworks/bracketboard/internal/domain/player"
	"github.com/bracketworks/bracketboard/internal/domain/result"
)

type stubPlayerRepository struct {
	mu      sync.Mutex
	players []player.Player
	listErr error
}

func (s *stubPlayerRepository) List(_ context.Context) ([]player.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]player.Player, len(s.players))
	copy(out, s.players)
	return out, nil
}

func (s *stubPlayerRepository) Insert(_ context.Context, p player.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = append(s.players, p)
	return nil
}

type stubEventRepository struct {
	mu      sync.Mutex
	events  []event.Event
	listErr error
}

func (s *stubEventRepository) List(_ context.Context) ([]event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]event.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *stubEventRepository) Upsert(_ context.Context, e event.Event) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == e.ID {
			s.events[i] = e
			return false, nil
		}
	}
	s.events = append(s.events, e)
	return true, nil
}

type stubResultRepository struct {
	mu      sync.Mutex
	results []result.Result
}

func (s *stubResultRepository) List(_ context.Context) ([]result.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]result.Result, len(s.results))
	copy(out, s.results)
	return out, nil
}

func (s *stubResultRepository) Append(_ context.Context, incoming []result.Result) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged, appended := result.MergeAppend(s.results, incoming)
	s.results = merged
	return appended, nil
}

func (s *stubResultRepository) ReplaceForEvent(_ context.Context, eventID string, incoming []result.Result) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept, removed := result.DropEvent(s.results, eventID)
	merged, appended := result.MergeAppend(kept, incoming)
	s.results = merged
	return removed, appended, nil
}

// stubProvider serves canned events and standings keyed by slug and
// external event ID, and counts standings fetches.
type stubProvider struct {
	mu             sync.Mutex
	eventsBySlug   map[string]ExternalEvent
	standingsByID  map[int64][]ExternalPlacement
	standingsErrs  map[int64]error
	tournaments    map[string]ExternalTournament
	standingsCalls int
}

func (s *stubProvider) ResolveEvent(_ context.Context, slug string) (ExternalEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	evt, ok := s.eventsBySlug[slug]
	if !ok {
		return ExternalEvent{}, fmt.Errorf("%w: event not found for slug %s", ErrNotFound, slug)
	}
	return evt, nil
}

func (s *stubProvider) FetchAllStandings(_ context.Context, eventID int64) ([]ExternalPlacement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.standingsCalls++
	if err := s.standingsErrs[eventID]; err != nil {
		return nil, err
	}
	out := make([]ExternalPlacement, len(s.standingsByID[eventID]))
	copy(out, s.standingsByID[eventID])
	return out, nil
}

func (s *stubProvider) ListTournamentEvents(_ context.Context, slug string) (ExternalTournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tournament, ok := s.tournaments[slug]
	if !ok {
		return ExternalTournament{}, fmt.Errorf("%w: tournament not found for slug %s", ErrNotFound, slug)
	}
	return tournament, nil
}

type stubRebuilder struct {
	mu     sync.Mutex
	calls  int
	status CacheStatus
}

func (s *stubRebuilder) Rebuild(_ context.Context) (CacheStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.status, true
}

func (s *stubRebuilder) rebuildCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

var _ player.Repository = (*stubPlayerRepository)(nil)
var _ event.Repository = (*stubEventRepository)(nil)
var _ result.Repository = (*stubResultRepository)(nil)
var _ StandingsProvider = (*stubProvider)(nil)
var _ CacheRebuilder = (*stubRebuilder)(nil)
