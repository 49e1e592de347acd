package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bracketworks/bracketboard/internal/domain/event"
	"github.com/bracketworks/bracketboard/internal/domain/player"
	"github.com/bracketworks/bracketboard/internal/domain/result"
	"github.com/bracketworks/bracketboard/internal/platform/logging"
)

func newRebuildFixture() (*CacheRebuildService, *ResultsCache, *stubProvider) {
	resultsCache := NewResultsCache()
	events := &stubEventRepository{events: []event.Event{
		{ID: "t_1", Name: "Weekly #1", Slug: "tournament/weekly-1/event/singles", Season: 2026, Tier: "C"},
		{ID: "t_2", Name: "Regional", Slug: "tournament/regional/event/singles", Season: 2026, Tier: "A"},
	}}
	players := &stubPlayerRepository{players: []player.Player{
		{ID: "p_zenith", Tag: "Zenith", ExternalID: int64Ptr(101)},
		{ID: "p_karma", Tag: "Karma", ExternalID: int64Ptr(102)},
	}}
	provider := &stubProvider{
		eventsBySlug: map[string]ExternalEvent{
			"tournament/weekly-1/event/singles": {ID: 11, TournamentID: 1, TournamentName: "Weekly #1"},
			"tournament/regional/event/singles": {ID: 22, TournamentID: 2, TournamentName: "Regional"},
		},
		standingsByID: map[int64][]ExternalPlacement{
			11: {
				{Placement: 1, PlayerExternalID: int64Ptr(101), PlayerTag: "Zenith"},
				{Placement: 2, PlayerExternalID: int64Ptr(102), PlayerTag: "Karma"},
			},
			22: {
				{Placement: 1, PlayerExternalID: int64Ptr(102), PlayerTag: "Karma"},
				{Placement: 5, EntrantName: "Unknown"},
			},
		},
		standingsErrs: map[int64]error{},
	}

	service := NewCacheRebuildService(resultsCache, events, players, provider, nil, logging.NewNop())
	return service, resultsCache, provider
}

func TestRebuildInstallsFreshCache(t *testing.T) {
	t.Parallel()

	service, resultsCache, _ := newRebuildFixture()

	status, started := service.Rebuild(context.Background())
	if !started {
		t.Fatal("expected rebuild to start")
	}
	if status.Rebuilding {
		t.Fatal("status still reports rebuilding after completion")
	}
	if status.LastError != "" {
		t.Fatalf("unexpected rebuild error: %s", status.LastError)
	}
	if status.EventsProcessed != 2 || status.EventsTotal != 2 {
		t.Fatalf("progress = %d/%d, want 2/2", status.EventsProcessed, status.EventsTotal)
	}
	if status.ResultsCount != 3 {
		t.Fatalf("ResultsCount = %d, want 3", status.ResultsCount)
	}
	if status.LastRebuildAt == nil {
		t.Fatal("LastRebuildAt not set")
	}

	snapshot, installed := resultsCache.Snapshot()
	if !installed {
		t.Fatal("cache not installed after successful rebuild")
	}
	if len(snapshot) != 3 {
		t.Fatalf("snapshot = %d results, want 3", len(snapshot))
	}
}

func TestRebuildFailureKeepsPreviousCache(t *testing.T) {
	t.Parallel()

	service, resultsCache, provider := newRebuildFixture()

	previous := []result.Result{{PlayerID: "p_zenith", EventID: "t_1", Placement: 1}}
	resultsCache.Install(previous)

	provider.standingsErrs[22] = errors.New("upstream exploded")

	status, started := service.Rebuild(context.Background())
	if !started {
		t.Fatal("expected rebuild to start")
	}
	if status.Rebuilding {
		t.Fatal("status still reports rebuilding after failure")
	}
	if !strings.Contains(status.LastError, "t_2") {
		t.Fatalf("LastError = %q, want failing event named", status.LastError)
	}

	snapshot, installed := resultsCache.Snapshot()
	if !installed {
		t.Fatal("previous cache should remain installed")
	}
	if len(snapshot) != 1 || snapshot[0].PlayerID != "p_zenith" {
		t.Fatalf("previous cache replaced: %+v", snapshot)
	}
}

func TestRebuildFailureClearsOnNextSuccess(t *testing.T) {
	t.Parallel()

	service, resultsCache, provider := newRebuildFixture()

	provider.standingsErrs[11] = errors.New("timeout")
	if status, _ := service.Rebuild(context.Background()); status.LastError == "" {
		t.Fatal("expected first rebuild to record an error")
	}

	delete(provider.standingsErrs, 11)
	status, started := service.Rebuild(context.Background())
	if !started {
		t.Fatal("expected second rebuild to start")
	}
	if status.LastError != "" {
		t.Fatalf("LastError not cleared: %q", status.LastError)
	}

	if _, installed := resultsCache.Snapshot(); !installed {
		t.Fatal("cache not installed after recovery")
	}
}

func TestRebuildSkipsEventsWithoutSlug(t *testing.T) {
	t.Parallel()

	resultsCache := NewResultsCache()
	events := &stubEventRepository{events: []event.Event{
		{ID: "t_1", Name: "Weekly #1", Slug: "tournament/weekly-1/event/singles", Season: 2026, Tier: "C"},
		{ID: "t_legacy", Name: "Hand-entered Legacy", Slug: "", Season: 2025, Tier: "B"},
	}}
	players := &stubPlayerRepository{players: []player.Player{
		{ID: "p_zenith", Tag: "Zenith", ExternalID: int64Ptr(101)},
	}}
	provider := &stubProvider{
		eventsBySlug: map[string]ExternalEvent{
			"tournament/weekly-1/event/singles": {ID: 11, TournamentID: 1, TournamentName: "Weekly #1"},
		},
		standingsByID: map[int64][]ExternalPlacement{
			11: {{Placement: 1, PlayerExternalID: int64Ptr(101), PlayerTag: "Zenith"}},
		},
	}

	service := NewCacheRebuildService(resultsCache, events, players, provider, nil, logging.NewNop())

	status, started := service.Rebuild(context.Background())
	if !started {
		t.Fatal("expected rebuild to start")
	}
	if status.LastError != "" {
		t.Fatalf("slugless event must not fail the rebuild: %s", status.LastError)
	}
	if status.EventsProcessed != 2 || status.EventsTotal != 2 {
		t.Fatalf("progress = %d/%d, want 2/2", status.EventsProcessed, status.EventsTotal)
	}

	snapshot, installed := resultsCache.Snapshot()
	if !installed {
		t.Fatal("cache not installed when a slugless event was skipped")
	}
	if len(snapshot) != 1 || snapshot[0].EventID != "t_1" {
		t.Fatalf("snapshot = %+v, want only the t_1 result", snapshot)
	}
}

func TestRebuildRegistryReadFailureLeavesTimestampAlone(t *testing.T) {
	t.Parallel()

	resultsCache := NewResultsCache()
	service := NewCacheRebuildService(
		resultsCache,
		&stubEventRepository{listErr: errors.New("disk gone")},
		&stubPlayerRepository{},
		&stubProvider{},
		nil,
		logging.NewNop(),
	)

	status, started := service.Rebuild(context.Background())
	if started {
		t.Fatal("a rebuild that cannot read the registry must not count as started")
	}
	if !strings.Contains(status.LastError, "list events") {
		t.Fatalf("LastError = %q, want the registry failure recorded", status.LastError)
	}
	if status.LastRebuildAt != nil {
		t.Fatalf("LastRebuildAt = %v, want unset: no rebuild ran", status.LastRebuildAt)
	}
	if status.Rebuilding {
		t.Fatal("cache must stay idle after a registry read failure")
	}
}

func TestConcurrentRebuildIsNoOp(t *testing.T) {
	t.Parallel()

	service, resultsCache, _ := newRebuildFixture()

	if !resultsCache.beginRebuild(5) {
		t.Fatal("setup: could not mark cache as rebuilding")
	}

	status, started := service.Rebuild(context.Background())
	if started {
		t.Fatal("second rebuild must not start while one is in flight")
	}
	if !status.Rebuilding {
		t.Fatal("status should report the in-flight rebuild")
	}
	if status.EventsTotal != 5 {
		t.Fatalf("EventsTotal = %d, want the in-flight total 5", status.EventsTotal)
	}
}

func TestRebuildWithNoEventsInstallsEmptyCache(t *testing.T) {
	t.Parallel()

	resultsCache := NewResultsCache()
	service := NewCacheRebuildService(
		resultsCache,
		&stubEventRepository{},
		&stubPlayerRepository{},
		&stubProvider{},
		nil,
		logging.NewNop(),
	)

	status, started := service.Rebuild(context.Background())
	if !started {
		t.Fatal("expected rebuild to start")
	}
	if status.LastError != "" {
		t.Fatalf("unexpected error: %s", status.LastError)
	}

	snapshot, installed := resultsCache.Snapshot()
	if !installed {
		t.Fatal("empty registry should still install an empty cache")
	}
	if len(snapshot) != 0 {
		t.Fatalf("snapshot = %d results, want 0", len(snapshot))
	}
}
