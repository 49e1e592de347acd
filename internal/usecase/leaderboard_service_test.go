package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/bracketworks/bracketboard/internal/domain/event"
	"github.com/bracketworks/bracketboard/internal/domain/player"
	"github.com/bracketworks/bracketboard/internal/domain/result"
	"github.com/bracketworks/bracketboard/internal/domain/scoring"
	"github.com/bracketworks/bracketboard/internal/platform/cache"
	"github.com/bracketworks/bracketboard/internal/platform/logging"
)

func newLeaderboardFixture() (*LeaderboardService, *ResultsCache, *stubResultRepository) {
	players := &stubPlayerRepository{players: []player.Player{
		{ID: "p_zenith", Tag: "Zenith", Region: "EU", ExternalID: int64Ptr(101)},
		{ID: "p_karma", Tag: "Karma", Region: "NA", ExternalID: int64Ptr(102)},
		{ID: "p_aria", Tag: "Aria", Region: "NA", ExternalID: int64Ptr(103)},
	}}
	events := &stubEventRepository{events: []event.Event{
		{ID: "t_1", Name: "Weekly #1", Slug: "tournament/weekly-1/event/singles", Season: 2026, Tier: "C"},
		{ID: "t_2", Name: "Regional", Slug: "tournament/regional/event/singles", Season: 2026, Tier: "A"},
		{ID: "t_3", Name: "Last Year Major", Slug: "tournament/old-major/event/singles", Season: 2025, Tier: "MAJOR"},
	}}
	results := &stubResultRepository{}
	resultsCache := NewResultsCache()

	service := NewLeaderboardService(players, events, results, resultsCache, scoring.DefaultRules(), nil, logging.NewNop())
	return service, resultsCache, results
}

func TestBuildAggregatesAndRanks(t *testing.T) {
	t.Parallel()

	service, resultsCache, _ := newLeaderboardFixture()
	resultsCache.Install([]result.Result{
		{PlayerID: "p_zenith", EventID: "t_1", Placement: 1},
		{PlayerID: "p_zenith", EventID: "t_2", Placement: 4},
		{PlayerID: "p_karma", EventID: "t_1", Placement: 2},
		{PlayerID: "p_karma", EventID: "t_2", Placement: 1},
		{PlayerID: "p_aria", EventID: "t_3", Placement: 3},
		{PlayerID: "p_zenith", EventID: "t_ghost", Placement: 1}, // unknown event, skipped
		{PlayerID: "p_ghost", EventID: "t_1", Placement: 9},     // unknown player, skipped
	})

	board, err := service.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if board.PlayersKnown != 3 || board.EventsKnown != 3 {
		t.Fatalf("known counts = %d players %d events, want 3/3", board.PlayersKnown, board.EventsKnown)
	}
	if board.ResultsUsed != 5 {
		t.Fatalf("ResultsUsed = %d, want 5", board.ResultsUsed)
	}
	if len(board.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(board.Rows))
	}

	// Tier C multiplies by 0.3, tier A by 0.6, MAJOR by 0.75.
	// Zenith: round(2000*0.3) + round(1100*0.6) = 600 + 660 = 1260.
	// Karma:  round(1600*0.3) + round(2000*0.6) = 480 + 1200 = 1680.
	// Aria:   round(1300*0.75) = 975.
	want := []LeaderboardRow{
		{Rank: 1, PlayerID: "p_karma", Tag: "Karma", Region: "NA", Points: 1680, Events: 2, BestFinish: 1},
		{Rank: 2, PlayerID: "p_zenith", Tag: "Zenith", Region: "EU", Points: 1260, Events: 2, BestFinish: 1},
		{Rank: 3, PlayerID: "p_aria", Tag: "Aria", Region: "NA", Points: 975, Events: 1, BestFinish: 3},
	}
	for i, row := range board.Rows {
		if row != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, row, want[i])
		}
	}
}

func TestBuildSeasonFilter(t *testing.T) {
	t.Parallel()

	service, resultsCache, _ := newLeaderboardFixture()
	resultsCache.Install([]result.Result{
		{PlayerID: "p_zenith", EventID: "t_1", Placement: 1},
		{PlayerID: "p_aria", EventID: "t_3", Placement: 1},
	})

	board, err := service.Build(context.Background(), intPtr(2025))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if board.Season == nil || *board.Season != 2025 {
		t.Fatalf("Season = %v, want 2025", board.Season)
	}
	if len(board.Rows) != 1 || board.Rows[0].PlayerID != "p_aria" {
		t.Fatalf("rows = %+v, want only p_aria", board.Rows)
	}
	if board.ResultsUsed != 1 {
		t.Fatalf("ResultsUsed = %d, want 1", board.ResultsUsed)
	}
	// Known counts describe the whole registry, not the filtered slice.
	if board.PlayersKnown != 3 || board.EventsKnown != 3 {
		t.Fatalf("known counts = %d/%d, want 3/3", board.PlayersKnown, board.EventsKnown)
	}
}

func TestBuildFallsBackToStoreBeforeFirstRebuild(t *testing.T) {
	t.Parallel()

	service, _, results := newLeaderboardFixture()
	results.results = []result.Result{
		{PlayerID: "p_karma", EventID: "t_1", Placement: 1},
	}

	board, err := service.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(board.Rows) != 1 || board.Rows[0].PlayerID != "p_karma" {
		t.Fatalf("rows = %+v, want p_karma from the durable store", board.Rows)
	}
}

func TestBuildPrefersInstalledCacheOverStore(t *testing.T) {
	t.Parallel()

	service, resultsCache, results := newLeaderboardFixture()
	results.results = []result.Result{
		{PlayerID: "p_karma", EventID: "t_1", Placement: 1},
	}
	resultsCache.Install([]result.Result{
		{PlayerID: "p_zenith", EventID: "t_1", Placement: 1},
	})

	board, err := service.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(board.Rows) != 1 || board.Rows[0].PlayerID != "p_zenith" {
		t.Fatalf("rows = %+v, want cached p_zenith", board.Rows)
	}
}

func TestBuildUsesResponseCache(t *testing.T) {
	t.Parallel()

	players := &stubPlayerRepository{players: []player.Player{
		{ID: "p_zenith", Tag: "Zenith", ExternalID: int64Ptr(101)},
	}}
	events := &stubEventRepository{events: []event.Event{
		{ID: "t_1", Season: 2026, Tier: "B"},
	}}
	results := &stubResultRepository{results: []result.Result{
		{PlayerID: "p_zenith", EventID: "t_1", Placement: 1},
	}}
	responseCache := cache.NewStore(time.Minute)
	service := NewLeaderboardService(players, events, results, NewResultsCache(), scoring.DefaultRules(), responseCache, logging.NewNop())

	first, err := service.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}

	// A store mutation without invalidation must not show up.
	results.mu.Lock()
	results.results = append(results.results, result.Result{PlayerID: "p_zenith", EventID: "t_1", Placement: 2})
	results.mu.Unlock()

	second, err := service.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if second.ResultsUsed != first.ResultsUsed {
		t.Fatalf("cached build recomputed: first used %d, second %d", first.ResultsUsed, second.ResultsUsed)
	}

	responseCache.DeletePrefix(context.Background(), leaderboardCachePrefix)
	third, err := service.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("third Build: %v", err)
	}
	if third.ResultsUsed != first.ResultsUsed+1 {
		t.Fatalf("invalidated build used %d results, want %d", third.ResultsUsed, first.ResultsUsed+1)
	}
}

func TestBuildAllSeasons(t *testing.T) {
	t.Parallel()

	service, resultsCache, _ := newLeaderboardFixture()
	resultsCache.Install([]result.Result{
		{PlayerID: "p_zenith", EventID: "t_1", Placement: 1},
		{PlayerID: "p_aria", EventID: "t_3", Placement: 1},
	})

	boards, err := service.BuildAllSeasons(context.Background(), 2)
	if err != nil {
		t.Fatalf("BuildAllSeasons: %v", err)
	}

	if len(boards) != 2 {
		t.Fatalf("boards = %d, want one per season", len(boards))
	}
	if boards[0].Season != 2025 || boards[1].Season != 2026 {
		t.Fatalf("season order = %d, %d, want 2025, 2026", boards[0].Season, boards[1].Season)
	}
	if len(boards[0].Board.Rows) != 1 || boards[0].Board.Rows[0].PlayerID != "p_aria" {
		t.Fatalf("2025 board = %+v, want only p_aria", boards[0].Board.Rows)
	}
	if len(boards[1].Board.Rows) != 1 || boards[1].Board.Rows[0].PlayerID != "p_zenith" {
		t.Fatalf("2026 board = %+v, want only p_zenith", boards[1].Board.Rows)
	}
}

func TestSortLeaderboardRows(t *testing.T) {
	t.Parallel()

	rows := []LeaderboardRow{
		{PlayerID: "p_d", Tag: "Delta", Points: 500, Events: 2, BestFinish: 0},
		{PlayerID: "p_b", Tag: "Bravo", Points: 500, Events: 2, BestFinish: 3},
		{PlayerID: "p_a", Tag: "alpha", Points: 500, Events: 2, BestFinish: 3},
		{PlayerID: "p_f", Tag: "Foxtrot", Points: 500, Events: 3, BestFinish: 3},
		{PlayerID: "p_c", Tag: "Charlie", Points: 800, Events: 1, BestFinish: 5},
		{PlayerID: "p_e", Tag: "Alpha", Points: 500, Events: 2, BestFinish: 3},
	}

	sortLeaderboardRows(rows)

	// Points first, then best finish with missing finishes last, then event
	// count, then byte-wise tag order (so "Alpha" sorts before "alpha").
	wantOrder := []string{"p_c", "p_f", "p_e", "p_b", "p_a", "p_d"}
	for i, id := range wantOrder {
		if rows[i].PlayerID != id {
			t.Fatalf("position %d = %s, want %s (full order %+v)", i, rows[i].PlayerID, id, rows)
		}
	}
}
