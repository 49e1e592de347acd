package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/bracketworks/bracketboard/internal/domain/event"
	"github.com/bracketworks/bracketboard/internal/domain/player"
	"github.com/bracketworks/bracketboard/internal/domain/result"
	"github.com/bracketworks/bracketboard/internal/domain/scoring"
	"github.com/bracketworks/bracketboard/internal/platform/cache"
	"github.com/bracketworks/bracketboard/internal/platform/logging"
)

const leaderboardCachePrefix = "leaderboard:"

type LeaderboardRow struct {
	Rank       int
	PlayerID   string
	Tag        string
	Region     string
	Points     int
	Events     int
	BestFinish int // 0 when the player has no finish at all
}

type Leaderboard struct {
	Season       *int
	Rows         []LeaderboardRow
	PlayersKnown int
	EventsKnown  int
	ResultsUsed  int
}

type SeasonLeaderboard struct {
	Season int
	Board  Leaderboard
}

// LeaderboardService ranks players by scored results. Results come from the
// results cache once a rebuild has installed one; before that the durable
// result store is used so a cold process still serves a board.
type LeaderboardService struct {
	players       player.Repository
	events        event.Repository
	results       result.Repository
	resultsCache  *ResultsCache
	rules         scoring.Rules
	responseCache *cache.Store
	logger        *logging.Logger
}

func NewLeaderboardService(
	players player.Repository,
	events event.Repository,
	results result.Repository,
	resultsCache *ResultsCache,
	rules scoring.Rules,
	responseCache *cache.Store,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		players:       players,
		events:        events,
		results:       results,
		resultsCache:  resultsCache,
		rules:         rules,
		responseCache: responseCache,
		logger:        logger,
	}
}

// Build computes the leaderboard, optionally filtered to one season.
// Responses are cached per season until the next import or rebuild.
func (s *LeaderboardService) Build(ctx context.Context, season *int) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.Build")
	defer span.End()

	if s.responseCache == nil {
		return s.build(ctx, season)
	}

	key := leaderboardCachePrefix + "season:all"
	if season != nil {
		key = leaderboardCachePrefix + "season:" + strconv.Itoa(*season)
	}

	cached, err := s.responseCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.build(ctx, season)
	})
	if err != nil {
		return Leaderboard{}, err
	}

	board, ok := cached.(Leaderboard)
	if !ok {
		return Leaderboard{}, fmt.Errorf("unexpected cached leaderboard type %T", cached)
	}
	return board, nil
}

// BuildAllSeasons computes one leaderboard per season present in the event
// registry, fanned out over a worker pool. This is pure in-memory compute;
// no provider calls happen here.
func (s *LeaderboardService) BuildAllSeasons(ctx context.Context, maxWorkers int) ([]SeasonLeaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.BuildAllSeasons")
	defer span.End()

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	seasonSet := make(map[int]struct{})
	for _, item := range events {
		seasonSet[item.Season] = struct{}{}
	}
	seasons := make([]int, 0, len(seasonSet))
	for season := range seasonSet {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)

	if len(seasons) == 0 {
		return []SeasonLeaderboard{}, nil
	}

	if maxWorkers < 1 {
		maxWorkers = 4
	}
	if maxWorkers > len(seasons) {
		maxWorkers = len(seasons)
	}

	pool, err := ants.NewPool(maxWorkers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	out := make([]SeasonLeaderboard, len(seasons))
	errs := make([]error, len(seasons))
	var wg sync.WaitGroup

	for i, season := range seasons {
		i, season := i, season
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			board, buildErr := s.Build(ctx, &season)
			if buildErr != nil {
				errs[i] = fmt.Errorf("season %d: %w", season, buildErr)
				return
			}
			out[i] = SeasonLeaderboard{Season: season, Board: board}
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit season %d: %w", season, submitErr)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (s *LeaderboardService) build(ctx context.Context, season *int) (Leaderboard, error) {
	players, err := s.players.List(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list players: %w", err)
	}
	events, err := s.events.List(ctx)
	if err != nil {
		return Leaderboard{}, fmt.Errorf("list events: %w", err)
	}
	results, err := s.loadResults(ctx)
	if err != nil {
		return Leaderboard{}, err
	}

	eventsByID := make(map[string]event.Event, len(events))
	for _, item := range events {
		eventsByID[item.ID] = item
	}
	playersByID := make(map[string]player.Player, len(players))
	for _, item := range players {
		playersByID[item.ID] = item
	}

	type aggregate struct {
		points     int
		events     int
		bestFinish int
	}
	totals := make(map[string]*aggregate)
	resultsUsed := 0

	for _, item := range results {
		evt, ok := eventsByID[item.EventID]
		if !ok {
			// Result for an event missing from the registry cannot be
			// scored or season-filtered.
			continue
		}
		if season != nil && evt.Season != *season {
			continue
		}
		if _, ok := playersByID[item.PlayerID]; !ok {
			// Orphaned result: its player left the registry. Dropped under
			// the same rule as unknown events so every row carries
			// registry-backed identity.
			continue
		}

		tier := s.rules.EffectiveTier(evt.Tier)
		agg := totals[item.PlayerID]
		if agg == nil {
			agg = &aggregate{}
			totals[item.PlayerID] = agg
		}
		agg.points += s.rules.Points(item.Placement, tier)
		agg.events++
		if agg.bestFinish == 0 || item.Placement < agg.bestFinish {
			agg.bestFinish = item.Placement
		}
		resultsUsed++
	}

	rows := make([]LeaderboardRow, 0, len(totals))
	for playerID, agg := range totals {
		p := playersByID[playerID]
		rows = append(rows, LeaderboardRow{
			PlayerID:   playerID,
			Tag:        p.Tag,
			Region:     p.Region,
			Points:     agg.points,
			Events:     agg.events,
			BestFinish: agg.bestFinish,
		})
	}

	sortLeaderboardRows(rows)
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return Leaderboard{
		Season:       season,
		Rows:         rows,
		PlayersKnown: len(players),
		EventsKnown:  len(events),
		ResultsUsed:  resultsUsed,
	}, nil
}

func (s *LeaderboardService) loadResults(ctx context.Context) ([]result.Result, error) {
	if s.resultsCache != nil {
		if cached, installed := s.resultsCache.Snapshot(); installed {
			return cached, nil
		}
	}

	stored, err := s.results.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return stored, nil
}

// sortLeaderboardRows orders by points descending, then best finish
// ascending with players lacking any finish last, then event count
// descending, then tag ascending (case-sensitive) as the final tiebreak.
func sortLeaderboardRows(rows []LeaderboardRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.BestFinish != b.BestFinish {
			if a.BestFinish == 0 {
				return false
			}
			if b.BestFinish == 0 {
				return true
			}
			return a.BestFinish < b.BestFinish
		}
		if a.Events != b.Events {
			return a.Events > b.Events
		}
		return a.Tag < b.Tag
	})
}
