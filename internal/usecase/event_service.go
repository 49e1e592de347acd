package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/bracketworks/bracketboard/internal/domain/event"
	"github.com/bracketworks/bracketboard/internal/domain/player"
	"github.com/bracketworks/bracketboard/internal/domain/result"
)

type EventResultCount struct {
	EventID string
	Name    string
	Season  int
	Results int
}

type DuplicateExternalID struct {
	ExternalID int64
	PlayerIDs  []string
}

// ResultsSummary is the operator view of stored data: per-event result
// counts plus registry integrity findings.
type ResultsSummary struct {
	TotalResults int
	Events       []EventResultCount
	Duplicates   []DuplicateExternalID
}

// EventService serves the event registry and data-integrity summaries.
type EventService struct {
	events  event.Repository
	players player.Repository
	results result.Repository
}

func NewEventService(events event.Repository, players player.Repository, results result.Repository) *EventService {
	return &EventService{
		events:  events,
		players: players,
		results: results,
	}
}

func (s *EventService) ListEvents(ctx context.Context) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.ListEvents")
	defer span.End()

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Season != events[j].Season {
			return events[i].Season < events[j].Season
		}
		return events[i].ID < events[j].ID
	})

	return events, nil
}

// ResultsSummary counts stored results per event and flags external IDs
// claimed by more than one player. Duplicate claims resolve last-write-wins
// during mapping, so they must be visible somewhere an operator looks.
func (s *EventService) ResultsSummary(ctx context.Context) (ResultsSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.ResultsSummary")
	defer span.End()

	events, err := s.events.List(ctx)
	if err != nil {
		return ResultsSummary{}, fmt.Errorf("list events: %w", err)
	}
	players, err := s.players.List(ctx)
	if err != nil {
		return ResultsSummary{}, fmt.Errorf("list players: %w", err)
	}
	results, err := s.results.List(ctx)
	if err != nil {
		return ResultsSummary{}, fmt.Errorf("list results: %w", err)
	}

	countByEvent := make(map[string]int, len(events))
	for _, item := range results {
		countByEvent[item.EventID]++
	}

	eventCounts := make([]EventResultCount, 0, len(events))
	for _, item := range events {
		eventCounts = append(eventCounts, EventResultCount{
			EventID: item.ID,
			Name:    item.Name,
			Season:  item.Season,
			Results: countByEvent[item.ID],
		})
	}
	sort.SliceStable(eventCounts, func(i, j int) bool {
		if eventCounts[i].Season != eventCounts[j].Season {
			return eventCounts[i].Season < eventCounts[j].Season
		}
		return eventCounts[i].EventID < eventCounts[j].EventID
	})

	duplicates := make([]DuplicateExternalID, 0)
	for externalID, ids := range duplicateExternalIDs(players) {
		sort.Strings(ids)
		duplicates = append(duplicates, DuplicateExternalID{
			ExternalID: externalID,
			PlayerIDs:  ids,
		})
	}
	sort.SliceStable(duplicates, func(i, j int) bool {
		return duplicates[i].ExternalID < duplicates[j].ExternalID
	})

	return ResultsSummary{
		TotalResults: len(results),
		Events:       eventCounts,
		Duplicates:   duplicates,
	}, nil
}
