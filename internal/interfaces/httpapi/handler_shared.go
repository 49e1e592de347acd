package httpapi

import (
	"time"

	"github.com/bracketworks/bracketboard/internal/domain/event"
	"github.com/bracketworks/bracketboard/internal/domain/player"
	"github.com/bracketworks/bracketboard/internal/usecase"
)

type createPlayerRequest struct {
	Tag        string `json:"tag" validate:"required,max=64"`
	Region     string `json:"region" validate:"omitempty,max=32"`
	ExternalID *int64 `json:"externalPlayerId" validate:"omitempty,gt=0"`
}

type importEventRequest struct {
	Slug   string `json:"slug" validate:"required,max=256"`
	Season int    `json:"season" validate:"gte=0"`
	Tier   string `json:"tier" validate:"omitempty,max=32"`
}

type reimportEventRequest struct {
	Slug string `json:"slug" validate:"required,max=256"`
}

type playerDTO struct {
	ID         string `json:"id"`
	Tag        string `json:"tag"`
	Region     string `json:"region,omitempty"`
	ExternalID *int64 `json:"externalPlayerId,omitempty"`
}

type eventDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Season int    `json:"season"`
	Tier   string `json:"tier"`
}

type leaderboardRowDTO struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"playerId"`
	Tag        string `json:"tag"`
	Region     string `json:"region,omitempty"`
	Points     int    `json:"points"`
	Events     int    `json:"events"`
	BestFinish int    `json:"bestFinish,omitempty"`
}

type leaderboardDTO struct {
	Season       *int                `json:"season,omitempty"`
	Rows         []leaderboardRowDTO `json:"rows"`
	PlayersKnown int                 `json:"playersKnown"`
	EventsKnown  int                 `json:"eventsKnown"`
	ResultsUsed  int                 `json:"resultsUsed"`
}

type seasonLeaderboardDTO struct {
	Season int            `json:"season"`
	Board  leaderboardDTO `json:"board"`
}

type cacheStatusDTO struct {
	Rebuilding      bool       `json:"rebuilding"`
	LastRebuildAt   *time.Time `json:"lastRebuildAt,omitempty"`
	LastError       string     `json:"lastError,omitempty"`
	EventsProcessed int        `json:"eventsProcessed"`
	EventsTotal     int        `json:"eventsTotal"`
	ResultsCount    int        `json:"resultsCount"`
}

type unmappedEntryDTO struct {
	Placement  int    `json:"placement"`
	ExternalID *int64 `json:"externalPlayerId,omitempty"`
	Tag        string `json:"tag,omitempty"`
}

type resultDTO struct {
	PlayerID  string `json:"playerId"`
	EventID   string `json:"eventId"`
	Placement int    `json:"placement"`
}

type importEventDTO struct {
	EventID      string             `json:"eventId"`
	EventName    string             `json:"eventName"`
	EventCreated bool               `json:"eventCreated"`
	Fetched      int                `json:"fetched"`
	Mapped       int                `json:"mapped"`
	Appended     int                `json:"appended"`
	Unmapped     []unmappedEntryDTO `json:"unmapped"`
	Rebuild      cacheStatusDTO     `json:"rebuild"`
}

type reimportEventDTO struct {
	EventID  string             `json:"eventId"`
	Fetched  int                `json:"fetched"`
	Mapped   int                `json:"mapped"`
	Removed  int                `json:"removed"`
	Appended int                `json:"appended"`
	Unmapped []unmappedEntryDTO `json:"unmapped"`
	Rebuild  cacheStatusDTO     `json:"rebuild"`
}

type eventPreviewDTO struct {
	EventID  string             `json:"eventId"`
	Fetched  int                `json:"fetched"`
	Mapped   []resultDTO        `json:"mapped"`
	Unmapped []unmappedEntryDTO `json:"unmapped"`
}

type eventResultCountDTO struct {
	EventID string `json:"eventId"`
	Name    string `json:"name"`
	Season  int    `json:"season"`
	Results int    `json:"results"`
}

type duplicateExternalIDDTO struct {
	ExternalID int64    `json:"externalPlayerId"`
	PlayerIDs  []string `json:"playerIds"`
}

type resultsSummaryDTO struct {
	TotalResults int                      `json:"totalResults"`
	Events       []eventResultCountDTO    `json:"events"`
	Duplicates   []duplicateExternalIDDTO `json:"duplicateExternalIds"`
}

type tournamentEventDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type tournamentDTO struct {
	ID     int64                `json:"id"`
	Name   string               `json:"name"`
	Slug   string               `json:"slug"`
	Events []tournamentEventDTO `json:"events"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:         p.ID,
		Tag:        p.Tag,
		Region:     p.Region,
		ExternalID: p.ExternalID,
	}
}

func eventToDTO(e event.Event) eventDTO {
	return eventDTO{
		ID:     e.ID,
		Name:   e.Name,
		Slug:   e.Slug,
		Season: e.Season,
		Tier:   e.Tier,
	}
}

func leaderboardToDTO(board usecase.Leaderboard) leaderboardDTO {
	rows := make([]leaderboardRowDTO, 0, len(board.Rows))
	for _, row := range board.Rows {
		rows = append(rows, leaderboardRowDTO{
			Rank:       row.Rank,
			PlayerID:   row.PlayerID,
			Tag:        row.Tag,
			Region:     row.Region,
			Points:     row.Points,
			Events:     row.Events,
			BestFinish: row.BestFinish,
		})
	}

	return leaderboardDTO{
		Season:       board.Season,
		Rows:         rows,
		PlayersKnown: board.PlayersKnown,
		EventsKnown:  board.EventsKnown,
		ResultsUsed:  board.ResultsUsed,
	}
}

func cacheStatusToDTO(status usecase.CacheStatus) cacheStatusDTO {
	return cacheStatusDTO{
		Rebuilding:      status.Rebuilding,
		LastRebuildAt:   status.LastRebuildAt,
		LastError:       status.LastError,
		EventsProcessed: status.EventsProcessed,
		EventsTotal:     status.EventsTotal,
		ResultsCount:    status.ResultsCount,
	}
}

func unmappedToDTO(entries []usecase.UnmappedEntry) []unmappedEntryDTO {
	out := make([]unmappedEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, unmappedEntryDTO{
			Placement:  entry.Placement,
			ExternalID: entry.ExternalID,
			Tag:        entry.Tag,
		})
	}

	return out
}

func tournamentToDTO(tournament usecase.ExternalTournament) tournamentDTO {
	events := make([]tournamentEventDTO, 0, len(tournament.Events))
	for _, item := range tournament.Events {
		events = append(events, tournamentEventDTO{
			ID:   item.ID,
			Name: item.Name,
			Slug: item.Slug,
		})
	}

	return tournamentDTO{
		ID:     tournament.ID,
		Name:   tournament.Name,
		Slug:   tournament.Slug,
		Events: events,
	}
}
