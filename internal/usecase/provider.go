package usecase

import "context"

// ExternalEvent is a bracket event resolved from the upstream provider,
// including the tournament that owns it.
type ExternalEvent struct {
	ID             int64
	Name           string
	Slug           string
	TournamentID   int64
	TournamentName string
}

// ExternalTournamentEvent is one event listed under a tournament.
type ExternalTournamentEvent struct {
	ID   int64
	Name string
	Slug string
}

// ExternalTournament is a tournament with its events, used by the import
// workflow to pick an event slug.
type ExternalTournament struct {
	ID     int64
	Name   string
	Slug   string
	Events []ExternalTournamentEvent
}

// ExternalPlacement is one raw standing node. Identity fields are carried
// exactly as the provider returned them; the normalizer applies the
// fallback chain. PlayerExternalID is nil when the provider exposed no
// structured player identity for the entrant.
type ExternalPlacement struct {
	Placement        int
	EntrantName      string
	ParticipantTag   string
	PlayerExternalID *int64
	PlayerTag        string
}

// StandingsProvider abstracts the upstream bracket API.
type StandingsProvider interface {
	// ResolveEvent resolves an event slug into event and tournament metadata.
	ResolveEvent(ctx context.Context, slug string) (ExternalEvent, error)
	// FetchAllStandings fetches the complete final standings for an event.
	// Any page failure fails the whole fetch; partial results are never
	// returned.
	FetchAllStandings(ctx context.Context, eventID int64) ([]ExternalPlacement, error)
	// ListTournamentEvents lists the events of a tournament slug.
	ListTournamentEvents(ctx context.Context, slug string) (ExternalTournament, error)
}
