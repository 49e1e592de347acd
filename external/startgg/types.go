package startgg

import (
	"encoding/json"
	"strings"

	"github.com/bracketworks/bracketboard/internal/usecase"
)

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type eventWithTournamentData struct {
	Event *struct {
		ID         int64  `json:"id"`
		Name       string `json:"name"`
		Slug       string `json:"slug"`
		Tournament *struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"tournament"`
	} `json:"event"`
}

type standingNode struct {
	Placement int `json:"placement"`
	Entrant   *struct {
		ID           int64  `json:"id"`
		Name         string `json:"name"`
		Participants []struct {
			ID       int64  `json:"id"`
			GamerTag string `json:"gamerTag"`
			Player   *struct {
				ID       int64  `json:"id"`
				GamerTag string `json:"gamerTag"`
			} `json:"player"`
		} `json:"participants"`
	} `json:"entrant"`
}

type eventStandingsData struct {
	Event *struct {
		ID        int64 `json:"id"`
		Standings struct {
			Nodes []standingNode `json:"nodes"`
		} `json:"standings"`
	} `json:"event"`
}

type tournamentEventsData struct {
	Tournament *struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Slug   string `json:"slug"`
		Events []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"events"`
	} `json:"tournament"`
}

// mapStandingNode flattens one standings node, keeping each identity layer
// separate so downstream mapping can apply its fallback chain. The first
// participant carrying a structured player wins; team entrants without one
// surface only tags and the entrant name.
func mapStandingNode(node standingNode) usecase.ExternalPlacement {
	out := usecase.ExternalPlacement{Placement: node.Placement}
	if node.Entrant == nil {
		return out
	}

	out.EntrantName = strings.TrimSpace(node.Entrant.Name)
	for _, participant := range node.Entrant.Participants {
		if out.ParticipantTag == "" {
			out.ParticipantTag = strings.TrimSpace(participant.GamerTag)
		}
		if out.PlayerExternalID == nil && participant.Player != nil && participant.Player.ID > 0 {
			playerID := participant.Player.ID
			out.PlayerExternalID = &playerID
			out.PlayerTag = strings.TrimSpace(participant.Player.GamerTag)
		}
	}

	return out
}
