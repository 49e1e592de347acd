package usecase

import "github.com/bracketworks/bracketboard/internal/domain/result"

// UnmappedEntry is a standing node that could not be attributed to a
// registered player. Tag carries the best available display identity:
// the structured player tag, then the participant tag, then the entrant
// name; empty when the node exposed nothing at all.
type UnmappedEntry struct {
	Placement  int
	ExternalID *int64
	Tag        string
}

// normalizeStandings partitions raw placements into results attributed via
// the identity index and unmapped leftovers. Every input node lands in
// exactly one of the two outputs.
func normalizeStandings(eventID string, placements []ExternalPlacement, index map[int64]string) ([]result.Result, []UnmappedEntry) {
	mapped := make([]result.Result, 0, len(placements))
	unmapped := make([]UnmappedEntry, 0)

	for _, placement := range placements {
		if placement.PlayerExternalID != nil {
			if playerID, ok := index[*placement.PlayerExternalID]; ok {
				mapped = append(mapped, result.Result{
					PlayerID:  playerID,
					EventID:   eventID,
					Placement: placement.Placement,
				})
				continue
			}
		}

		unmapped = append(unmapped, UnmappedEntry{
			Placement:  placement.Placement,
			ExternalID: placement.PlayerExternalID,
			Tag:        displayTag(placement),
		})
	}

	return mapped, unmapped
}

func displayTag(placement ExternalPlacement) string {
	if placement.PlayerTag != "" {
		return placement.PlayerTag
	}
	if placement.ParticipantTag != "" {
		return placement.ParticipantTag
	}
	return placement.EntrantName
}
