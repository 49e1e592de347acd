package usecase

import "github.com/bracketworks/bracketboard/internal/domain/player"

// buildIdentityIndex maps provider player IDs onto internal player IDs. The
// index is rebuilt from the registry on every sync; it is never cached
// across syncs. When two players claim the same external ID the later
// registry entry wins, and duplicateExternalIDs surfaces the conflict.
func buildIdentityIndex(players []player.Player) map[int64]string {
	index := make(map[int64]string, len(players))
	for _, p := range players {
		if p.ExternalID == nil {
			continue
		}
		index[*p.ExternalID] = p.ID
	}

	return index
}

// duplicateExternalIDs reports external IDs claimed by more than one
// registry entry, keyed by external ID.
func duplicateExternalIDs(players []player.Player) map[int64][]string {
	claims := make(map[int64][]string)
	for _, p := range players {
		if p.ExternalID == nil {
			continue
		}
		claims[*p.ExternalID] = append(claims[*p.ExternalID], p.ID)
	}

	for externalID, ids := range claims {
		if len(ids) < 2 {
			delete(claims, externalID)
		}
	}

	return claims
}
