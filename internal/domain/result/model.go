package result

import "fmt"

// Result is one player's final placement at one event. A player holds at
// most one result per event; (PlayerID, EventID) is the identity key.
type Result struct {
	PlayerID  string
	EventID   string
	Placement int
}

func (r Result) Validate() error {
	if r.PlayerID == "" {
		return fmt.Errorf("result player id is required")
	}
	if r.EventID == "" {
		return fmt.Errorf("result event id is required")
	}
	if r.Placement < 1 {
		return fmt.Errorf("result placement must be at least 1")
	}

	return nil
}

func (r Result) Key() string {
	return r.PlayerID + "|" + r.EventID
}

// MergeAppend adds incoming results to existing, skipping any whose
// (PlayerID, EventID) key is already present. Duplicates inside incoming
// collapse to the first occurrence. Existing records are never modified.
func MergeAppend(existing, incoming []Result) (merged []Result, appended int) {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, r := range existing {
		seen[r.Key()] = struct{}{}
	}

	merged = append(make([]Result, 0, len(existing)+len(incoming)), existing...)
	for _, r := range incoming {
		key := r.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, r)
		appended++
	}

	return merged, appended
}

// DropEvent removes every result belonging to eventID.
func DropEvent(results []Result, eventID string) (kept []Result, removed int) {
	kept = make([]Result, 0, len(results))
	for _, r := range results {
		if r.EventID == eventID {
			removed++
			continue
		}
		kept = append(kept, r)
	}

	return kept, removed
}
