package event

import "fmt"

// Event is an imported tournament event. Tier feeds the scoring multiplier
// and may be empty, in which case ranking falls back to the default tier.
type Event struct {
	ID     string
	Name   string
	Slug   string
	Season int
	Tier   string
}

func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.Slug == "" {
		return fmt.Errorf("event slug is required")
	}
	if e.Season < 0 {
		return fmt.Errorf("event season must not be negative")
	}

	return nil
}
