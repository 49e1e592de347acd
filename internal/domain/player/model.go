package player

import "fmt"

// Player is a registered competitor in the player registry. ExternalID links
// the player to the upstream bracket provider; it is nil until a mapping is
// known, and results can only be attributed once it is set.
type Player struct {
	ID         string
	Tag        string
	Region     string
	ExternalID *int64
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Tag == "" {
		return fmt.Errorf("player tag is required")
	}

	return nil
}
