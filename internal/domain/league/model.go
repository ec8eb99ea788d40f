package league

import (
	"fmt"
	"time"
)

// League is one isolated draft tenant. Each league carries its own player
// pool, teams, wishlist entries and a single draft record.
type League struct {
	ID        string
	Name      string
	Season    string
	CreatedAt time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Season == "" {
		return fmt.Errorf("league season is required")
	}

	return nil
}
