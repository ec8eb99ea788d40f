package wishlist

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/draft-league/internal/domain/player"
)

var (
	ErrDuplicateEntry = errors.New("player already on wishlist")
	ErrEntryNotFound  = errors.New("wishlist entry not found")
)

// Entry is one (team, player) wishlist row. Ranks within a team's wishlist
// are dense: a contiguous 1..N with no gaps or duplicates.
type Entry struct {
	LeagueID       string
	TeamID         string
	PlayerID       string
	Rank           int
	PositionFilter player.Position
	Note           string
}

func (e Entry) Validate() error {
	if e.LeagueID == "" {
		return fmt.Errorf("wishlist league id is required")
	}
	if e.TeamID == "" {
		return fmt.Errorf("wishlist team id is required")
	}
	if e.PlayerID == "" {
		return fmt.Errorf("wishlist player id is required")
	}
	if e.Rank < 1 {
		return fmt.Errorf("wishlist rank must be positive, got %d", e.Rank)
	}
	if e.PositionFilter != "" {
		if _, ok := player.AllPositions[e.PositionFilter]; !ok {
			return fmt.Errorf("invalid wishlist position filter: %s", e.PositionFilter)
		}
	}

	return nil
}
