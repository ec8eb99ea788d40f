package roster

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/draft-league/internal/domain/player"
)

var (
	ErrClubLimit           = errors.New("max players from same club reached")
	ErrPositionLimit       = errors.New("position limit reached")
	ErrUnknownPosition     = errors.New("unknown player position")
	ErrInvalidRosterLimits = errors.New("invalid roster limits")
)

// Rules stores the roster-shape constraints a draft pick is checked against.
type Rules struct {
	MaxPerClub    int
	MaxByPosition map[player.Position]int
}

// DefaultRules is the standard 15-player roster shape: 2 GK, 5 DEF, 5 MID,
// 3 FWD, with at most 3 players from any one club.
func DefaultRules() Rules {
	return Rules{
		MaxPerClub: 3,
		MaxByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 2,
			player.PositionDefender:   5,
			player.PositionMidfielder: 5,
			player.PositionForward:    3,
		},
	}
}

func (r Rules) Validate() error {
	if r.MaxPerClub < 1 {
		return fmt.Errorf("%w: max per club must be at least 1", ErrInvalidRosterLimits)
	}
	for pos := range player.AllPositions {
		if r.MaxByPosition[pos] < 1 {
			return fmt.Errorf("%w: limit for %s must be at least 1", ErrInvalidRosterLimits, pos)
		}
	}
	return nil
}

// RosterSize is the number of picks a full roster takes under these rules.
func (r Rules) RosterSize() int {
	total := 0
	for _, limit := range r.MaxByPosition {
		total += limit
	}
	return total
}

// CanDraft decides whether a team that already owns the given players may
// legally add the candidate. Pure: it reads counts and mutates nothing, so
// the orchestrator can evaluate it before touching any state.
func CanDraft(owned []player.Player, candidate player.Player, rules Rules) error {
	if _, ok := player.AllPositions[candidate.Position]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPosition, candidate.Position)
	}

	clubCounter := make(map[string]int, len(owned))
	positionCounter := make(map[player.Position]int, len(player.AllPositions))
	for _, p := range owned {
		clubCounter[p.Club]++
		positionCounter[p.Position]++
	}

	if clubCounter[candidate.Club] >= rules.MaxPerClub {
		return fmt.Errorf("%w: club=%s max=%d", ErrClubLimit, candidate.Club, rules.MaxPerClub)
	}
	if limit := rules.MaxByPosition[candidate.Position]; positionCounter[candidate.Position] >= limit {
		return fmt.Errorf("%w: position=%s max=%d", ErrPositionLimit, candidate.Position, limit)
	}

	return nil
}
