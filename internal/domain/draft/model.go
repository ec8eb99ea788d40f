package draft

import (
	"errors"
	"fmt"
)

var (
	ErrNoActiveDraft     = errors.New("no active draft")
	ErrDraftLocked       = errors.New("draft is locked")
	ErrDraftComplete     = errors.New("draft is complete")
	ErrPlayerUnavailable = errors.New("player not available")
	ErrNoTeams           = errors.New("draft requires at least one team")
)

// State is the lifecycle phase of a league's draft.
type State string

const (
	StateActive   State = "active"
	StateLocked   State = "locked"
	StateComplete State = "complete"
	StateInactive State = "inactive"
)

// Draft is the singleton per-league turn record. CurrentPick is 1-based and
// only ever grows; CurrentTeamIndex is a 0-based cursor into DraftOrder that
// resets each round. The current round is always derived, never stored.
type Draft struct {
	LeagueID         string
	DraftOrder       []string
	CurrentPick      int
	CurrentTeamIndex int
	TotalTeams       int
	IsSnake          bool
	IsActive         bool
	IsLocked         bool
}

// New builds the initial draft record for the given team order.
func New(leagueID string, order []string, snake bool) (Draft, error) {
	if leagueID == "" {
		return Draft{}, fmt.Errorf("draft league id is required")
	}
	if len(order) == 0 {
		return Draft{}, ErrNoTeams
	}

	return Draft{
		LeagueID:         leagueID,
		DraftOrder:       append([]string(nil), order...),
		CurrentPick:      1,
		CurrentTeamIndex: 0,
		TotalTeams:       len(order),
		IsSnake:          snake,
		IsActive:         true,
	}, nil
}

func (d Draft) Validate() error {
	if d.LeagueID == "" {
		return fmt.Errorf("draft league id is required")
	}
	if d.TotalTeams < 1 {
		return ErrNoTeams
	}
	if len(d.DraftOrder) != d.TotalTeams {
		return fmt.Errorf("draft order has %d teams, expected %d", len(d.DraftOrder), d.TotalTeams)
	}
	if d.CurrentPick < 1 {
		return fmt.Errorf("current pick must be at least 1, got %d", d.CurrentPick)
	}
	if d.CurrentTeamIndex < 0 || d.CurrentTeamIndex >= d.TotalTeams {
		return fmt.Errorf("current team index %d out of range [0,%d)", d.CurrentTeamIndex, d.TotalTeams)
	}

	return nil
}

// State derives the lifecycle phase. Completion wins over the lock flag so a
// finished draft reads as complete even when an admin left it locked.
func (d Draft) State(rosterSize int) State {
	if d.Completed(rosterSize) {
		return StateComplete
	}
	if !d.IsActive {
		return StateInactive
	}
	if d.IsLocked {
		return StateLocked
	}
	return StateActive
}

// Completed reports whether every roster slot in the league has been filled.
func (d Draft) Completed(rosterSize int) bool {
	if rosterSize <= 0 || d.TotalTeams <= 0 {
		return false
	}
	return d.CurrentPick > d.TotalTeams*rosterSize
}
