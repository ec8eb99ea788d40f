package draft

import "fmt"

// CurrentRound derives the 1-based round a pick falls in. It is defined only
// for totalTeams >= 1; setup guarantees a draft never exists without teams.
func CurrentRound(pick, totalTeams int) (int, error) {
	if totalTeams < 1 {
		return 0, ErrNoTeams
	}
	if pick < 1 {
		return 0, fmt.Errorf("pick must be at least 1, got %d", pick)
	}
	return (pick-1)/totalTeams + 1, nil
}

// IsReverseRound reports whether the round runs against the draft order.
// Only even rounds of a snake draft reverse.
func IsReverseRound(round int, snake bool) bool {
	return snake && round%2 == 0
}

// CurrentTeam resolves the team on the clock. Reverse rounds index the order
// from the back, producing the canonical snake pattern 1..N, N..1, 1..N.
func CurrentTeam(order []string, index, totalTeams int, reverse bool) (string, error) {
	if totalTeams < 1 || len(order) < totalTeams {
		return "", ErrNoTeams
	}
	if index < 0 || index >= totalTeams {
		return "", fmt.Errorf("team index %d out of range [0,%d)", index, totalTeams)
	}
	if reverse {
		return order[totalTeams-1-index], nil
	}
	return order[index], nil
}

// ActingTeam resolves the team on the clock for the draft's current pick.
func (d Draft) ActingTeam() (string, int, error) {
	round, err := CurrentRound(d.CurrentPick, d.TotalTeams)
	if err != nil {
		return "", 0, err
	}
	teamID, err := CurrentTeam(d.DraftOrder, d.CurrentTeamIndex, d.TotalTeams, IsReverseRound(round, d.IsSnake))
	if err != nil {
		return "", 0, err
	}
	return teamID, round, nil
}

// Advance moves the draft to the next pick. It is the only mutator of the
// pick cursor and must run exactly once per successful pick, never on a
// rejected one. The team index wraps to zero when a round completes.
func (d *Draft) Advance() {
	d.CurrentPick++
	d.CurrentTeamIndex++
	if d.CurrentTeamIndex >= d.TotalTeams {
		d.CurrentTeamIndex = 0
	}
}
