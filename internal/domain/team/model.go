package team

import "fmt"

// Team is one drafting roster inside a league, run by a human owner.
// The players it holds are derived from player ownership, never stored here.
type Team struct {
	ID       string
	LeagueID string
	Name     string
	Owner    string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Owner == "" {
		return fmt.Errorf("team owner is required")
	}

	return nil
}
