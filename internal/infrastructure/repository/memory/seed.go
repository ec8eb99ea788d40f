package memory

import (
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/player"
)

const LeagueIDPremierLeague = "eng-premier-league-2025"

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:        LeagueIDPremierLeague,
			Name:      "Premier League",
			Season:    "2025/2026",
			CreatedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

// SeedPlayers is a small demo pool for running the draft without an import.
func SeedPlayers() []player.Player {
	seed := []struct {
		id       string
		name     string
		club     string
		position player.Position
		cost     float64
		points   int
	}{
		{"epl-gk-01", "Alisson", "Liverpool", player.PositionGoalkeeper, 5.5, 150},
		{"epl-gk-02", "Ederson", "Man City", player.PositionGoalkeeper, 5.5, 142},
		{"epl-gk-03", "Ramsdale", "Arsenal", player.PositionGoalkeeper, 4.5, 118},
		{"epl-def-01", "Alexander-Arnold", "Liverpool", player.PositionDefender, 8.0, 185},
		{"epl-def-02", "Van Dijk", "Liverpool", player.PositionDefender, 6.5, 160},
		{"epl-def-03", "Cancelo", "Man City", player.PositionDefender, 7.0, 170},
		{"epl-def-04", "James", "Chelsea", player.PositionDefender, 6.0, 145},
		{"epl-mid-01", "Salah", "Liverpool", player.PositionMidfielder, 13.0, 260},
		{"epl-mid-02", "De Bruyne", "Man City", player.PositionMidfielder, 12.5, 240},
		{"epl-mid-03", "Fernandes", "Man United", player.PositionMidfielder, 10.0, 210},
		{"epl-mid-04", "Saka", "Arsenal", player.PositionMidfielder, 9.0, 205},
		{"epl-fwd-01", "Haaland", "Man City", player.PositionForward, 14.0, 270},
		{"epl-fwd-02", "Kane", "Spurs", player.PositionForward, 12.5, 238},
		{"epl-fwd-03", "Jesus", "Arsenal", player.PositionForward, 8.0, 155},
		{"epl-fwd-04", "Darwin", "Liverpool", player.PositionForward, 7.5, 140},
	}

	out := make([]player.Player, 0, len(seed))
	for _, s := range seed {
		out = append(out, player.Player{
			ID:       s.id,
			LeagueID: LeagueIDPremierLeague,
			Name:     s.name,
			FullName: s.name,
			Club:     s.club,
			Position: s.position,
			Status:   player.StatusAvailable,
			Stats: player.Stats{
				NowCost:     floatp(s.cost),
				TotalPoints: intp(s.points),
			},
		})
	}

	return out
}
