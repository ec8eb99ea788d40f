package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/draft-league/internal/domain/player"
)

type playerTableModel struct {
	ID            string          `db:"id"`
	LeagueID      string          `db:"league_id"`
	Name          string          `db:"name"`
	FullName      string          `db:"full_name"`
	Club          string          `db:"club"`
	Position      string          `db:"position"`
	Status        string          `db:"status"`
	Drafted       bool            `db:"drafted"`
	OwnerID       sql.NullString  `db:"owner_id"`
	NowCost       *float64        `db:"now_cost"`
	TotalPoints   *int            `db:"total_points"`
	PointsPerGame *float64        `db:"points_per_game"`
	GoalsScored   *int            `db:"goals_scored"`
	Assists       *int            `db:"assists"`
	Minutes       *int            `db:"minutes"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func playerFromRow(row playerTableModel) player.Player {
	out := player.Player{
		ID:       row.ID,
		LeagueID: row.LeagueID,
		Name:     row.Name,
		FullName: row.FullName,
		Club:     row.Club,
		Position: player.Position(row.Position),
		Status:   player.Status(row.Status),
		Drafted:  row.Drafted,
		Stats: player.Stats{
			NowCost:       row.NowCost,
			TotalPoints:   row.TotalPoints,
			PointsPerGame: row.PointsPerGame,
			GoalsScored:   row.GoalsScored,
			Assists:       row.Assists,
			Minutes:       row.Minutes,
		},
	}
	if row.OwnerID.Valid {
		out.OwnerID = row.OwnerID.String
	}

	return out
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
