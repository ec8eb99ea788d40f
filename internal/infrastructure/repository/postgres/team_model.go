package postgres

import "time"

type teamTableModel struct {
	ID        string    `db:"id"`
	LeagueID  string    `db:"league_id"`
	Name      string    `db:"name"`
	Owner     string    `db:"owner"`
	CreatedAt time.Time `db:"created_at"`
}
