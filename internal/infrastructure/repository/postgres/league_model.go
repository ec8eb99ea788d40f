package postgres

import "time"

type leagueTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Season    string    `db:"season"`
	CreatedAt time.Time `db:"created_at"`
}
