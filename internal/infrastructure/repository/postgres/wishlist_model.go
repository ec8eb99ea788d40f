package postgres

import (
	"database/sql"

	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/wishlist"
)

type wishlistEntryTableModel struct {
	LeagueID       string         `db:"league_id"`
	TeamID         string         `db:"team_id"`
	PlayerID       string         `db:"player_id"`
	Rank           int            `db:"rank"`
	PositionFilter sql.NullString `db:"position_filter"`
	Note           sql.NullString `db:"note"`
}

func wishlistEntryFromRow(row wishlistEntryTableModel) wishlist.Entry {
	out := wishlist.Entry{
		LeagueID: row.LeagueID,
		TeamID:   row.TeamID,
		PlayerID: row.PlayerID,
		Rank:     row.Rank,
	}
	if row.PositionFilter.Valid {
		out.PositionFilter = player.Position(row.PositionFilter.String)
	}
	if row.Note.Valid {
		out.Note = row.Note.String
	}

	return out
}
