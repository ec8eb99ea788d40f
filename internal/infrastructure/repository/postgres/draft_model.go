package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/draft-league/internal/domain/draft"
)

type draftTableModel struct {
	LeagueID         string         `db:"league_id"`
	DraftOrder       pq.StringArray `db:"draft_order"`
	CurrentPick      int            `db:"current_pick"`
	CurrentTeamIndex int            `db:"current_team_index"`
	TotalTeams       int            `db:"total_teams"`
	IsSnake          bool           `db:"is_snake"`
	IsActive         bool           `db:"is_active"`
	IsLocked         bool           `db:"is_locked"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func draftFromRow(row draftTableModel) draft.Draft {
	return draft.Draft{
		LeagueID:         row.LeagueID,
		DraftOrder:       append([]string(nil), row.DraftOrder...),
		CurrentPick:      row.CurrentPick,
		CurrentTeamIndex: row.CurrentTeamIndex,
		TotalTeams:       row.TotalTeams,
		IsSnake:          row.IsSnake,
		IsActive:         row.IsActive,
		IsLocked:         row.IsLocked,
	}
}
