package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	qb "github.com/riskibarqy/draft-league/internal/platform/querybuilder"
)

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) GetByLeague(ctx context.Context, leagueID string) (draft.Draft, bool, error) {
	query, args, err := qb.Select("*").From("drafts").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return draft.Draft{}, false, fmt.Errorf("build get draft query: %w", err)
	}

	var row draftTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.Draft{}, false, nil
		}
		return draft.Draft{}, false, fmt.Errorf("get draft by league: %w", err)
	}

	return draftFromRow(row), true, nil
}

func (r *DraftRepository) Create(ctx context.Context, item draft.Draft) error {
	query, args, err := qb.InsertInto("drafts").
		Columns(
			"league_id",
			"draft_order",
			"current_pick",
			"current_team_index",
			"total_teams",
			"is_snake",
			"is_active",
			"is_locked",
		).
		Values(
			item.LeagueID,
			stringArray(item.DraftOrder),
			item.CurrentPick,
			item.CurrentTeamIndex,
			item.TotalTeams,
			item.IsSnake,
			item.IsActive,
			item.IsLocked,
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert draft query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert draft for league %s: %w", item.LeagueID, err)
	}

	return nil
}

func (r *DraftRepository) Save(ctx context.Context, item draft.Draft) error {
	query, args, err := saveDraftSQL(item)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update draft for league %s: %w", item.LeagueID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read draft update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update draft for league %s: no draft record", item.LeagueID)
	}

	return nil
}

// ApplyPick writes the picked player's ownership and the advanced turn
// record together, so a crash between them cannot leave a player drafted
// while the draft cursor still points at the same pick.
func (r *DraftRepository) ApplyPick(ctx context.Context, advanced draft.Draft, picked player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for draft pick: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	pickQuery, pickArgs, err := qb.Update("players").
		Set("drafted", picked.Drafted).
		Set("owner_id", nullableString(picked.OwnerID)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("league_id", picked.LeagueID),
			qb.Eq("id", picked.ID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build pick player update query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, pickQuery, pickArgs...); err != nil {
		return fmt.Errorf("mark player %s drafted: %w", picked.ID, err)
	}

	draftQuery, draftArgs, err := saveDraftSQL(advanced)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, draftQuery, draftArgs...); err != nil {
		return fmt.Errorf("advance draft for league %s: %w", advanced.LeagueID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit draft pick tx: %w", err)
	}

	return nil
}

func (r *DraftRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	const query = `DELETE FROM drafts WHERE league_id = $1`
	if _, err := r.db.ExecContext(ctx, query, leagueID); err != nil {
		return fmt.Errorf("delete draft by league: %w", err)
	}

	return nil
}

func saveDraftSQL(item draft.Draft) (string, []any, error) {
	query, args, err := qb.Update("drafts").
		Set("draft_order", stringArray(item.DraftOrder)).
		Set("current_pick", item.CurrentPick).
		Set("current_team_index", item.CurrentTeamIndex).
		Set("total_teams", item.TotalTeams).
		Set("is_snake", item.IsSnake).
		Set("is_active", item.IsActive).
		Set("is_locked", item.IsLocked).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("league_id", item.LeagueID)).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build update draft query: %w", err)
	}

	return query, args, nil
}
