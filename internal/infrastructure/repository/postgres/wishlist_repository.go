package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/domain/wishlist"
	qb "github.com/riskibarqy/draft-league/internal/platform/querybuilder"
)

type WishlistRepository struct {
	db *sqlx.DB
}

func NewWishlistRepository(db *sqlx.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) ListByTeam(ctx context.Context, leagueID, teamID string) ([]wishlist.Entry, error) {
	query, args, err := qb.Select("*").From("wishlist_entries").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("team_id", teamID),
		).
		OrderBy("rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select wishlist query: %w", err)
	}

	var rows []wishlistEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select wishlist by team: %w", err)
	}

	out := make([]wishlist.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, wishlistEntryFromRow(row))
	}

	return out, nil
}

func (r *WishlistRepository) ListTeamIDsForPlayer(ctx context.Context, leagueID, playerID string) ([]string, error) {
	query, args, err := qb.Select("team_id").From("wishlist_entries").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("player_id", playerID),
		).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select wishlist teams query: %w", err)
	}

	var teamIDs []string
	if err := r.db.SelectContext(ctx, &teamIDs, query, args...); err != nil {
		return nil, fmt.Errorf("select wishlist teams for player: %w", err)
	}

	return teamIDs, nil
}

func (r *WishlistRepository) ReplaceForTeam(ctx context.Context, leagueID, teamID string, entries []wishlist.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for wishlist replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const clearQuery = `DELETE FROM wishlist_entries WHERE league_id = $1 AND team_id = $2`
	if _, err := tx.ExecContext(ctx, clearQuery, leagueID, teamID); err != nil {
		return fmt.Errorf("clear wishlist for team %s: %w", teamID, err)
	}

	if len(entries) > 0 {
		builder := qb.InsertInto("wishlist_entries").
			Columns("league_id", "team_id", "player_id", "rank", "position_filter", "note")
		for _, entry := range entries {
			builder = builder.Values(
				entry.LeagueID,
				entry.TeamID,
				entry.PlayerID,
				entry.Rank,
				nullableString(string(entry.PositionFilter)),
				nullableString(entry.Note),
			)
		}

		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert wishlist entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert wishlist entries for team %s: %w", teamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit wishlist replace tx: %w", err)
	}

	return nil
}

func (r *WishlistRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	const query = `DELETE FROM wishlist_entries WHERE league_id = $1`
	if _, err := r.db.ExecContext(ctx, query, leagueID); err != nil {
		return fmt.Errorf("delete wishlists by league: %w", err)
	}

	return nil
}
