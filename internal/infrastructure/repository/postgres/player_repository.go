package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	qb "github.com/riskibarqy/draft-league/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string, filter player.Filter) ([]player.Player, error) {
	conditions := []qb.Condition{qb.Eq("league_id", leagueID)}
	if filter.Position != "" {
		conditions = append(conditions, qb.Eq("position", string(filter.Position)))
	}
	if filter.OnlyAvailable {
		conditions = append(conditions, qb.Eq("drafted", false))
	}
	if len(filter.ExcludeIDs) > 0 {
		conditions = append(conditions, qb.Expr("NOT (id = ANY(?))", stringArray(filter.ExcludeIDs)))
	}

	query, args, err := qb.Select("*").From("players").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by league: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, leagueID, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("id", playerID),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) ListByOwner(ctx context.Context, leagueID, teamID string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("owner_id", teamID),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by owner query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by owner: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}

	return out, nil
}

const upsertPlayerQuery = `
INSERT INTO players (
    id,
    league_id,
    name,
    full_name,
    club,
    position,
    status,
    drafted,
    owner_id,
    now_cost,
    total_points,
    points_per_game,
    goals_scored,
    assists,
    minutes
) VALUES (
    :id,
    :league_id,
    :name,
    :full_name,
    :club,
    :position,
    :status,
    :drafted,
    :owner_id,
    :now_cost,
    :total_points,
    :points_per_game,
    :goals_scored,
    :assists,
    :minutes
)
ON CONFLICT (league_id, id)
DO UPDATE SET
    name = EXCLUDED.name,
    full_name = EXCLUDED.full_name,
    club = EXCLUDED.club,
    position = EXCLUDED.position,
    status = EXCLUDED.status,
    drafted = EXCLUDED.drafted,
    owner_id = EXCLUDED.owner_id,
    now_cost = EXCLUDED.now_cost,
    total_points = EXCLUDED.total_points,
    points_per_game = EXCLUDED.points_per_game,
    goals_scored = EXCLUDED.goals_scored,
    assists = EXCLUDED.assists,
    minutes = EXCLUDED.minutes,
    updated_at = NOW()`

func (r *PlayerRepository) Upsert(ctx context.Context, items []player.Player) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		upsertSQL, upsertArgs, err := sqlx.Named(upsertPlayerQuery, playerUpsertArgs(item))
		if err != nil {
			return fmt.Errorf("bind upsert player %s query: %w", item.ID, err)
		}
		upsertSQL = tx.Rebind(upsertSQL)
		if _, err := tx.ExecContext(ctx, upsertSQL, upsertArgs...); err != nil {
			return fmt.Errorf("upsert player %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player upsert tx: %w", err)
	}

	return nil
}

func (r *PlayerRepository) ClearOwnership(ctx context.Context, leagueID string) error {
	query, args, err := qb.Update("players").
		Set("drafted", false).
		SetExpr("owner_id", "NULL").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear ownership query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear player ownership: %w", err)
	}

	return nil
}

func playerUpsertArgs(item player.Player) map[string]any {
	return map[string]any{
		"id":              item.ID,
		"league_id":       item.LeagueID,
		"name":            item.Name,
		"full_name":       item.FullName,
		"club":            item.Club,
		"position":        string(item.Position),
		"status":          string(item.Status),
		"drafted":         item.Drafted,
		"owner_id":        nullableString(item.OwnerID),
		"now_cost":        item.Stats.NowCost,
		"total_points":    item.Stats.TotalPoints,
		"points_per_game": item.Stats.PointsPerGame,
		"goals_scored":    item.Stats.GoalsScored,
		"assists":         item.Stats.Assists,
		"minutes":         item.Stats.Minutes,
	}
}
