package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo league and player pool into an empty database
// so a fresh deployment can run a draft before any import happens.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range memory.SeedLeagues() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leagues (id, name, season, created_at)
VALUES (:id, :name, :season, :created_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":         l.ID,
			"name":       l.Name,
			"season":     l.Season,
			"created_at": l.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed league %s query: %w", l.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed league %s: %w", l.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (id, league_id, name, full_name, club, position, status, drafted, now_cost, total_points)
VALUES (:id, :league_id, :name, :full_name, :club, :position, :status, FALSE, :now_cost, :total_points)
ON CONFLICT (league_id, id) DO NOTHING`, map[string]any{
			"id":           p.ID,
			"league_id":    p.LeagueID,
			"name":         p.Name,
			"full_name":    p.FullName,
			"club":         p.Club,
			"position":     string(p.Position),
			"status":       string(p.Status),
			"now_cost":     p.Stats.NowCost,
			"total_points": p.Stats.TotalPoints,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
