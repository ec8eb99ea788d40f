package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	qb "github.com/riskibarqy/draft-league/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("id", leagueID)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) GetByName(ctx context.Context, name string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Expr("LOWER(name) = LOWER(?)", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by name query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by name: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	query, args, err := qb.InsertInto("leagues").
		Columns("id", "name", "season", "created_at").
		Values(item.ID, item.Name, item.Season, item.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert league %s: %w", item.ID, err)
	}

	return nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:        row.ID,
		Name:      row.Name,
		Season:    row.Season,
		CreatedAt: row.CreatedAt,
	}
}
