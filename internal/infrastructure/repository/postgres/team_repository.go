package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-league/internal/domain/team"
	qb "github.com/riskibarqy/draft-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("draft_teams").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by league: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, leagueID, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("draft_teams").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("id", teamID),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) CreateAll(ctx context.Context, items []team.Team) error {
	if len(items) == 0 {
		return nil
	}

	builder := qb.InsertInto("draft_teams").Columns("id", "league_id", "name", "owner")
	for _, item := range items {
		builder = builder.Values(item.ID, item.LeagueID, item.Name, item.Owner)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert teams query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert teams: %w", err)
	}

	return nil
}

func (r *TeamRepository) DeleteByLeague(ctx context.Context, leagueID string) error {
	const query = `DELETE FROM draft_teams WHERE league_id = $1`
	if _, err := r.db.ExecContext(ctx, query, leagueID); err != nil {
		return fmt.Errorf("delete teams by league: %w", err)
	}

	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:       row.ID,
		LeagueID: row.LeagueID,
		Name:     row.Name,
		Owner:    row.Owner,
	}
}
