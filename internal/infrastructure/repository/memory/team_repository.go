package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/draft-league/internal/domain/team"
)

type TeamRepository struct {
	mu            sync.RWMutex
	teamsByLeague map[string][]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	teamsByLeague := make(map[string][]team.Team)
	for _, item := range teams {
		teamsByLeague[item.LeagueID] = append(teamsByLeague[item.LeagueID], item)
	}

	return &TeamRepository{teamsByLeague: teamsByLeague}
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := r.teamsByLeague[leagueID]
	out := make([]team.Team, 0, len(teams))
	out = append(out, teams...)

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, leagueID, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teamsByLeague[leagueID] {
		if item.ID == teamID {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) CreateAll(_ context.Context, items []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.teamsByLeague[item.LeagueID] = append(r.teamsByLeague[item.LeagueID], item)
	}

	return nil
}

func (r *TeamRepository) DeleteByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.teamsByLeague, leagueID)
	return nil
}
