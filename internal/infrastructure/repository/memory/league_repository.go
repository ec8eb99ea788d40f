package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/draft-league/internal/domain/league"
)

type LeagueRepository struct {
	mu    sync.RWMutex
	items map[string]league.League
	order []string
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	order := make([]string, 0, len(leagues))
	for _, l := range leagues {
		if _, ok := items[l.ID]; !ok {
			order = append(order, l.ID)
		}
		items[l.ID] = l
	}

	return &LeagueRepository{items: items, order: order}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[leagueID]
	return item, ok, nil
}

func (r *LeagueRepository) GetByName(_ context.Context, name string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if strings.EqualFold(r.items[id].Name, name) {
			return r.items[id], true, nil
		}
	}

	return league.League{}, false, nil
}

func (r *LeagueRepository) Create(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = item

	return nil
}
