package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/draft-league/internal/domain/player"
)

type PlayerRepository struct {
	mu            sync.RWMutex
	indexByLeague map[string]map[string]player.Player
	orderByLeague map[string][]string
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		indexByLeague: make(map[string]map[string]player.Player),
		orderByLeague: make(map[string][]string),
	}
	for _, p := range players {
		r.put(p)
	}

	return r
}

func (r *PlayerRepository) put(p player.Player) {
	index, ok := r.indexByLeague[p.LeagueID]
	if !ok {
		index = make(map[string]player.Player)
		r.indexByLeague[p.LeagueID] = index
	}
	if _, exists := index[p.ID]; !exists {
		r.orderByLeague[p.LeagueID] = append(r.orderByLeague[p.LeagueID], p.ID)
	}
	index[p.ID] = p
}

func (r *PlayerRepository) ListByLeague(_ context.Context, leagueID string, filter player.Filter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	excluded := make(map[string]struct{}, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	index := r.indexByLeague[leagueID]
	out := make([]player.Player, 0, len(index))
	for _, id := range r.orderByLeague[leagueID] {
		p := index[id]
		if filter.OnlyAvailable && p.Drafted {
			continue
		}
		if filter.Position != "" && p.Position != filter.Position {
			continue
		}
		if _, skip := excluded[p.ID]; skip {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, leagueID, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.indexByLeague[leagueID][playerID]
	return p, ok, nil
}

func (r *PlayerRepository) ListByOwner(_ context.Context, leagueID, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.indexByLeague[leagueID]
	out := make([]player.Player, 0, 16)
	for _, id := range r.orderByLeague[leagueID] {
		if p := index[id]; p.OwnerID == teamID {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, items []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range items {
		r.put(p)
	}

	return nil
}

func (r *PlayerRepository) ClearOwnership(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexByLeague[leagueID]
	for id, p := range index {
		p.Drafted = false
		p.OwnerID = ""
		index[id] = p
	}

	return nil
}

// markDrafted is used by the draft repository to apply both sides of a pick
// under its own lock ordering.
func (r *PlayerRepository) markDrafted(leagueID, playerID, teamID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexByLeague[leagueID]
	p, ok := index[playerID]
	if !ok {
		return
	}
	p.Drafted = true
	p.OwnerID = teamID
	index[playerID] = p
}
