package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/draft-league/internal/domain/wishlist"
)

type WishlistRepository struct {
	mu    sync.RWMutex
	items map[string][]wishlist.Entry
}

func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{items: make(map[string][]wishlist.Entry)}
}

func (r *WishlistRepository) ListByTeam(_ context.Context, leagueID, teamID string) ([]wishlist.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.items[wishlistKey(leagueID, teamID)]
	out := append([]wishlist.Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })

	return out, nil
}

func (r *WishlistRepository) ListTeamIDsForPlayer(_ context.Context, leagueID, playerID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var teamIDs []string
	for _, entries := range r.items {
		for _, e := range entries {
			if e.LeagueID == leagueID && e.PlayerID == playerID {
				teamIDs = append(teamIDs, e.TeamID)
				break
			}
		}
	}
	sort.Strings(teamIDs)

	return teamIDs, nil
}

func (r *WishlistRepository) ReplaceForTeam(_ context.Context, leagueID, teamID string, entries []wishlist.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := wishlistKey(leagueID, teamID)
	if len(entries) == 0 {
		delete(r.items, key)
		return nil
	}
	r.items[key] = append([]wishlist.Entry(nil), entries...)

	return nil
}

func (r *WishlistRepository) DeleteByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, entries := range r.items {
		if len(entries) > 0 && entries[0].LeagueID == leagueID {
			delete(r.items, key)
		}
	}

	return nil
}

func wishlistKey(leagueID, teamID string) string {
	return leagueID + "::" + teamID
}
