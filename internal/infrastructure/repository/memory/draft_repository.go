package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/player"
)

type DraftRepository struct {
	mu      sync.RWMutex
	items   map[string]draft.Draft
	players *PlayerRepository
}

// NewDraftRepository wires the player store in so ApplyPick can update the
// picked player and the draft cursor together.
func NewDraftRepository(players *PlayerRepository) *DraftRepository {
	return &DraftRepository{
		items:   make(map[string]draft.Draft),
		players: players,
	}
}

func (r *DraftRepository) GetByLeague(_ context.Context, leagueID string) (draft.Draft, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[leagueID]
	if !ok {
		return draft.Draft{}, false, nil
	}

	return cloneDraft(item), true, nil
}

func (r *DraftRepository) Create(_ context.Context, item draft.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.LeagueID]; exists {
		return fmt.Errorf("draft already exists for league %s", item.LeagueID)
	}
	r.items[item.LeagueID] = cloneDraft(item)

	return nil
}

func (r *DraftRepository) Save(_ context.Context, item draft.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.LeagueID]; !exists {
		return fmt.Errorf("draft not found for league %s", item.LeagueID)
	}
	r.items[item.LeagueID] = cloneDraft(item)

	return nil
}

func (r *DraftRepository) ApplyPick(_ context.Context, advanced draft.Draft, picked player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[advanced.LeagueID]; !exists {
		return fmt.Errorf("draft not found for league %s", advanced.LeagueID)
	}

	r.players.markDrafted(picked.LeagueID, picked.ID, picked.OwnerID)
	r.items[advanced.LeagueID] = cloneDraft(advanced)

	return nil
}

func (r *DraftRepository) DeleteByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, leagueID)
	return nil
}

func cloneDraft(d draft.Draft) draft.Draft {
	copied := d
	copied.DraftOrder = append([]string(nil), d.DraftOrder...)
	return copied
}
