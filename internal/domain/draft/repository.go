package draft

import (
	"context"

	"github.com/riskibarqy/draft-league/internal/domain/player"
)

// Repository describes draft persistence needs from use cases.
//
// ApplyPick persists an accepted pick: the player marked as drafted and the
// already-advanced draft record, in a single transaction. Implementations
// must apply both writes together or neither.
type Repository interface {
	GetByLeague(ctx context.Context, leagueID string) (Draft, bool, error)
	Create(ctx context.Context, item Draft) error
	Save(ctx context.Context, item Draft) error
	ApplyPick(ctx context.Context, advanced Draft, picked player.Player) error
	DeleteByLeague(ctx context.Context, leagueID string) error
}
