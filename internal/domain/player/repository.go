package player

import "context"

// Filter narrows pool listings. Zero value means the whole league pool.
type Filter struct {
	Position      Position
	ExcludeIDs    []string
	OnlyAvailable bool
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string, filter Filter) ([]Player, error)
	GetByID(ctx context.Context, leagueID, playerID string) (Player, bool, error)
	ListByOwner(ctx context.Context, leagueID, teamID string) ([]Player, error)
	Upsert(ctx context.Context, items []Player) error
	ClearOwnership(ctx context.Context, leagueID string) error
}
