package wishlist

import "context"

// Repository describes wishlist persistence needs from use cases.
//
// ReplaceForTeam swaps a team's whole wishlist in one transaction; rank
// discipline lives in the ranker functions, not in the store.
type Repository interface {
	ListByTeam(ctx context.Context, leagueID, teamID string) ([]Entry, error)
	ListTeamIDsForPlayer(ctx context.Context, leagueID, playerID string) ([]string, error)
	ReplaceForTeam(ctx context.Context, leagueID, teamID string, entries []Entry) error
	DeleteByLeague(ctx context.Context, leagueID string) error
}
