package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/platform/cache"
)

// ListPlayersInput narrows and orders a league pool listing.
type ListPlayersInput struct {
	LeagueID      string
	Position      string
	SortKey       string
	Descending    bool
	ExcludeIDs    []string
	OnlyAvailable bool
}

type PlayerService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	listings   *cache.Store
}

func NewPlayerService(leagueRepo league.Repository, playerRepo player.Repository, listings *cache.Store) *PlayerService {
	return &PlayerService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		listings:   listings,
	}
}

// ListPlayers returns the league pool ordered by the requested stat key,
// with missing stat values last in either direction.
func (s *PlayerService) ListPlayers(ctx context.Context, input ListPlayersInput) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	if input.LeagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	filter := player.Filter{OnlyAvailable: input.OnlyAvailable}
	if pos := strings.TrimSpace(input.Position); pos != "" && !strings.EqualFold(pos, "all") {
		parsed, err := player.ParsePosition(strings.ToUpper(pos))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Position = parsed
	}

	sortKey, err := player.ParseSortKey(input.SortKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	filter.ExcludeIDs = cleanIDs(input.ExcludeIDs)

	if _, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID); err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	load := func(ctx context.Context) (any, error) {
		players, err := s.playerRepo.ListByLeague(ctx, input.LeagueID, filter)
		if err != nil {
			return nil, fmt.Errorf("list players: %w", err)
		}
		player.Sort(players, sortKey, input.Descending)
		return players, nil
	}

	if s.listings == nil {
		out, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return out.([]player.Player), nil
	}

	key := listingCacheKey(input.LeagueID, filter, sortKey, input.Descending)
	cached, err := s.listings.GetOrLoad(ctx, key, load)
	if err != nil {
		return nil, err
	}
	players := cached.([]player.Player)

	return append([]player.Player(nil), players...), nil
}

// GetPlayer fetches one player of a league pool.
func (s *PlayerService) GetPlayer(ctx context.Context, leagueID, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	playerID = strings.TrimSpace(playerID)
	if leagueID == "" || playerID == "" {
		return player.Player{}, fmt.Errorf("%w: league_id and player_id are required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, leagueID, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s league=%s", ErrNotFound, playerID, leagueID)
	}

	return item, nil
}

func listingCachePrefix(leagueID string) string {
	return "players::" + leagueID + "::"
}

func listingCacheKey(leagueID string, filter player.Filter, sortKey player.SortKey, descending bool) string {
	var b strings.Builder
	b.WriteString(listingCachePrefix(leagueID))
	b.WriteString(string(filter.Position))
	b.WriteString("::")
	b.WriteString(string(sortKey))
	if descending {
		b.WriteString("::desc")
	} else {
		b.WriteString("::asc")
	}
	if filter.OnlyAvailable {
		b.WriteString("::available")
	}
	if len(filter.ExcludeIDs) > 0 {
		b.WriteString("::x=")
		b.WriteString(strings.Join(filter.ExcludeIDs, ","))
	}
	return b.String()
}

func cleanIDs(ids []string) []string {
	cleaned := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}
	sort.Strings(cleaned)
	return cleaned
}
