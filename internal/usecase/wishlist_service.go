package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/team"
	"github.com/riskibarqy/draft-league/internal/domain/wishlist"
)

// AddWishlistEntryInput adds one player to a team's wishlist.
type AddWishlistEntryInput struct {
	LeagueID       string
	TeamID         string
	PlayerID       string
	PositionFilter string
	Note           string
}

// WishlistService keeps per-team wishlists dense and ordered. All rank math
// lives in the wishlist ranker; this service loads, applies, and stores.
type WishlistService struct {
	teamRepo     team.Repository
	playerRepo   player.Repository
	wishlistRepo wishlist.Repository
	logger       *slog.Logger
}

func NewWishlistService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	wishlistRepo wishlist.Repository,
	logger *slog.Logger,
) *WishlistService {
	if logger == nil {
		logger = slog.Default()
	}

	return &WishlistService{
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		wishlistRepo: wishlistRepo,
		logger:       logger,
	}
}

func (s *WishlistService) AddEntry(ctx context.Context, input AddWishlistEntryInput) (wishlist.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WishlistService.AddEntry")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.LeagueID == "" || input.TeamID == "" || input.PlayerID == "" {
		return wishlist.Entry{}, fmt.Errorf("%w: league_id, team_id and player_id are required", ErrInvalidInput)
	}

	if err := s.requireTeam(ctx, input.LeagueID, input.TeamID); err != nil {
		return wishlist.Entry{}, err
	}

	candidate, exists, err := s.playerRepo.GetByID(ctx, input.LeagueID, input.PlayerID)
	if err != nil {
		return wishlist.Entry{}, fmt.Errorf("get player: %w", err)
	}
	if !exists || candidate.Drafted {
		return wishlist.Entry{}, fmt.Errorf("%w: player=%s", draft.ErrPlayerUnavailable, input.PlayerID)
	}

	added := wishlist.Entry{
		LeagueID: input.LeagueID,
		TeamID:   input.TeamID,
		PlayerID: input.PlayerID,
		Note:     strings.TrimSpace(input.Note),
	}
	if posFilter := strings.TrimSpace(input.PositionFilter); posFilter != "" {
		parsed, err := player.ParsePosition(strings.ToUpper(posFilter))
		if err != nil {
			return wishlist.Entry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		added.PositionFilter = parsed
	}

	entries, err := s.wishlistRepo.ListByTeam(ctx, input.LeagueID, input.TeamID)
	if err != nil {
		return wishlist.Entry{}, fmt.Errorf("list wishlist: %w", err)
	}

	updated, err := wishlist.Append(entries, added)
	if err != nil {
		return wishlist.Entry{}, err
	}
	if err := s.wishlistRepo.ReplaceForTeam(ctx, input.LeagueID, input.TeamID, updated); err != nil {
		return wishlist.Entry{}, fmt.Errorf("save wishlist: %w", err)
	}

	saved := updated[len(updated)-1]
	s.logger.InfoContext(ctx, "wishlist entry added",
		"league_id", input.LeagueID,
		"team_id", input.TeamID,
		"player_id", input.PlayerID,
		"rank", saved.Rank,
	)

	return saved, nil
}

func (s *WishlistService) RemoveEntry(ctx context.Context, leagueID, teamID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.WishlistService.RemoveEntry")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	teamID = strings.TrimSpace(teamID)
	playerID = strings.TrimSpace(playerID)
	if leagueID == "" || teamID == "" || playerID == "" {
		return fmt.Errorf("%w: league_id, team_id and player_id are required", ErrInvalidInput)
	}

	if err := s.requireTeam(ctx, leagueID, teamID); err != nil {
		return err
	}

	entries, err := s.wishlistRepo.ListByTeam(ctx, leagueID, teamID)
	if err != nil {
		return fmt.Errorf("list wishlist: %w", err)
	}

	remaining, err := wishlist.Remove(entries, playerID)
	if err != nil {
		return err
	}
	if err := s.wishlistRepo.ReplaceForTeam(ctx, leagueID, teamID, remaining); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}

	s.logger.InfoContext(ctx, "wishlist entry removed",
		"league_id", leagueID,
		"team_id", teamID,
		"player_id", playerID,
	)

	return nil
}

// Reorder assigns ranks following the supplied player order. Callers are
// expected to send the full current membership; see the ranker contract.
func (s *WishlistService) Reorder(ctx context.Context, leagueID, teamID string, orderedPlayerIDs []string) ([]wishlist.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WishlistService.Reorder")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	teamID = strings.TrimSpace(teamID)
	if leagueID == "" || teamID == "" {
		return nil, fmt.Errorf("%w: league_id and team_id are required", ErrInvalidInput)
	}
	ordered := keepOriginalOrder(orderedPlayerIDs)
	if len(ordered) == 0 {
		return nil, fmt.Errorf("%w: ordered player ids are required", ErrInvalidInput)
	}

	if err := s.requireTeam(ctx, leagueID, teamID); err != nil {
		return nil, err
	}

	entries, err := s.wishlistRepo.ListByTeam(ctx, leagueID, teamID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}

	reordered := wishlist.Reorder(entries, ordered)
	if err := s.wishlistRepo.ReplaceForTeam(ctx, leagueID, teamID, reordered); err != nil {
		return nil, fmt.Errorf("save wishlist: %w", err)
	}

	s.logger.InfoContext(ctx, "wishlist reordered",
		"league_id", leagueID,
		"team_id", teamID,
		"entries", len(reordered),
	)

	return reordered, nil
}

func (s *WishlistService) ListEntries(ctx context.Context, leagueID, teamID string) ([]wishlist.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WishlistService.ListEntries")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	teamID = strings.TrimSpace(teamID)
	if leagueID == "" || teamID == "" {
		return nil, fmt.Errorf("%w: league_id and team_id are required", ErrInvalidInput)
	}

	if err := s.requireTeam(ctx, leagueID, teamID); err != nil {
		return nil, err
	}

	entries, err := s.wishlistRepo.ListByTeam(ctx, leagueID, teamID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}

	return entries, nil
}

// ListAvailable returns undrafted players the team could still wish for:
// pool players minus everything already on this team's wishlist.
func (s *WishlistService) ListAvailable(ctx context.Context, leagueID, teamID, position, sortKey string, descending bool) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WishlistService.ListAvailable")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	teamID = strings.TrimSpace(teamID)
	if leagueID == "" || teamID == "" {
		return nil, fmt.Errorf("%w: league_id and team_id are required", ErrInvalidInput)
	}

	if err := s.requireTeam(ctx, leagueID, teamID); err != nil {
		return nil, err
	}

	entries, err := s.wishlistRepo.ListByTeam(ctx, leagueID, teamID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	exclude := make([]string, 0, len(entries))
	for _, e := range entries {
		exclude = append(exclude, e.PlayerID)
	}

	filter := player.Filter{OnlyAvailable: true, ExcludeIDs: exclude}
	if pos := strings.TrimSpace(position); pos != "" && !strings.EqualFold(pos, "all") {
		parsed, err := player.ParsePosition(strings.ToUpper(pos))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Position = parsed
	}
	key, err := player.ParseSortKey(sortKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	players, err := s.playerRepo.ListByLeague(ctx, leagueID, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	player.Sort(players, key, descending)

	return players, nil
}

func (s *WishlistService) requireTeam(ctx context.Context, leagueID, teamID string) error {
	_, exists, err := s.teamRepo.GetByID(ctx, leagueID, teamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s league=%s", ErrNotFound, teamID, leagueID)
	}

	return nil
}

func keepOriginalOrder(ids []string) []string {
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
	return cleaned
}
