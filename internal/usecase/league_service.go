package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/team"
	"github.com/riskibarqy/draft-league/internal/domain/wishlist"
)

// LeagueExport is a full dump of one league's state, suitable for backup or
// for moving a draft between environments.
type LeagueExport struct {
	League    league.League               `json:"league"`
	Teams     []team.Team                 `json:"teams"`
	Players   []player.Player             `json:"players"`
	Draft     *draft.Draft                `json:"draft,omitempty"`
	Wishlists map[string][]wishlist.Entry `json:"wishlists"`
}

type LeagueService struct {
	leagueRepo   league.Repository
	teamRepo     team.Repository
	playerRepo   player.Repository
	draftRepo    draft.Repository
	wishlistRepo wishlist.Repository
	logger       *slog.Logger
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	draftRepo draft.Repository,
	wishlistRepo wishlist.Repository,
	logger *slog.Logger,
) *LeagueService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LeagueService{
		leagueRepo:   leagueRepo,
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		draftRepo:    draftRepo,
		wishlistRepo: wishlistRepo,
		logger:       logger,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return item, nil
}

// Export gathers every relation for the league. The per-relation reads are
// independent, so they run concurrently; wishlists fan out per team after
// teams are loaded.
func (s *LeagueService) Export(ctx context.Context, leagueID string) (LeagueExport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Export")
	defer span.End()

	item, err := s.GetLeague(ctx, leagueID)
	if err != nil {
		return LeagueExport{}, err
	}

	export := LeagueExport{
		League:    item,
		Wishlists: map[string][]wishlist.Entry{},
	}

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		players, err := s.playerRepo.ListByLeague(ctx, item.ID, player.Filter{})
		if err != nil {
			return fmt.Errorf("export players: %w", err)
		}
		export.Players = players
		return nil
	})
	p.Go(func(ctx context.Context) error {
		current, exists, err := s.draftRepo.GetByLeague(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("export draft: %w", err)
		}
		if exists {
			export.Draft = &current
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		teams, err := s.teamRepo.ListByLeague(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("export teams: %w", err)
		}
		export.Teams = teams

		var mu sync.Mutex
		wp := pool.New().WithErrors().WithContext(ctx)
		for _, t := range teams {
			t := t
			wp.Go(func(ctx context.Context) error {
				entries, err := s.wishlistRepo.ListByTeam(ctx, item.ID, t.ID)
				if err != nil {
					return fmt.Errorf("export wishlist team=%s: %w", t.ID, err)
				}
				if len(entries) == 0 {
					return nil
				}
				mu.Lock()
				export.Wishlists[t.ID] = entries
				mu.Unlock()
				return nil
			})
		}
		return wp.Wait()
	})
	if err := p.Wait(); err != nil {
		return LeagueExport{}, err
	}

	s.logger.InfoContext(ctx, "league exported",
		"league_id", item.ID,
		"teams", len(export.Teams),
		"players", len(export.Players),
	)

	return export, nil
}
