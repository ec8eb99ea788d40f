package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/team"
)

// Roster groups a team's owned players by position. It is always derived
// from player ownership so the two can never drift apart.
type Roster struct {
	Team       team.Team
	ByPosition map[player.Position][]player.Player
	Total      int
}

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
}

func NewTeamService(teamRepo team.Repository, playerRepo player.Repository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

func (s *TeamService) ListTeams(ctx context.Context, leagueID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

func (s *TeamService) GetRoster(ctx context.Context, leagueID, teamID string) (Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetRoster")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	teamID = strings.TrimSpace(teamID)
	if leagueID == "" || teamID == "" {
		return Roster{}, fmt.Errorf("%w: league_id and team_id are required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, leagueID, teamID)
	if err != nil {
		return Roster{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return Roster{}, fmt.Errorf("%w: team=%s league=%s", ErrNotFound, teamID, leagueID)
	}

	owned, err := s.playerRepo.ListByOwner(ctx, leagueID, teamID)
	if err != nil {
		return Roster{}, fmt.Errorf("list owned players: %w", err)
	}

	byPosition := map[player.Position][]player.Player{
		player.PositionGoalkeeper: {},
		player.PositionDefender:   {},
		player.PositionMidfielder: {},
		player.PositionForward:    {},
	}
	for _, p := range owned {
		byPosition[p.Position] = append(byPosition[p.Position], p)
	}

	return Roster{
		Team:       item,
		ByPosition: byPosition,
		Total:      len(owned),
	}, nil
}
