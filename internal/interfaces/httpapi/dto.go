package httpapi

import (
	"context"

	"github.com/riskibarqy/draft-league/internal/domain/draft"
	"github.com/riskibarqy/draft-league/internal/domain/league"
	"github.com/riskibarqy/draft-league/internal/domain/player"
	"github.com/riskibarqy/draft-league/internal/domain/team"
	"github.com/riskibarqy/draft-league/internal/domain/wishlist"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

type leagueDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Season    string `json:"season"`
	CreatedAt string `json:"created_at"`
}

type teamDTO struct {
	ID       string `json:"id"`
	LeagueID string `json:"league_id"`
	Name     string `json:"name"`
	Owner    string `json:"owner"`
}

type playerStatsDTO struct {
	NowCost       *float64 `json:"now_cost"`
	TotalPoints   *int     `json:"total_points"`
	PointsPerGame *float64 `json:"points_per_game"`
	GoalsScored   *int     `json:"goals_scored"`
	Assists       *int     `json:"assists"`
	Minutes       *int     `json:"minutes"`
}

type playerDTO struct {
	ID       string         `json:"id"`
	LeagueID string         `json:"league_id"`
	Name     string         `json:"name"`
	FullName string         `json:"full_name"`
	Club     string         `json:"club"`
	Position string         `json:"position"`
	Status   string         `json:"status"`
	Drafted  bool           `json:"drafted"`
	OwnerID  string         `json:"owner_id,omitempty"`
	Stats    playerStatsDTO `json:"stats"`
}

type teamProgressDTO struct {
	Team            teamDTO        `json:"team"`
	PlayersOwned    int            `json:"players_owned"`
	CountByPosition map[string]int `json:"count_by_position"`
}

type draftViewDTO struct {
	LeagueID     string            `json:"league_id"`
	State        string            `json:"state"`
	CurrentPick  int               `json:"current_pick"`
	CurrentRound int               `json:"current_round"`
	ReverseRound bool              `json:"reverse_round"`
	ActingTeam   *teamDTO          `json:"acting_team,omitempty"`
	DraftOrder   []string          `json:"draft_order"`
	TotalTeams   int               `json:"total_teams"`
	IsSnake      bool              `json:"is_snake"`
	RosterSize   int               `json:"roster_size"`
	Teams        []teamProgressDTO `json:"teams"`
}

type pickResultDTO struct {
	Player                  playerDTO `json:"player"`
	Team                    teamDTO   `json:"team"`
	Pick                    int       `json:"pick"`
	Round                   int       `json:"round"`
	AffectedWishlistTeamIDs []string  `json:"affected_wishlist_team_ids"`
	DraftCompleted          bool      `json:"draft_completed"`
}

type wishlistEntryDTO struct {
	LeagueID       string `json:"league_id"`
	TeamID         string `json:"team_id"`
	PlayerID       string `json:"player_id"`
	Rank           int    `json:"rank"`
	PositionFilter string `json:"position_filter,omitempty"`
	Note           string `json:"note,omitempty"`
}

type rosterDTO struct {
	Team       teamDTO                `json:"team"`
	ByPosition map[string][]playerDTO `json:"by_position"`
	Total      int                    `json:"total"`
}

type draftRecordDTO struct {
	LeagueID         string   `json:"league_id"`
	DraftOrder       []string `json:"draft_order"`
	CurrentPick      int      `json:"current_pick"`
	CurrentTeamIndex int      `json:"current_team_index"`
	TotalTeams       int      `json:"total_teams"`
	IsSnake          bool     `json:"is_snake"`
	IsActive         bool     `json:"is_active"`
	IsLocked         bool     `json:"is_locked"`
}

type leagueExportDTO struct {
	League    leagueDTO                     `json:"league"`
	Teams     []teamDTO                     `json:"teams"`
	Players   []playerDTO                   `json:"players"`
	Draft     *draftRecordDTO               `json:"draft,omitempty"`
	Wishlists map[string][]wishlistEntryDTO `json:"wishlists"`
}

func leagueToDTO(ctx context.Context, v league.League) leagueDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueToDTO")
	defer span.End()

	return leagueDTO{
		ID:        v.ID,
		Name:      v.Name,
		Season:    v.Season,
		CreatedAt: v.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:       v.ID,
		LeagueID: v.LeagueID,
		Name:     v.Name,
		Owner:    v.Owner,
	}
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:       v.ID,
		LeagueID: v.LeagueID,
		Name:     v.Name,
		FullName: v.FullName,
		Club:     v.Club,
		Position: string(v.Position),
		Status:   string(v.Status),
		Drafted:  v.Drafted,
		OwnerID:  v.OwnerID,
		Stats: playerStatsDTO{
			NowCost:       v.Stats.NowCost,
			TotalPoints:   v.Stats.TotalPoints,
			PointsPerGame: v.Stats.PointsPerGame,
			GoalsScored:   v.Stats.GoalsScored,
			Assists:       v.Stats.Assists,
			Minutes:       v.Stats.Minutes,
		},
	}
}

func playersToDTO(ctx context.Context, items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(ctx, p))
	}
	return out
}

func draftViewToDTO(ctx context.Context, v usecase.DraftView) draftViewDTO {
	ctx, span := startSpan(ctx, "httpapi.draftViewToDTO")
	defer span.End()

	out := draftViewDTO{
		LeagueID:     v.LeagueID,
		State:        string(v.State),
		CurrentPick:  v.CurrentPick,
		CurrentRound: v.CurrentRound,
		ReverseRound: v.ReverseRound,
		DraftOrder:   v.DraftOrder,
		TotalTeams:   v.TotalTeams,
		IsSnake:      v.IsSnake,
		RosterSize:   v.RosterSize,
		Teams:        make([]teamProgressDTO, 0, len(v.Teams)),
	}
	if v.ActingTeam.ID != "" {
		acting := teamToDTO(ctx, v.ActingTeam)
		out.ActingTeam = &acting
	}
	for _, progress := range v.Teams {
		counts := make(map[string]int, len(progress.CountByPosition))
		for position, count := range progress.CountByPosition {
			counts[string(position)] = count
		}
		out.Teams = append(out.Teams, teamProgressDTO{
			Team:            teamToDTO(ctx, progress.Team),
			PlayersOwned:    progress.PlayersOwned,
			CountByPosition: counts,
		})
	}

	return out
}

func pickResultToDTO(ctx context.Context, v usecase.PickResult) pickResultDTO {
	ctx, span := startSpan(ctx, "httpapi.pickResultToDTO")
	defer span.End()

	affected := v.AffectedWishlistTeamIDs
	if affected == nil {
		affected = []string{}
	}

	return pickResultDTO{
		Player:                  playerToDTO(ctx, v.Player),
		Team:                    teamToDTO(ctx, v.Team),
		Pick:                    v.Pick,
		Round:                   v.Round,
		AffectedWishlistTeamIDs: affected,
		DraftCompleted:          v.DraftCompleted,
	}
}

func wishlistEntryToDTO(ctx context.Context, v wishlist.Entry) wishlistEntryDTO {
	ctx, span := startSpan(ctx, "httpapi.wishlistEntryToDTO")
	defer span.End()

	return wishlistEntryDTO{
		LeagueID:       v.LeagueID,
		TeamID:         v.TeamID,
		PlayerID:       v.PlayerID,
		Rank:           v.Rank,
		PositionFilter: string(v.PositionFilter),
		Note:           v.Note,
	}
}

func wishlistEntriesToDTO(ctx context.Context, items []wishlist.Entry) []wishlistEntryDTO {
	out := make([]wishlistEntryDTO, 0, len(items))
	for _, e := range items {
		out = append(out, wishlistEntryToDTO(ctx, e))
	}
	return out
}

func rosterToDTO(ctx context.Context, v usecase.Roster) rosterDTO {
	ctx, span := startSpan(ctx, "httpapi.rosterToDTO")
	defer span.End()

	byPosition := make(map[string][]playerDTO, len(v.ByPosition))
	for position, players := range v.ByPosition {
		byPosition[string(position)] = playersToDTO(ctx, players)
	}

	return rosterDTO{
		Team:       teamToDTO(ctx, v.Team),
		ByPosition: byPosition,
		Total:      v.Total,
	}
}

func draftRecordToDTO(ctx context.Context, v draft.Draft) draftRecordDTO {
	ctx, span := startSpan(ctx, "httpapi.draftRecordToDTO")
	defer span.End()

	return draftRecordDTO{
		LeagueID:         v.LeagueID,
		DraftOrder:       v.DraftOrder,
		CurrentPick:      v.CurrentPick,
		CurrentTeamIndex: v.CurrentTeamIndex,
		TotalTeams:       v.TotalTeams,
		IsSnake:          v.IsSnake,
		IsActive:         v.IsActive,
		IsLocked:         v.IsLocked,
	}
}

func leagueExportToDTO(ctx context.Context, v usecase.LeagueExport) leagueExportDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueExportToDTO")
	defer span.End()

	out := leagueExportDTO{
		League:    leagueToDTO(ctx, v.League),
		Teams:     make([]teamDTO, 0, len(v.Teams)),
		Players:   playersToDTO(ctx, v.Players),
		Wishlists: make(map[string][]wishlistEntryDTO, len(v.Wishlists)),
	}
	for _, t := range v.Teams {
		out.Teams = append(out.Teams, teamToDTO(ctx, t))
	}
	if v.Draft != nil {
		record := draftRecordToDTO(ctx, *v.Draft)
		out.Draft = &record
	}
	for teamID, entries := range v.Wishlists {
		out.Wishlists[teamID] = wishlistEntriesToDTO(ctx, entries)
	}

	return out
}
