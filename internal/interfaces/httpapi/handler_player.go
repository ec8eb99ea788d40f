package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/draft-league/internal/usecase"
)

func (h *Handler) ListPlayersByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersByLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	query := r.URL.Query()

	input := usecase.ListPlayersInput{
		LeagueID:      leagueID,
		Position:      query.Get("position"),
		SortKey:       query.Get("sort"),
		Descending:    strings.EqualFold(query.Get("order"), "desc"),
		OnlyAvailable: parseBoolParam(query.Get("available")),
	}
	if exclude := strings.TrimSpace(query.Get("exclude")); exclude != "" {
		input.ExcludeIDs = strings.Split(exclude, ",")
	}

	players, err := h.playerService.ListPlayers(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, players))
}

func (h *Handler) GetPlayerByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerByLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	playerID := r.PathValue("playerID")

	item, err := h.playerService.GetPlayer(ctx, leagueID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed",
			"league_id", leagueID,
			"player_id", playerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, item))
}

func parseBoolParam(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
