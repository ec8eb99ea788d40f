package httpapi

import (
	"net/http"
)

func (h *Handler) ListTeamsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	teams, err := h.teamService.ListTeams(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	teamID := r.PathValue("teamID")

	roster, err := h.teamService.GetRoster(ctx, leagueID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed",
			"league_id", leagueID,
			"team_id", teamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(ctx, roster))
}
