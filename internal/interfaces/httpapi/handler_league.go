package httpapi

import (
	"net/http"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(ctx, l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	item, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, item))
}

func (h *Handler) ExportLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	export, err := h.leagueService.Export(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "export league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueExportToDTO(ctx, export))
}
