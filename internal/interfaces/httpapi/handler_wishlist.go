package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

type addWishlistEntryRequest struct {
	PlayerID       string `json:"player_id" validate:"required"`
	PositionFilter string `json:"position_filter" validate:"omitempty,max=3"`
	Note           string `json:"note" validate:"omitempty,max=200"`
}

type reorderWishlistRequest struct {
	PlayerIDs []string `json:"player_ids" validate:"required,min=1,dive,required"`
}

func (h *Handler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWishlist")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	teamID := r.PathValue("teamID")

	entries, err := h.wishlistService.ListEntries(ctx, leagueID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list wishlist failed",
			"league_id", leagueID,
			"team_id", teamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, wishlistEntriesToDTO(ctx, entries))
}

func (h *Handler) AddWishlistEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddWishlistEntry")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	teamID := r.PathValue("teamID")

	var req addWishlistEntryRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.wishlistService.AddEntry(ctx, usecase.AddWishlistEntryInput{
		LeagueID:       leagueID,
		TeamID:         teamID,
		PlayerID:       req.PlayerID,
		PositionFilter: req.PositionFilter,
		Note:           req.Note,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add wishlist entry failed",
			"league_id", leagueID,
			"team_id", teamID,
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, wishlistEntryToDTO(ctx, entry))
}

func (h *Handler) RemoveWishlistEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveWishlistEntry")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	teamID := r.PathValue("teamID")
	playerID := r.PathValue("playerID")

	if err := h.wishlistService.RemoveEntry(ctx, leagueID, teamID, playerID); err != nil {
		h.logger.WarnContext(ctx, "remove wishlist entry failed",
			"league_id", leagueID,
			"team_id", teamID,
			"player_id", playerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) ReorderWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReorderWishlist")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	teamID := r.PathValue("teamID")

	var req reorderWishlistRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.wishlistService.Reorder(ctx, leagueID, teamID, req.PlayerIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "reorder wishlist failed",
			"league_id", leagueID,
			"team_id", teamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, wishlistEntriesToDTO(ctx, entries))
}

func (h *Handler) ListWishlistAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWishlistAvailablePlayers")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	teamID := r.PathValue("teamID")
	query := r.URL.Query()

	players, err := h.wishlistService.ListAvailable(
		ctx,
		leagueID,
		teamID,
		query.Get("position"),
		query.Get("sort"),
		strings.EqualFold(query.Get("order"), "desc"),
	)
	if err != nil {
		h.logger.WarnContext(ctx, "list available players failed",
			"league_id", leagueID,
			"team_id", teamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, players))
}
