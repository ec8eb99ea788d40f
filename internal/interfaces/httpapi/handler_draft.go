package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

type setupDraftRequest struct {
	LeagueName string             `json:"league_name" validate:"omitempty,max=100"`
	Season     string             `json:"season" validate:"omitempty,max=20"`
	Snake      bool               `json:"snake"`
	Teams      []setupTeamRequest `json:"teams" validate:"required,min=1,max=20,dive"`
}

type setupTeamRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Owner string `json:"owner" validate:"required,max=100"`
}

type draftPickRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

func (h *Handler) GetDraftState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftState")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	view, err := h.draftService.State(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft state failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftViewToDTO(ctx, view))
}

func (h *Handler) SetupDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetupDraft")
	defer span.End()

	leagueID := r.PathValue("leagueID")

	var req setupDraftRequest
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

	teams := make([]usecase.TeamSpec, 0, len(req.Teams))
	for _, t := range req.Teams {
		teams = append(teams, usecase.TeamSpec{Name: t.Name, Owner: t.Owner})
	}

	view, err := h.draftService.SetupDraft(ctx, usecase.SetupDraftInput{
		LeagueID:   leagueID,
		LeagueName: req.LeagueName,
		Season:     req.Season,
		Snake:      req.Snake,
		Teams:      teams,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "setup draft failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, draftViewToDTO(ctx, view))
}

func (h *Handler) DraftPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DraftPlayer")
	defer span.End()

	leagueID := r.PathValue("leagueID")

	var req draftPickRequest
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

	result, err := h.draftService.DraftPlayer(ctx, leagueID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "draft player failed",
			"league_id", leagueID,
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickResultToDTO(ctx, result))
}

func (h *Handler) ToggleDraftLock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleDraftLock")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	locked, err := h.draftService.ToggleLock(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle draft lock failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"locked": locked})
}

func (h *Handler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetDraft")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	if err := h.draftService.Reset(ctx, leagueID); err != nil {
		h.logger.WarnContext(ctx, "reset draft failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reset"})
}
