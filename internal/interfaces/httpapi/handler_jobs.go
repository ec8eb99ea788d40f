package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

type syncPlayersRequest struct {
	LeagueID   string `json:"league_id" validate:"required"`
	MaxWorkers int    `json:"max_workers" validate:"omitempty,gte=1,lte=64"`
}

type importPlayersRequest struct {
	Rows       []importPlayerRow `json:"rows" validate:"required,min=1,max=2000,dive"`
	MaxWorkers int               `json:"max_workers" validate:"omitempty,gte=1,lte=64"`
}

type importPlayerRow struct {
	ExternalID    string   `json:"external_id" validate:"omitempty,max=64"`
	Name          string   `json:"name" validate:"required,max=100"`
	FullName      string   `json:"full_name" validate:"omitempty,max=200"`
	Club          string   `json:"club" validate:"required,max=100"`
	Position      string   `json:"position" validate:"required,max=20"`
	Status        string   `json:"status" validate:"omitempty,max=1"`
	NowCost       *float64 `json:"now_cost"`
	TotalPoints   *int     `json:"total_points"`
	PointsPerGame *float64 `json:"points_per_game"`
	GoalsScored   *int     `json:"goals_scored"`
	Assists       *int     `json:"assists"`
	Minutes       *int     `json:"minutes"`
}

// RunSyncPlayersJob pulls the whole pool from the external feed. Scheduled
// callers hit this with the internal job token.
func (h *Handler) RunSyncPlayersJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncPlayersJob")
	defer span.End()

	var req syncPlayersRequest
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

	result, err := h.ingestionService.SyncFromSource(ctx, req.LeagueID, req.MaxWorkers)
	if err != nil {
		h.logger.WarnContext(ctx, "sync players job failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// ImportPlayers loads caller-supplied rows into the league pool.
func (h *Handler) ImportPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportPlayers")
	defer span.End()

	leagueID := r.PathValue("leagueID")

	var req importPlayersRequest
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

	rows := make([]usecase.PlayerImportRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, usecase.PlayerImportRow{
			ExternalID:    row.ExternalID,
			Name:          row.Name,
			FullName:      row.FullName,
			Club:          row.Club,
			Position:      row.Position,
			Status:        row.Status,
			NowCost:       row.NowCost,
			TotalPoints:   row.TotalPoints,
			PointsPerGame: row.PointsPerGame,
			GoalsScored:   row.GoalsScored,
			Assists:       row.Assists,
			Minutes:       row.Minutes,
		})
	}

	result, err := h.ingestionService.ImportPlayers(ctx, usecase.ImportPlayersInput{
		LeagueID:   leagueID,
		Rows:       rows,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "import players failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
