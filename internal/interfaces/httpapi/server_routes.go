package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players", handler.ListPlayersByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players/{playerID}", handler.GetPlayerByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams", handler.ListTeamsByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams/{teamID}/roster", handler.GetTeamRoster)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/draft", handler.GetDraftState)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/draft/picks", handler.DraftPlayer)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams/{teamID}/wishlist", handler.ListWishlist)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/teams/{teamID}/wishlist", handler.AddWishlistEntry)
	mux.HandleFunc("DELETE /v1/leagues/{leagueID}/teams/{teamID}/wishlist/{playerID}", handler.RemoveWishlistEntry)
	mux.HandleFunc("PUT /v1/leagues/{leagueID}/teams/{teamID}/wishlist/order", handler.ReorderWishlist)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams/{teamID}/wishlist/available", handler.ListWishlistAvailablePlayers)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/leagues/{leagueID}/draft/setup", RequireAdminToken(adminToken, http.HandlerFunc(handler.SetupDraft)))
	mux.Handle("POST /v1/leagues/{leagueID}/draft/lock", RequireAdminToken(adminToken, http.HandlerFunc(handler.ToggleDraftLock)))
	mux.Handle("POST /v1/leagues/{leagueID}/draft/reset", RequireAdminToken(adminToken, http.HandlerFunc(handler.ResetDraft)))
	mux.Handle("POST /v1/leagues/{leagueID}/players/import", RequireAdminToken(adminToken, http.HandlerFunc(handler.ImportPlayers)))
	mux.Handle("GET /v1/leagues/{leagueID}/export", RequireAdminToken(adminToken, http.HandlerFunc(handler.ExportLeague)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-players", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncPlayersJob)))
}
