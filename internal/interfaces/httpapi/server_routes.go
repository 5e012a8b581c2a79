package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/managers", handler.ListManagers)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/managers/{managerID}/roster", handler.GetRoster)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/managers/{managerID}/roster/progress", handler.GetRosterProgress)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/managers/{managerID}/roster/slots", handler.GetRosterSlots)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/managers/{managerID}/weeks/{week}/points", handler.GetManagerWeekPoints)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/schedule", handler.ListSchedule)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/weeks/{week}/points", handler.ListWeekPoints)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListStandings)
	mux.HandleFunc("POST /v1/scoring/preview", handler.PreviewPoints)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedLeagueRoutes(mux, handler, verifier)
	registerAuthorizedRosterRoutes(mux, handler, verifier)
	registerAuthorizedIngestionRoutes(mux, handler, verifier)
}

func registerAuthorizedLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("PUT /v1/leagues/{leagueID}/roster-config", RequireAuth(verifier, http.HandlerFunc(handler.UpdateRosterConfig)))
	mux.Handle("POST /v1/leagues/{leagueID}/managers", RequireAuth(verifier, http.HandlerFunc(handler.JoinLeague)))
	mux.Handle("POST /v1/leagues/{leagueID}/players", RequireAuth(verifier, http.HandlerFunc(handler.AddPlayer)))
	mux.Handle("DELETE /v1/leagues/{leagueID}/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.RemovePlayer)))
	mux.Handle("POST /v1/leagues/{leagueID}/schedule", RequireAuth(verifier, http.HandlerFunc(handler.GenerateSchedule)))
}

func registerAuthorizedRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues/{leagueID}/managers/{managerID}/roster/players", RequireAuth(verifier, http.HandlerFunc(handler.AddRosterPlayer)))
	mux.Handle("DELETE /v1/leagues/{leagueID}/managers/{managerID}/roster/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.DropRosterPlayer)))
	mux.Handle("POST /v1/leagues/{leagueID}/managers/{managerID}/roster/moves", RequireAuth(verifier, http.HandlerFunc(handler.MoveRosterPlayer)))
	mux.Handle("POST /v1/leagues/{leagueID}/trades", RequireAuth(verifier, http.HandlerFunc(handler.ProposeTrade)))
}

func registerAuthorizedIngestionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/internal/ingestion/performances", RequireAuth(verifier, http.HandlerFunc(handler.RecordPerformances)))
	mux.Handle("POST /v1/internal/ingestion/scorecards", RequireAuth(verifier, http.HandlerFunc(handler.ImportScorecard)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-scorecards", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncScorecardsJob)))
}
