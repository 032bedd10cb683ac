package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/zones", handler.ListZones)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/standings/zones", handler.GetAllZoneStandings)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/streaks", handler.ListStreaks)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/clean-sheets", handler.ListCleanSheets)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/cards", handler.ListCardRanking)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/top-scorers", handler.ListTopScorers)
	mux.HandleFunc("GET /v1/players/{playerID}/goals", handler.ListPlayerGoals)
	mux.HandleFunc("GET /v1/players/{playerID}/sanctions", handler.ListPlayerSanctions)
	mux.HandleFunc("GET /v1/sync/last-run", handler.GetLastSyncRun)
}

func registerInternalSyncRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/sync/run", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSync)))
	mux.Handle("POST /v1/internal/sync/repair-scores", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RepairScores)))
}
