package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/leaderboard/seasons", handler.ListSeasonLeaderboards)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/results/summary", handler.GetResultsSummary)
	mux.HandleFunc("GET /v1/cache-status", handler.GetCacheStatus)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminKey string) {
	mux.Handle("POST /v1/players", RequireAdminKey(adminKey, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("GET /v1/tournament-events", RequireAdminKey(adminKey, http.HandlerFunc(handler.ListTournamentEvents)))
	mux.Handle("POST /v1/admin/import-event", RequireAdminKey(adminKey, http.HandlerFunc(handler.ImportEvent)))
	mux.Handle("POST /v1/admin/reimport-event", RequireAdminKey(adminKey, http.HandlerFunc(handler.ReimportEvent)))
	mux.Handle("GET /v1/admin/preview", RequireAdminKey(adminKey, http.HandlerFunc(handler.PreviewEvent)))
	mux.Handle("GET /v1/admin/unmapped", RequireAdminKey(adminKey, http.HandlerFunc(handler.ListUnmapped)))
	mux.Handle("POST /v1/admin/rebuild-cache", RequireAdminKey(adminKey, http.HandlerFunc(handler.RebuildCache)))
}
