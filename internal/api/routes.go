package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger(handler.logger))

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Proxy routes (secret key stays server-side)
	api.HandleFunc("/vendas-realtime", handler.GetVendasRealtime).Methods("GET")
	api.HandleFunc("/sync-status", handler.GetSyncStatus).Methods("GET")
	api.HandleFunc("/metas", handler.GetMetas).Methods("GET")
	api.HandleFunc("/metas/distribuida", handler.GetMetasDistribuida).Methods("GET")

	// Closed-day history (cache)
	api.HandleFunc("/metas/vendas-diarias", handler.GetVendasDiarias).Methods("GET")

	// Computed routes (fusion engine)
	api.HandleFunc("/metas/fusao", handler.GetMetasFusao).Methods("GET")
	api.HandleFunc("/metas/pacing", handler.GetMetasPacing).Methods("GET")
	api.HandleFunc("/metas/hoje", handler.GetMetasHoje).Methods("GET")
	api.HandleFunc("/metas/ranking", handler.GetMetasRanking).Methods("GET")

	// RLS permission routes
	api.HandleFunc("/rls/config", handler.GetRLSConfig).Methods("GET")
	api.HandleFunc("/rls/config", handler.SaveRLSConfig).Methods("POST")
	api.HandleFunc("/rls/user/{userId}", handler.GetUserPermissions).Methods("GET")

	return r
}
