package rest

import (
	"net/http"

	"github.com/atwell-labs/syncscore/internal/core/services"
	"github.com/atwell-labs/syncscore/internal/metrics"
)

// Handler manages the HTTP interface for the analysis service.
type Handler struct {
	svc    *services.Analyzer
	router *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Analyzer) *Handler {
	h := &Handler{
		svc:    svc,
		router: http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)
	// Track Search
	h.router.HandleFunc("GET /api/tracks/search", h.SearchTracks)
	// Analysis Sessions
	h.router.HandleFunc("POST /api/analyses", h.StartAnalysis)
	h.router.HandleFunc("GET /api/analyses/{id}", h.GetAnalysis)
	h.router.HandleFunc("DELETE /api/analyses/{id}", h.CancelAnalysis)
	// Runtime Metrics
	h.router.HandleFunc("GET /api/metrics", h.Metrics)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "SyncScore is live 🎛️"})
}

// Metrics returns runtime counters for the service.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Get().Snapshot())
}
