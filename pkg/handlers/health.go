package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/config"
	"github.com/restgate/registry-engine/pkg/database"
)

// HealthResponse contains service status and backend information.
type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	GoVersion   string `json:"go_version"`
	Environment string `json:"environment"`
	Profile     string `json:"profile"`
	Backend     string `json:"backend"`
}

// HealthHandler handles liveness and readiness endpoints.
type HealthHandler struct {
	cfg    *config.Config
	db     *database.DB
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config, db *database.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /health/ready", h.Ready)
}

// Health handles GET /health requests. Liveness only; no backend calls.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready handles GET /health/ready requests. Pings the active backend and
// reports which profile the process is serving.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("Readiness ping failed",
			zap.String("profile", h.db.Profile.Code),
			zap.Error(err))
		if werr := ErrorResponse(w, http.StatusServiceUnavailable, "backend_unavailable", "database ping failed"); werr != nil {
			h.logger.Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	response := HealthResponse{
		Status:      "ok",
		Service:     "registry-engine",
		GoVersion:   runtime.Version(),
		Environment: h.cfg.Env,
		Profile:     h.db.Profile.Code,
		Backend:     h.db.Profile.DisplayName,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode health response", zap.Error(err))
	}
}
