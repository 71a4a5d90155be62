package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/adapters/dbprofile"
)

// ProfileInfo describes one registered database profile.
type ProfileInfo struct {
	Code        string `json:"code"`
	DBType      string `json:"db_type"`
	Host        string `json:"host"`
	DisplayName string `json:"display_name"`
	Active      bool   `json:"active"`
}

// ProfileHandler exposes the registered database profiles.
type ProfileHandler struct {
	activeCode string
	logger     *zap.Logger
}

// NewProfileHandler creates a profile handler. activeCode is the profile the
// process is currently serving.
func NewProfileHandler(activeCode string, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{activeCode: activeCode, logger: logger}
}

// RegisterRoutes registers the profile routes on the given mux.
func (h *ProfileHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/profiles", h.List)
}

// List handles GET /api/v1/profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles := dbprofile.Profiles()

	out := make([]ProfileInfo, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ProfileInfo{
			Code:        p.Code,
			DBType:      p.DBType,
			Host:        p.Host,
			DisplayName: p.DisplayName,
			Active:      p.Code == h.activeCode,
		})
	}

	if err := WriteJSON(w, http.StatusOK, out); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
