package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/models"
	"github.com/restgate/registry-engine/pkg/services"
)

// UriDefHandler handles URI definition HTTP requests.
type UriDefHandler struct {
	defService services.UriDefService
	logger     *zap.Logger
}

// NewUriDefHandler creates a new URI definition handler.
func NewUriDefHandler(defService services.UriDefService, logger *zap.Logger) *UriDefHandler {
	return &UriDefHandler{
		defService: defService,
		logger:     logger,
	}
}

// RegisterRoutes registers the URI definition routes on the given mux.
func (h *UriDefHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/uri-defs", h.List)
	mux.HandleFunc("POST /api/v1/uri-defs", h.Create)
	mux.HandleFunc("GET /api/v1/uri-defs/{api_id}", h.Get)
	mux.HandleFunc("PUT /api/v1/uri-defs/{api_id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/uri-defs/{api_id}", h.Delete)
}

type uriDefRequest struct {
	APIID       string `json:"api_id"`
	SiteID      string `json:"site_id"`
	ServiceName string `json:"service_name"`
	Method      string `json:"method"`
	APIName     string `json:"api_name"`
	Description string `json:"description"`
	BaseURI     string `json:"base_uri"`
	VersionInfo string `json:"version_info"`
	UseStatus   string `json:"use_status"`
	UserID      string `json:"user_id"`
}

// apply copies the request fields onto the model, normalizing enums.
func (req *uriDefRequest) apply(def *models.UriDef) error {
	def.APIID = req.APIID
	def.SiteID = req.SiteID
	def.ServiceName = req.ServiceName
	def.APIName = req.APIName
	def.Description = req.Description
	def.BaseURI = req.BaseURI
	def.VersionInfo = req.VersionInfo

	if req.Method != "" {
		method, err := models.ParseHTTPMethod(req.Method)
		if err != nil {
			return err
		}
		def.Method = method
	}
	if req.UseStatus != "" {
		status, err := models.ParseUseStatus(req.UseStatus)
		if err != nil {
			return err
		}
		def.UseStatus = status
	}
	return nil
}

// List handles GET /api/v1/uri-defs
func (h *UriDefHandler) List(w http.ResponseWriter, r *http.Request) {
	defs, err := h.defService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list uri definitions", zap.Error(err))
		WriteServiceError(w, h.logger, err)
		return
	}

	if defs == nil {
		defs = make([]*models.UriDef, 0)
	}
	if err := WriteJSON(w, http.StatusOK, defs); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/v1/uri-defs
func (h *UriDefHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req uriDefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var def models.UriDef
	if err := req.apply(&def); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	def.CreatedBy = req.UserID
	def.UpdatedBy = req.UserID

	if err := h.defService.Create(r.Context(), &def); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, &def); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/v1/uri-defs/{api_id}
func (h *UriDefHandler) Get(w http.ResponseWriter, r *http.Request) {
	def, err := h.defService.GetByAPIID(r.Context(), r.PathValue("api_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, def); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/v1/uri-defs/{api_id}
func (h *UriDefHandler) Update(w http.ResponseWriter, r *http.Request) {
	def, err := h.defService.GetByAPIID(r.Context(), r.PathValue("api_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	var req uriDefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	// The path parameter identifies the record; a differing body api_id is
	// rejected by the service.
	if req.APIID == "" {
		req.APIID = def.APIID
	}

	if err := req.apply(def); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.UserID != "" {
		def.UpdatedBy = req.UserID
	}

	if err := h.defService.Update(r.Context(), def); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, def); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/v1/uri-defs/{api_id}
// Removes the definition and all of its paths; responds with the count.
func (h *UriDefHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.defService.DeleteByAPIID(r.Context(), r.PathValue("api_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]int64{"deleted_paths": removed}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
