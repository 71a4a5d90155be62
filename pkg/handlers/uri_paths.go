package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/models"
	"github.com/restgate/registry-engine/pkg/services"
)

// UriPathHandler handles URI path segment HTTP requests.
type UriPathHandler struct {
	pathService services.UriPathService
	logger      *zap.Logger
}

// NewUriPathHandler creates a new URI path handler.
func NewUriPathHandler(pathService services.UriPathService, logger *zap.Logger) *UriPathHandler {
	return &UriPathHandler{
		pathService: pathService,
		logger:      logger,
	}
}

// RegisterRoutes registers the URI path routes on the given mux.
func (h *UriPathHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/uri-paths", h.ListByStatus)
	mux.HandleFunc("POST /api/v1/uri-paths", h.Create)
	mux.HandleFunc("GET /api/v1/uri-paths/{obj_id}", h.Get)
	mux.HandleFunc("PUT /api/v1/uri-paths/{obj_id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/uri-paths/{obj_id}", h.Delete)
	mux.HandleFunc("GET /api/v1/uri-defs/{api_id}/uri-paths", h.ListByAPIID)
	mux.HandleFunc("GET /api/v1/uri-defs/{api_id}/uri", h.ComposeURI)
}

type uriPathRequest struct {
	APIID        string `json:"api_id"`
	PathOrder    int    `json:"path_order"`
	PathValue    string `json:"path_value"`
	IsParamUse   bool   `json:"is_param_use"`
	ParamName    string `json:"param_name"`
	ParamType    string `json:"param_type"`
	ParamDesc    string `json:"param_desc"`
	ExampleValue string `json:"example_value"`
	UseStatus    string `json:"use_status"`
	UserID       string `json:"user_id"`
}

func (req *uriPathRequest) apply(path *models.UriPath) error {
	path.APIID = req.APIID
	path.PathOrder = req.PathOrder
	path.PathValue = req.PathValue
	path.IsParamUse = req.IsParamUse
	path.ParamName = req.ParamName
	path.ParamType = req.ParamType
	path.ParamDesc = req.ParamDesc
	path.ExampleValue = req.ExampleValue

	if req.UseStatus != "" {
		status, err := models.ParseUseStatus(req.UseStatus)
		if err != nil {
			return err
		}
		path.UseStatus = status
	}
	return nil
}

// ListByStatus handles GET /api/v1/uri-paths?status=USABLE
func (h *UriPathHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(models.StatusUsable)
	}

	parsed, err := models.ParseUseStatus(status)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_status", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	paths, err := h.pathService.ListByUseStatus(r.Context(), parsed)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if paths == nil {
		paths = make([]*models.UriPath, 0)
	}
	if err := WriteJSON(w, http.StatusOK, paths); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/v1/uri-paths
func (h *UriPathHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req uriPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var path models.UriPath
	if err := req.apply(&path); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	path.CreatedBy = req.UserID
	path.UpdatedBy = req.UserID

	if err := h.pathService.Create(r.Context(), &path); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, &path); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/v1/uri-paths/{obj_id}
func (h *UriPathHandler) Get(w http.ResponseWriter, r *http.Request) {
	path, err := h.pathService.Get(r.Context(), r.PathValue("obj_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, path); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/v1/uri-paths/{obj_id}
func (h *UriPathHandler) Update(w http.ResponseWriter, r *http.Request) {
	path, err := h.pathService.Get(r.Context(), r.PathValue("obj_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	var req uriPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.APIID == "" {
		req.APIID = path.APIID
	}

	if err := req.apply(path); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if req.UserID != "" {
		path.UpdatedBy = req.UserID
	}

	if err := h.pathService.Update(r.Context(), path); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, path); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/v1/uri-paths/{obj_id}
func (h *UriPathHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.pathService.Delete(r.Context(), r.PathValue("obj_id")); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListByAPIID handles GET /api/v1/uri-defs/{api_id}/uri-paths
func (h *UriPathHandler) ListByAPIID(w http.ResponseWriter, r *http.Request) {
	paths, err := h.pathService.ListByAPIID(r.Context(), r.PathValue("api_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if paths == nil {
		paths = make([]*models.UriPath, 0)
	}
	if err := WriteJSON(w, http.StatusOK, paths); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ComposeURI handles GET /api/v1/uri-defs/{api_id}/uri
// Joins the definition's base URI with its usable segments in order.
func (h *UriPathHandler) ComposeURI(w http.ResponseWriter, r *http.Request) {
	uri, err := h.pathService.ComposeURI(r.Context(), r.PathValue("api_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"uri": uri}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
