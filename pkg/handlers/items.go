package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/models"
	"github.com/restgate/registry-engine/pkg/services"
)

// ItemHandler handles inventory item HTTP requests.
type ItemHandler struct {
	itemService services.ItemService
	logger      *zap.Logger
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService services.ItemService, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		logger:      logger,
	}
}

// RegisterRoutes registers the item routes on the given mux.
func (h *ItemHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/items", h.List)
	mux.HandleFunc("POST /api/v1/items", h.Create)
	mux.HandleFunc("GET /api/v1/items/{obj_id}", h.Get)
	mux.HandleFunc("PUT /api/v1/items/{obj_id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/items/{obj_id}", h.Delete)
}

type itemRequest struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	PriceCents  int    `json:"price_cents"`
	Description string `json:"description"`
	UserID      string `json:"user_id"`
}

// List handles GET /api/v1/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.List(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if items == nil {
		items = make([]*models.Item, 0)
	}
	if err := WriteJSON(w, http.StatusOK, items); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/v1/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	item := &models.Item{
		Name:        req.Name,
		Quantity:    req.Quantity,
		PriceCents:  req.PriceCents,
		Description: req.Description,
	}
	item.CreatedBy = req.UserID
	item.UpdatedBy = req.UserID

	if err := h.itemService.Create(r.Context(), item); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, item); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/v1/items/{obj_id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemService.Get(r.Context(), r.PathValue("obj_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, item); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/v1/items/{obj_id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemService.Get(r.Context(), r.PathValue("obj_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	item.Name = req.Name
	item.Quantity = req.Quantity
	item.PriceCents = req.PriceCents
	item.Description = req.Description
	if req.UserID != "" {
		item.UpdatedBy = req.UserID
	}

	if err := h.itemService.Update(r.Context(), item); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, item); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/v1/items/{obj_id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.itemService.Delete(r.Context(), r.PathValue("obj_id")); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
