package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/models"
	"github.com/restgate/registry-engine/pkg/services"
)

// NoteHandler handles note HTTP requests.
type NoteHandler struct {
	noteService services.NoteService
	logger      *zap.Logger
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService services.NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// RegisterRoutes registers the note routes on the given mux.
func (h *NoteHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/notes", h.List)
	mux.HandleFunc("POST /api/v1/notes", h.Create)
	mux.HandleFunc("GET /api/v1/notes/{obj_id}", h.Get)
	mux.HandleFunc("PUT /api/v1/notes/{obj_id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/notes/{obj_id}", h.Delete)
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"user_id"`
}

// List handles GET /api/v1/notes
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.List(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if notes == nil {
		notes = make([]*models.Note, 0)
	}
	if err := WriteJSON(w, http.StatusOK, notes); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/v1/notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	note := &models.Note{Title: req.Title, Content: req.Content}
	note.CreatedBy = req.UserID
	note.UpdatedBy = req.UserID

	if err := h.noteService.Create(r.Context(), note); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, note); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/v1/notes/{obj_id}
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	note, err := h.noteService.Get(r.Context(), r.PathValue("obj_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, note); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/v1/notes/{obj_id}
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	note, err := h.noteService.Get(r.Context(), r.PathValue("obj_id"))
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	note.Title = req.Title
	note.Content = req.Content
	if req.UserID != "" {
		note.UpdatedBy = req.UserID
	}

	if err := h.noteService.Update(r.Context(), note); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, note); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/v1/notes/{obj_id}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.noteService.Delete(r.Context(), r.PathValue("obj_id")); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
