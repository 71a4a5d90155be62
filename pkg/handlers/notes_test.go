package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/apperrors"
	"github.com/restgate/registry-engine/pkg/models"
)

// mockNoteService implements services.NoteService for handler testing.
type mockNoteService struct {
	notes []*models.Note
}

func (m *mockNoteService) Create(_ context.Context, note *models.Note) error {
	if note.Title == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	note.ObjID = uuid.NewString()
	note.Touch(time.Now().UTC())
	m.notes = append(m.notes, note)
	return nil
}

func (m *mockNoteService) Get(_ context.Context, objID string) (*models.Note, error) {
	for _, n := range m.notes {
		if n.ObjID == objID {
			return n, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockNoteService) List(_ context.Context) ([]*models.Note, error) {
	return m.notes, nil
}

func (m *mockNoteService) Update(_ context.Context, note *models.Note) error {
	for i, n := range m.notes {
		if n.ObjID == note.ObjID {
			m.notes[i] = note
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockNoteService) Delete(_ context.Context, objID string) error {
	for i, n := range m.notes {
		if n.ObjID == objID {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func newNoteHandlerMux(svc *mockNoteService) *http.ServeMux {
	mux := http.NewServeMux()
	NewNoteHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestNoteHandler_Create(t *testing.T) {
	svc := &mockNoteService{}
	mux := newNoteHandlerMux(svc)

	body, _ := json.Marshal(map[string]string{"title": "reminder", "content": "check the logs"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Note
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.NotEmpty(t, got.ObjID)
	assert.Equal(t, "reminder", got.Title)
}

func TestNoteHandler_Create_MissingTitle(t *testing.T) {
	mux := newNoteHandlerMux(&mockNoteService{})

	body, _ := json.Marshal(map[string]string{"content": "no title"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNoteHandler_Get_NotFound(t *testing.T) {
	mux := newNoteHandlerMux(&mockNoteService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNoteHandler_UpdateAndDelete(t *testing.T) {
	svc := &mockNoteService{}
	mux := newNoteHandlerMux(svc)

	note := &models.Note{Title: "original"}
	require.NoError(t, svc.Create(context.Background(), note))

	body, _ := json.Marshal(map[string]string{"title": "revised"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/notes/"+note.ObjID, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Note
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "revised", got.Title)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/notes/"+note.ObjID, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, svc.notes)
}
