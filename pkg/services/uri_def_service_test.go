package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/apperrors"
	"github.com/restgate/registry-engine/pkg/models"
)

// mockUriDefRepo implements repositories.UriDefRepository for testing.
type mockUriDefRepo struct {
	defs      []*models.UriDef
	pathCount map[string]int64
	createErr error
	deleteErr error
}

func (m *mockUriDefRepo) Create(_ context.Context, def *models.UriDef) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, d := range m.defs {
		if d.APIID == def.APIID {
			return apperrors.ErrConflict
		}
	}
	if def.ObjID == "" {
		def.ObjID = uuid.NewString()
	}
	def.Touch(time.Now().UTC())
	m.defs = append(m.defs, def)
	return nil
}

func (m *mockUriDefRepo) Get(_ context.Context, objID string) (*models.UriDef, error) {
	for _, d := range m.defs {
		if d.ObjID == objID {
			return d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUriDefRepo) GetByAPIID(_ context.Context, apiID string) (*models.UriDef, error) {
	for _, d := range m.defs {
		if d.APIID == apiID {
			return d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUriDefRepo) List(_ context.Context) ([]*models.UriDef, error) {
	return m.defs, nil
}

func (m *mockUriDefRepo) Update(_ context.Context, def *models.UriDef) error {
	for i, d := range m.defs {
		if d.ObjID == def.ObjID {
			m.defs[i] = def
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockUriDefRepo) DeleteByAPIID(_ context.Context, apiID string) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	for i, d := range m.defs {
		if d.APIID == apiID {
			m.defs = append(m.defs[:i], m.defs[i+1:]...)
			return m.pathCount[apiID], nil
		}
	}
	return 0, apperrors.ErrNotFound
}

func validDef(apiID string) *models.UriDef {
	return &models.UriDef{
		APIID:       apiID,
		SiteID:      "SITE01",
		ServiceName: "order-service",
		Method:      models.MethodGet,
	}
}

func TestUriDefService_Create_Valid(t *testing.T) {
	repo := &mockUriDefRepo{}
	svc := NewUriDefService(repo, zap.NewNop())

	def := validDef("API-001")
	err := svc.Create(context.Background(), def)
	require.NoError(t, err)
	assert.NotEmpty(t, def.ObjID)
	assert.Len(t, repo.defs, 1)
}

func TestUriDefService_Create_MissingFields(t *testing.T) {
	svc := NewUriDefService(&mockUriDefRepo{}, zap.NewNop())

	tests := []struct {
		name string
		def  *models.UriDef
	}{
		{"missing api_id", &models.UriDef{SiteID: "S", ServiceName: "svc"}},
		{"missing site_id", &models.UriDef{APIID: "A", ServiceName: "svc"}},
		{"missing service_name", &models.UriDef{APIID: "A", SiteID: "S"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(context.Background(), tt.def)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestUriDefService_Create_InvalidMethod(t *testing.T) {
	svc := NewUriDefService(&mockUriDefRepo{}, zap.NewNop())

	def := validDef("API-001")
	def.Method = "FETCH"
	err := svc.Create(context.Background(), def)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUriDefService_Create_DuplicateAPIID(t *testing.T) {
	repo := &mockUriDefRepo{}
	svc := NewUriDefService(repo, zap.NewNop())

	require.NoError(t, svc.Create(context.Background(), validDef("API-001")))
	err := svc.Create(context.Background(), validDef("API-001"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUriDefService_Update_APIIDImmutable(t *testing.T) {
	repo := &mockUriDefRepo{}
	svc := NewUriDefService(repo, zap.NewNop())

	def := validDef("API-001")
	require.NoError(t, svc.Create(context.Background(), def))

	changed := validDef("API-002")
	changed.ObjID = def.ObjID
	err := svc.Update(context.Background(), changed)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUriDefService_Update_NotFound(t *testing.T) {
	svc := NewUriDefService(&mockUriDefRepo{}, zap.NewNop())

	def := validDef("API-001")
	def.ObjID = "missing"
	err := svc.Update(context.Background(), def)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUriDefService_DeleteByAPIID_ReturnsPathCount(t *testing.T) {
	repo := &mockUriDefRepo{pathCount: map[string]int64{"API-001": 3}}
	svc := NewUriDefService(repo, zap.NewNop())

	require.NoError(t, svc.Create(context.Background(), validDef("API-001")))

	removed, err := svc.DeleteByAPIID(context.Background(), "API-001")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.Empty(t, repo.defs)
}

func TestUriDefService_DeleteByAPIID_EmptyID(t *testing.T) {
	svc := NewUriDefService(&mockUriDefRepo{}, zap.NewNop())

	_, err := svc.DeleteByAPIID(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUriDefService_Get_EmptyID(t *testing.T) {
	svc := NewUriDefService(&mockUriDefRepo{}, zap.NewNop())

	_, err := svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
