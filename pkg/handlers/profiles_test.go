package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "github.com/restgate/registry-engine/pkg/adapters/dbprofile/mysql"
	_ "github.com/restgate/registry-engine/pkg/adapters/dbprofile/oracle"
	_ "github.com/restgate/registry-engine/pkg/adapters/dbprofile/postgres"
	_ "github.com/restgate/registry-engine/pkg/adapters/dbprofile/sqlite"
)

func TestProfileHandler_List(t *testing.T) {
	mux := http.NewServeMux()
	NewProfileHandler("POS_NEO", zap.NewNop()).RegisterRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []ProfileInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 7)

	active := 0
	for _, p := range got {
		if p.Active {
			active++
			assert.Equal(t, "POS_NEO", p.Code)
		}
		assert.NotEmpty(t, p.DisplayName)
	}
	assert.Equal(t, 1, active)
}
