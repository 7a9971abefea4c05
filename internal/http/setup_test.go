package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/booktracker/internal/audit"
	"github.com/mrlokans/booktracker/internal/database"
	auditRepo "github.com/mrlokans/booktracker/internal/database/audit"
	"github.com/mrlokans/booktracker/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	db      *database.Database
	auditor *audit.Service
	router  *gin.Engine
}

func setupTestDatabase(t *testing.T) *database.Database {
	t.Helper()

	opts := database.DefaultOptions()
	opts.LogLevel = logger.Silent

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"), opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	db := setupTestDatabase(t)
	auditor := audit.NewService(auditRepo.NewRepository(db.DB))
	t.Cleanup(auditor.Wait)

	router := NewRouter(RouterConfig{
		Library:  services.NewLibrary(db.DB),
		Profiles: services.NewProfiles(db.DB),
		Stats:    services.NewStats(db.DB),
		Database: db,
		Auditor:  auditor,
		Version:  "test",
	})

	return &testServer{db: db, auditor: auditor, router: router}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}


func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
