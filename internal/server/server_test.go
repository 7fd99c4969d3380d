package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/config"
)

func TestNewServesFrontendAndHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tempDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tempDir, "index.html"), []byte("<html></html>"), 0644)
	require.NoError(t, err)

	db, err := gorm.Open(sqlite.Open("file:servertest?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	srv, err := New(db, config.Config{
		Environment: "test",
		JWTSecret:   "test-secret",
		FrontendDir: tempDir,
	})
	require.NoError(t, err)

	// SPA fallback serves index.html
	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<html></html>")

	// API misses return JSON, not the SPA
	req, _ = http.NewRequest("GET", "/api/v1/nope", nil)
	w = httptest.NewRecorder()
	srv.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found")

	// Health endpoint is public
	req, _ = http.NewRequest("GET", "/api/v1/health", nil)
	w = httptest.NewRecorder()
	srv.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
