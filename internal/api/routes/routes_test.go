package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/config"
)

func TestRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	cfg := config.Config{
		JWTSecret: "test-secret",
	}

	err = Register(router, db, cfg)
	assert.NoError(t, err)

	routes := router.Routes()
	assert.NotEmpty(t, routes)

	expected := map[string]bool{
		"GET /api/v1/health":               false,
		"GET /metrics":                     false,
		"POST /api/v1/auth/login":          false,
		"POST /api/v1/screening/resolve":   false,
		"POST /api/v1/check-ins":           false,
		"POST /api/v1/restrictions/common": false,
	}
	for _, r := range routes {
		key := r.Method + " " + r.Path
		if _, ok := expected[key]; ok {
			expected[key] = true
		}
	}
	for key, found := range expected {
		assert.True(t, found, "route %s should be registered", key)
	}
}
