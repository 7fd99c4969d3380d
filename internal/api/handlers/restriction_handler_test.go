package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/api/middleware"
	"github.com/openreception/porteiro/internal/models"
	"github.com/openreception/porteiro/internal/services"
)

func setupRestrictionRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := OpenTestDB(t)
	require.NoError(t, db.AutoMigrate(
		&models.Visitor{},
		&models.CommonRestriction{},
		&models.PartialRestriction{},
		&models.PredictiveRestriction{},
	))

	handler := NewRestrictionHandler(services.NewRestrictionService(db))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.OperatorIDKey, uint(1))
		c.Next()
	})
	r.POST("/restrictions/common", handler.CreateCommon)
	r.GET("/restrictions/common", handler.ListCommon)
	r.POST("/restrictions/common/:id/activate", handler.ActivateCommon)
	r.POST("/restrictions/common/:id/deactivate", handler.DeactivateCommon)
	r.POST("/restrictions/bulk-activate", handler.BulkActivateCommon)
	r.POST("/restrictions/partial", handler.CreatePartial)
	r.POST("/restrictions/predictive", handler.CreatePredictive)
	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, _ := http.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRestrictionHandler_CreateCommon(t *testing.T) {
	r, _ := setupRestrictionRouter(t)

	w := postJSON(t, r, "/restrictions/common", gin.H{
		"visitor_id": 1,
		"reason":     "prior incident",
		"severity":   "medium",
		"active":     true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.CommonRestriction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Active)
	assert.Equal(t, uint(1), created.CreatedBy)
}

func TestRestrictionHandler_ActivateConflictReturnsExistingID(t *testing.T) {
	r, db := setupRestrictionRouter(t)

	first := models.CommonRestriction{VisitorID: 7, Reason: "a", Severity: models.SeverityLow, Active: true}
	require.NoError(t, db.Create(&first).Error)
	second := models.CommonRestriction{VisitorID: 7, Reason: "b", Severity: models.SeverityHigh}
	require.NoError(t, db.Create(&second).Error)

	w := postJSON(t, r, fmt.Sprintf("/restrictions/common/%d/activate", second.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(first.ID), resp["existing_id"])
}

func TestRestrictionHandler_BulkActivate(t *testing.T) {
	r, db := setupRestrictionRouter(t)

	active := models.CommonRestriction{VisitorID: 1, Reason: "a", Severity: models.SeverityLow, Active: true}
	require.NoError(t, db.Create(&active).Error)
	conflicting := models.CommonRestriction{VisitorID: 1, Reason: "b", Severity: models.SeverityLow}
	require.NoError(t, db.Create(&conflicting).Error)
	clean := models.CommonRestriction{VisitorID: 2, Reason: "c", Severity: models.SeverityLow}
	require.NoError(t, db.Create(&clean).Error)

	w := postJSON(t, r, "/restrictions/bulk-activate", gin.H{
		"ids": []uint{conflicting.ID, clean.ID},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Outcomes []services.BulkOutcome `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Outcomes, 2)
	assert.False(t, resp.Outcomes[0].Activated)
	assert.Equal(t, active.ID, resp.Outcomes[0].ExistingID)
	assert.True(t, resp.Outcomes[1].Activated)
}

func TestRestrictionHandler_CreatePartialRequiresPattern(t *testing.T) {
	r, _ := setupRestrictionRouter(t)

	w := postJSON(t, r, "/restrictions/partial", gin.H{
		"reason":   "no fields",
		"severity": "low",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRestrictionHandler_CreatePredictiveRejectsBadScope(t *testing.T) {
	r, _ := setupRestrictionRouter(t)

	w := postJSON(t, r, "/restrictions/predictive", gin.H{
		"name_pattern":      "JO*",
		"document_type_ids": "not-json",
		"reason":            "watchlist",
		"severity":          "high",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
