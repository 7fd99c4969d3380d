package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openreception/porteiro/internal/api/middleware"
	"github.com/openreception/porteiro/internal/models"
	"github.com/openreception/porteiro/internal/services"
)

type OccurrenceHandler struct {
	service *services.OccurrenceService
}

func NewOccurrenceHandler(service *services.OccurrenceService) *OccurrenceHandler {
	return &OccurrenceHandler{service: service}
}

func (h *OccurrenceHandler) List(c *gin.Context) {
	var visitorID *uint
	if raw := c.Query("visitor_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid visitor_id"})
			return
		}
		v := uint(id)
		visitorID = &v
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	occurrences, err := h.service.List(visitorID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list occurrences"})
		return
	}
	c.JSON(http.StatusOK, occurrences)
}

type CreateOccurrenceRequest struct {
	Description   string                    `json:"description" binding:"required"`
	Severity      models.OccurrenceSeverity `json:"severity" binding:"required"`
	VisitorID     *uint                     `json:"visitor_id,omitempty"`
	DestinationID *uint                     `json:"destination_id,omitempty"`
}

// Create appends a manual occurrence to the audit trail. The log is
// append-only; there is no update or delete route.
func (h *OccurrenceHandler) Create(c *gin.Context) {
	var req CreateOccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	operatorID, _ := middleware.OperatorID(c)
	occ := &models.Occurrence{
		Description:   req.Description,
		Severity:      req.Severity,
		VisitorID:     req.VisitorID,
		DestinationID: req.DestinationID,
		OperatorID:    operatorID,
		Automatic:     false,
	}

	if err := h.service.Append(c.Request.Context(), occ); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record occurrence"})
		return
	}
	c.JSON(http.StatusCreated, occ)
}
