package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openreception/porteiro/internal/api/middleware"
	"github.com/openreception/porteiro/internal/services"
)

type CheckInHandler struct {
	service *services.CheckInService
}

func NewCheckInHandler(service *services.CheckInService) *CheckInHandler {
	return &CheckInHandler{service: service}
}

// Create runs one check-in attempt. When screening matches and no
// step-up credentials were sent, the response is 403 with the full
// resolution so the desk can ask a supervisor to re-authenticate and
// retry the same request with credentials attached.
func (h *CheckInHandler) Create(c *gin.Context) {
	var req services.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.VisitorID == 0 || req.DestinationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visitor_id and destination_id are required"})
		return
	}

	operatorID, _ := middleware.OperatorID(c)
	req.OperatorID = operatorID

	result, err := h.service.CheckIn(c.Request.Context(), req)
	if err != nil {
		h.writeCheckInError(c, result, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *CheckInHandler) CheckOut(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	checkIn, err := h.service.CheckOut(id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCheckInNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Check-in not found"})
		case errors.Is(err, services.ErrAlreadyOut):
			c.JSON(http.StatusConflict, gin.H{"error": "Visitor already checked out"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Check-out failed"})
		}
		return
	}
	c.JSON(http.StatusOK, checkIn)
}

func (h *CheckInHandler) List(c *gin.Context) {
	openOnly := c.Query("open") == "true"
	checkIns, err := h.service.List(openOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list check-ins"})
		return
	}
	c.JSON(http.StatusOK, checkIns)
}

func (h *CheckInHandler) writeCheckInError(c *gin.Context, result *services.CheckInResult, err error) {
	switch {
	case errors.Is(err, services.ErrVisitorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Visitor not found"})
	case errors.Is(err, services.ErrDestinationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
	case errors.Is(err, services.ErrAuthorizationRequired):
		c.JSON(http.StatusForbidden, gin.H{
			"error":  "Step-up authorization required",
			"result": result,
		})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInsufficientPrivilege):
		c.JSON(http.StatusForbidden, gin.H{
			"error":  err.Error(),
			"result": result,
		})
	default:
		// Resolution or storage failure. The visit stays blocked.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Check-in failed"})
	}
}
