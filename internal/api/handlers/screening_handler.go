package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openreception/porteiro/internal/models"
	"github.com/openreception/porteiro/internal/screening"
	"github.com/openreception/porteiro/internal/services"
)

// ScreeningHandler exposes restriction resolution and the step-up
// authorization gate as standalone endpoints, so the front desk can
// pre-screen a visitor before committing to a check-in.
type ScreeningHandler struct {
	resolver *screening.Resolver
	gate     *services.AuthorizationService
}

func NewScreeningHandler(resolver *screening.Resolver, gate *services.AuthorizationService) *ScreeningHandler {
	return &ScreeningHandler{resolver: resolver, gate: gate}
}

type ResolveRequest struct {
	VisitorID      *uint  `json:"visitor_id,omitempty"`
	Document       string `json:"document"`
	DocumentTypeID uint   `json:"document_type_id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	DestinationID  *uint  `json:"destination_id,omitempty"`
}

// Resolve runs the three restriction sources against the supplied
// visitor attributes and returns every match plus the aggregate
// severity. A resolution failure is a 500: the caller must treat it
// as "unresolved", never as clear.
func (h *ScreeningHandler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attrs := screening.VisitorAttributes{
		ID:             req.VisitorID,
		Document:       req.Document,
		DocumentTypeID: req.DocumentTypeID,
		Name:           req.Name,
		Phone:          req.Phone,
	}

	resolution, err := h.resolver.Resolve(c.Request.Context(), attrs, req.DestinationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Resolution failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches":    resolution.Matches,
		"warnings":   resolution.Warnings,
		"severity":   resolution.Severity(),
		"restricted": resolution.Restricted(),
	})
}

type AuthorizeRequest struct {
	Severity    models.Severity      `json:"severity" binding:"required"`
	Credentials services.Credentials `json:"credentials" binding:"required"`
}

// Authorize runs one step-up authorization attempt against the given
// aggregate severity. The decision applies only to the attempt that
// requested it.
func (h *ScreeningHandler) Authorize(c *gin.Context) {
	var req AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Severity.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown severity"})
		return
	}

	decision, err := h.gate.Authorize(req.Severity, req.Credentials)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization failed"})
		return
	}

	status := http.StatusOK
	if !decision.Granted {
		status = http.StatusForbidden
	}
	c.JSON(status, decision)
}
