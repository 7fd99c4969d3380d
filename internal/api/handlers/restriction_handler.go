package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openreception/porteiro/internal/api/middleware"
	"github.com/openreception/porteiro/internal/models"
	"github.com/openreception/porteiro/internal/services"
)

type RestrictionHandler struct {
	service *services.RestrictionService
}

func NewRestrictionHandler(service *services.RestrictionService) *RestrictionHandler {
	return &RestrictionHandler{service: service}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

type CreateCommonRequest struct {
	VisitorID uint            `json:"visitor_id" binding:"required"`
	Reason    string          `json:"reason" binding:"required"`
	Severity  models.Severity `json:"severity" binding:"required"`
	Active    bool            `json:"active"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

func (h *RestrictionHandler) CreateCommon(c *gin.Context) {
	var req CreateCommonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	operatorID, _ := middleware.OperatorID(c)
	restriction := &models.CommonRestriction{
		VisitorID: req.VisitorID,
		Reason:    req.Reason,
		Severity:  req.Severity,
		Active:    req.Active,
		ExpiresAt: req.ExpiresAt,
		CreatedBy: operatorID,
	}

	if err := h.service.CreateCommon(restriction); err != nil {
		h.writeRestrictionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, restriction)
}

func (h *RestrictionHandler) ListCommon(c *gin.Context) {
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

	restrictions, err := h.service.ListCommon(visitorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list restrictions"})
		return
	}
	c.JSON(http.StatusOK, restrictions)
}

func (h *RestrictionHandler) GetCommon(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	restriction, err := h.service.GetCommon(id)
	if err != nil {
		if errors.Is(err, services.ErrRestrictionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restriction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load restriction"})
		return
	}
	c.JSON(http.StatusOK, restriction)
}

func (h *RestrictionHandler) ActivateCommon(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.ActivateCommon(id); err != nil {
		h.writeRestrictionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restriction activated"})
}

func (h *RestrictionHandler) DeactivateCommon(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeactivateCommon(id); err != nil {
		h.writeRestrictionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restriction deactivated"})
}

type BulkActivateRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// BulkActivateCommon activates a batch of identity restrictions.
// Each id succeeds or fails on its own; a conflict on one never
// rolls back the others.
func (h *RestrictionHandler) BulkActivateCommon(c *gin.Context) {
	var req BulkActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	outcomes := h.service.BulkActivateCommon(req.IDs)
	c.JSON(http.StatusOK, gin.H{"outcomes": outcomes})
}

type CreatePartialRequest struct {
	DocumentTypeID  *uint           `json:"document_type_id,omitempty"`
	PartialDocument *string         `json:"partial_document,omitempty"`
	PartialName     *string         `json:"partial_name,omitempty"`
	Phone           *string         `json:"phone,omitempty"`
	Reason          string          `json:"reason" binding:"required"`
	Severity        models.Severity `json:"severity" binding:"required"`
	Active          bool            `json:"active"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
}

func (h *RestrictionHandler) CreatePartial(c *gin.Context) {
	var req CreatePartialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	operatorID, _ := middleware.OperatorID(c)
	restriction := &models.PartialRestriction{
		DocumentTypeID:  req.DocumentTypeID,
		PartialDocument: req.PartialDocument,
		PartialName:     req.PartialName,
		Phone:           req.Phone,
		Reason:          req.Reason,
		Severity:        req.Severity,
		Active:          req.Active,
		ExpiresAt:       req.ExpiresAt,
		CreatedBy:       operatorID,
	}

	if err := h.service.CreatePartial(restriction); err != nil {
		h.writeRestrictionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, restriction)
}

func (h *RestrictionHandler) ListPartials(c *gin.Context) {
	restrictions, err := h.service.ListPartials()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list restrictions"})
		return
	}
	c.JSON(http.StatusOK, restrictions)
}

type CreatePredictiveRequest struct {
	NamePattern           *string         `json:"name_pattern,omitempty"`
	DocumentNumberPattern *string         `json:"document_number_pattern,omitempty"`
	DocumentTypeIDs       string          `json:"document_type_ids"`
	DestinationIDs        string          `json:"destination_ids"`
	Reason                string          `json:"reason" binding:"required"`
	Severity              models.Severity `json:"severity" binding:"required"`
	Active                bool            `json:"active"`
	ExpiresAt             *time.Time      `json:"expires_at,omitempty"`
	AutoOccurrence        bool            `json:"auto_occurrence"`
}

func (h *RestrictionHandler) CreatePredictive(c *gin.Context) {
	var req CreatePredictiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	operatorID, _ := middleware.OperatorID(c)
	restriction := &models.PredictiveRestriction{
		NamePattern:           req.NamePattern,
		DocumentNumberPattern: req.DocumentNumberPattern,
		DocumentTypeIDs:       req.DocumentTypeIDs,
		DestinationIDs:        req.DestinationIDs,
		Reason:                req.Reason,
		Severity:              req.Severity,
		Active:                req.Active,
		ExpiresAt:             req.ExpiresAt,
		AutoOccurrence:        req.AutoOccurrence,
		CreatedBy:             operatorID,
	}

	if err := h.service.CreatePredictive(restriction); err != nil {
		h.writeRestrictionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, restriction)
}

func (h *RestrictionHandler) ListPredictives(c *gin.Context) {
	restrictions, err := h.service.ListPredictives()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list restrictions"})
		return
	}
	c.JSON(http.StatusOK, restrictions)
}

// writeRestrictionError maps service errors to HTTP responses. A
// uniqueness conflict carries the id of the already-active record so
// the front end can point the operator at it.
func (h *RestrictionHandler) writeRestrictionError(c *gin.Context, err error) {
	var conflict *services.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":       "Visitor already has an active restriction",
			"existing_id": conflict.ExistingID,
		})
	case errors.Is(err, services.ErrRestrictionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Restriction not found"})
	case errors.Is(err, services.ErrInvalidSeverity),
		errors.Is(err, services.ErrNoPatternFields),
		errors.Is(err, services.ErrInvalidScope):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save restriction"})
	}
}
