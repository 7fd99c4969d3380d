package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openreception/porteiro/internal/models"
	"github.com/openreception/porteiro/internal/services"
)

type VisitorHandler struct {
	service *services.VisitorService
}

func NewVisitorHandler(service *services.VisitorService) *VisitorHandler {
	return &VisitorHandler{service: service}
}

// Lookup finds a visitor by document number and type. The entry
// carries the prior-restriction flag the check-in form displays.
func (h *VisitorHandler) Lookup(c *gin.Context) {
	document := c.Query("document")
	if document == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document is required"})
		return
	}
	typeID, err := strconv.ParseUint(c.Query("document_type_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document_type_id"})
		return
	}

	entry, err := h.service.FindByDocument(document, uint(typeID))
	if err != nil {
		if errors.Is(err, services.ErrVisitorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Visitor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *VisitorHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	entry, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrVisitorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Visitor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *VisitorHandler) Create(c *gin.Context) {
	var visitor models.Visitor
	if err := c.ShouldBindJSON(&visitor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if visitor.Name == "" || visitor.Document == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and document are required"})
		return
	}

	if err := h.service.Create(&visitor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create visitor"})
		return
	}
	c.JSON(http.StatusCreated, visitor)
}

func (h *VisitorHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	visitors, err := h.service.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list visitors"})
		return
	}
	c.JSON(http.StatusOK, visitors)
}

func (h *VisitorHandler) ListDestinations(c *gin.Context) {
	destinations, err := h.service.ListDestinations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list destinations"})
		return
	}
	c.JSON(http.StatusOK, destinations)
}

func (h *VisitorHandler) CreateDestination(c *gin.Context) {
	var destination models.Destination
	if err := c.ShouldBindJSON(&destination); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateDestination(&destination); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create destination"})
		return
	}
	c.JSON(http.StatusCreated, destination)
}

func (h *VisitorHandler) ListDocumentTypes(c *gin.Context) {
	types, err := h.service.ListDocumentTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list document types"})
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *VisitorHandler) CreateDocumentType(c *gin.Context) {
	var docType models.DocumentType
	if err := c.ShouldBindJSON(&docType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateDocumentType(&docType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create document type"})
		return
	}
	c.JSON(http.StatusCreated, docType)
}
