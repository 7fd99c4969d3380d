package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/models"
)

var (
	ErrVisitorNotFound      = errors.New("visitor not found")
	ErrDestinationNotFound  = errors.New("destination not found")
	ErrDocumentTypeNotFound = errors.New("document type not found")
)

// DirectoryEntry is a visitor plus the prior-restriction flag the
// check-in form shows before screening even runs.
type DirectoryEntry struct {
	Visitor              models.Visitor `json:"visitor"`
	HasActiveRestriction bool           `json:"has_active_restriction"`
}

// VisitorService is the visitor directory: lookups by document or id
// and the supporting destination / document type catalogs.
type VisitorService struct {
	db *gorm.DB
}

func NewVisitorService(db *gorm.DB) *VisitorService {
	return &VisitorService{db: db}
}

// FindByDocument looks a visitor up by document number and type.
func (s *VisitorService) FindByDocument(document string, documentTypeID uint) (*DirectoryEntry, error) {
	var v models.Visitor
	err := s.db.Where("document = ? AND document_type_id = ?", document, documentTypeID).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitorNotFound
		}
		return nil, err
	}
	return s.entry(v)
}

// GetByID looks a visitor up by internal id.
func (s *VisitorService) GetByID(id uint) (*DirectoryEntry, error) {
	var v models.Visitor
	if err := s.db.First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitorNotFound
		}
		return nil, err
	}
	return s.entry(v)
}

func (s *VisitorService) entry(v models.Visitor) (*DirectoryEntry, error) {
	var count int64
	err := s.db.Model(&models.CommonRestriction{}).
		Where("visitor_id = ? AND active = ?", v.ID, true).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	return &DirectoryEntry{Visitor: v, HasActiveRestriction: count > 0}, nil
}

// Create registers a visitor in the directory.
func (s *VisitorService) Create(v *models.Visitor) error {
	v.UUID = uuid.NewString()
	return s.db.Create(v).Error
}

// List returns visitors ordered by name, optionally limited.
func (s *VisitorService) List(limit int) ([]models.Visitor, error) {
	q := s.db.Order("name")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []models.Visitor
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetDestination loads one destination.
func (s *VisitorService) GetDestination(id uint) (*models.Destination, error) {
	var d models.Destination
	if err := s.db.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListDestinations returns active destinations ordered by name.
func (s *VisitorService) ListDestinations() ([]models.Destination, error) {
	var out []models.Destination
	if err := s.db.Where("active = ?", true).Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDestination registers a destination.
func (s *VisitorService) CreateDestination(d *models.Destination) error {
	d.UUID = uuid.NewString()
	return s.db.Create(d).Error
}

// ListDocumentTypes returns all document types.
func (s *VisitorService) ListDocumentTypes() ([]models.DocumentType, error) {
	var out []models.DocumentType
	if err := s.db.Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDocumentType registers a document type.
func (s *VisitorService) CreateDocumentType(d *models.DocumentType) error {
	d.UUID = uuid.NewString()
	return s.db.Create(d).Error
}
