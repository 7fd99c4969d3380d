package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/models"
)

// OccurrenceService is the append-only audit store. There is no
// update or delete path on purpose.
type OccurrenceService struct {
	db *gorm.DB
}

func NewOccurrenceService(db *gorm.DB) *OccurrenceService {
	return &OccurrenceService{db: db}
}

// Append stores one occurrence. Satisfies screening.OccurrenceStore.
func (s *OccurrenceService) Append(ctx context.Context, occ *models.Occurrence) error {
	if occ.UUID == "" {
		occ.UUID = uuid.NewString()
	}
	if occ.CreatedAt.IsZero() {
		occ.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(occ).Error
}

// List returns occurrences newest first, optionally filtered by
// visitor.
func (s *OccurrenceService) List(visitorID *uint, limit int) ([]models.Occurrence, error) {
	q := s.db.Order("created_at desc")
	if visitorID != nil {
		q = q.Where("visitor_id = ?", *visitorID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []models.Occurrence
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
