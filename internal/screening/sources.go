package screening

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/models"
)

// CommonSource reads active CommonRestrictions bound to one visitor.
type CommonSource interface {
	ActiveForVisitor(ctx context.Context, visitorID uint, now time.Time) ([]models.CommonRestriction, error)
}

// PartialSource reads all active PartialRestrictions.
type PartialSource interface {
	ActiveCandidates(ctx context.Context, now time.Time) ([]models.PartialRestriction, error)
}

// PredictiveSource reads all active PredictiveRestrictions.
type PredictiveSource interface {
	ActiveCandidates(ctx context.Context, now time.Time) ([]models.PredictiveRestriction, error)
}

// GormSources implements all three restriction sources over the
// database. Sources are dumb readers: the only logic here is the
// active + not-expired filter.
type GormSources struct {
	db *gorm.DB
}

func NewGormSources(db *gorm.DB) *GormSources {
	return &GormSources{db: db}
}

func (s *GormSources) ActiveForVisitor(ctx context.Context, visitorID uint, now time.Time) ([]models.CommonRestriction, error) {
	var out []models.CommonRestriction
	err := s.db.WithContext(ctx).
		Where("visitor_id = ? AND active = ?", visitorID, true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("id").
		Find(&out).Error
	return out, err
}

func (s *GormSources) ActiveCandidates(ctx context.Context, now time.Time) ([]models.PartialRestriction, error) {
	var out []models.PartialRestriction
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("id").
		Find(&out).Error
	return out, err
}

// ActivePredictiveCandidates reads active PredictiveRestrictions.
// Named separately because GormSources serves two list-shaped sources.
func (s *GormSources) ActivePredictiveCandidates(ctx context.Context, now time.Time) ([]models.PredictiveRestriction, error) {
	var out []models.PredictiveRestriction
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("id").
		Find(&out).Error
	return out, err
}

// predictiveAdapter lets GormSources satisfy PredictiveSource despite
// the method name collision with PartialSource.
type predictiveAdapter struct {
	src *GormSources
}

func (a predictiveAdapter) ActiveCandidates(ctx context.Context, now time.Time) ([]models.PredictiveRestriction, error) {
	return a.src.ActivePredictiveCandidates(ctx, now)
}
