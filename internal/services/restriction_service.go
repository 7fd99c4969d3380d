package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/models"
)

var (
	ErrRestrictionNotFound = errors.New("restriction not found")
	ErrInvalidSeverity     = errors.New("invalid severity")
	ErrInvalidScope        = errors.New("invalid scope: expected a JSON array of ids")
	ErrNoPatternFields     = errors.New("at least one pattern field is required")
	// ErrUniquenessConflict is returned (wrapped in a ConflictError)
	// when activating a CommonRestriction would leave a visitor with
	// two active ones.
	ErrUniquenessConflict = errors.New("another active restriction exists for this visitor")
)

// ConflictError carries the id of the already-active restriction so
// the operator can deactivate it first.
type ConflictError struct {
	ExistingID uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("another active restriction (id %d) exists for this visitor", e.ExistingID)
}

func (e *ConflictError) Unwrap() error { return ErrUniquenessConflict }

// BulkOutcome is the per-record result of a bulk activation.
type BulkOutcome struct {
	ID         uint   `json:"id"`
	Activated  bool   `json:"activated"`
	Error      string `json:"error,omitempty"`
	ExistingID uint   `json:"existing_id,omitempty"`
}

// RestrictionService owns the write path of the three restriction
// stores, in particular the uniqueness guard: among all
// CommonRestrictions of a visitor at most one may be active, enforced
// atomically at the inactive-to-active transition.
type RestrictionService struct {
	db *gorm.DB
}

func NewRestrictionService(db *gorm.DB) *RestrictionService {
	return &RestrictionService{db: db}
}

// CreateCommon stores a visitor-bound restriction. Creation as
// inactive is always permitted; when the record is submitted active
// the activation rule is enforced inside the same transaction.
func (s *RestrictionService) CreateCommon(r *models.CommonRestriction) error {
	if !r.Severity.Valid() {
		return ErrInvalidSeverity
	}
	r.UUID = uuid.NewString()

	wantActive := r.Active
	r.Active = false

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		if !wantActive {
			return nil
		}
		return activateCommonTx(tx, r.ID)
	})
}

// ActivateCommon flips a CommonRestriction to active, failing with a
// ConflictError when another active restriction exists for the same
// visitor. Check and set happen in one transaction so concurrent
// activations cannot both succeed.
func (s *RestrictionService) ActivateCommon(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return activateCommonTx(tx, id)
	})
}

func activateCommonTx(tx *gorm.DB, id uint) error {
	var r models.CommonRestriction
	if err := tx.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRestrictionNotFound
		}
		return err
	}
	if r.Active {
		return nil
	}

	var existing models.CommonRestriction
	err := tx.Where("visitor_id = ? AND active = ? AND id <> ?", r.VisitorID, true, r.ID).
		First(&existing).Error
	if err == nil {
		return &ConflictError{ExistingID: existing.ID}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return tx.Model(&r).Update("active", true).Error
}

// DeactivateCommon flips a CommonRestriction to inactive. Always
// permitted.
func (s *RestrictionService) DeactivateCommon(id uint) error {
	result := s.db.Model(&models.CommonRestriction{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRestrictionNotFound
	}
	return nil
}

// BulkActivateCommon activates each record independently and reports
// a per-record outcome, never an all-or-nothing failure.
func (s *RestrictionService) BulkActivateCommon(ids []uint) []BulkOutcome {
	outcomes := make([]BulkOutcome, 0, len(ids))
	for _, id := range ids {
		outcome := BulkOutcome{ID: id}
		if err := s.ActivateCommon(id); err != nil {
			outcome.Error = err.Error()
			var conflict *ConflictError
			if errors.As(err, &conflict) {
				outcome.ExistingID = conflict.ExistingID
			}
		} else {
			outcome.Activated = true
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// CreatePartial stores a free-standing wildcard restriction. At least
// one of the three pattern fields must be configured or the record
// could never match anything.
func (s *RestrictionService) CreatePartial(r *models.PartialRestriction) error {
	if !r.Severity.Valid() {
		return ErrInvalidSeverity
	}
	if r.PartialDocument == nil && r.PartialName == nil && r.Phone == nil {
		return ErrNoPatternFields
	}
	r.UUID = uuid.NewString()
	return s.db.Create(r).Error
}

// CreatePredictive stores a scoped wildcard restriction. Scope columns
// must be empty ("any") or valid JSON id arrays.
func (s *RestrictionService) CreatePredictive(r *models.PredictiveRestriction) error {
	if !r.Severity.Valid() {
		return ErrInvalidSeverity
	}
	if r.NamePattern == nil && r.DocumentNumberPattern == nil {
		return ErrNoPatternFields
	}
	for _, scope := range []string{r.DocumentTypeIDs, r.DestinationIDs} {
		if strings.TrimSpace(scope) == "" {
			continue
		}
		var ids []uint
		if err := json.Unmarshal([]byte(scope), &ids); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidScope, scope)
		}
	}
	r.UUID = uuid.NewString()
	return s.db.Create(r).Error
}

// GetCommon loads one CommonRestriction.
func (s *RestrictionService) GetCommon(id uint) (*models.CommonRestriction, error) {
	var r models.CommonRestriction
	if err := s.db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestrictionNotFound
		}
		return nil, err
	}
	return &r, nil
}

// ListCommon returns CommonRestrictions, optionally filtered by
// visitor, newest first.
func (s *RestrictionService) ListCommon(visitorID *uint) ([]models.CommonRestriction, error) {
	q := s.db.Order("updated_at desc")
	if visitorID != nil {
		q = q.Where("visitor_id = ?", *visitorID)
	}
	var out []models.CommonRestriction
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListPartials returns all PartialRestrictions, newest first.
func (s *RestrictionService) ListPartials() ([]models.PartialRestriction, error) {
	var out []models.PartialRestriction
	if err := s.db.Order("updated_at desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListPredictives returns all PredictiveRestrictions, newest first.
func (s *RestrictionService) ListPredictives() ([]models.PredictiveRestriction, error) {
	var out []models.PredictiveRestriction
	if err := s.db.Order("updated_at desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
