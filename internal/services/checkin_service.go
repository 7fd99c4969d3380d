package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/models"
	"github.com/openreception/porteiro/internal/screening"
)

var (
	ErrCheckInNotFound = errors.New("check-in not found")
	ErrAlreadyOut      = errors.New("visitor already checked out")
	// ErrAuthorizationRequired means screening found matches and no
	// step-up credentials were supplied. The check-in stays blocked.
	ErrAuthorizationRequired = errors.New("step-up authorization required")
)

// CheckInRequest carries one check-in attempt. Credentials are the
// step-up re-authentication, required whenever screening matches; the
// resulting decision lives and dies with this single attempt.
type CheckInRequest struct {
	VisitorID     uint         `json:"visitor_id"`
	DestinationID uint         `json:"destination_id"`
	Badge         string       `json:"badge"`
	OperatorID    uint         `json:"-"`
	Credentials   *Credentials `json:"credentials,omitempty"`
}

// CheckInResult reports what happened: the screening outcome, the
// authorization decision when one was needed, and the created row
// when the visit was admitted.
type CheckInResult struct {
	CheckIn            *models.CheckIn        `json:"check_in,omitempty"`
	Resolution         screening.Resolution   `json:"resolution"`
	Severity           models.Severity        `json:"severity"`
	Decision           *AuthorizationDecision `json:"decision,omitempty"`
	OccurrencesEmitted int                    `json:"occurrences_emitted"`
}

// CheckInService orchestrates the check-in data flow: directory
// lookup, restriction resolution, severity aggregation, the step-up
// gate, audit emission and finally the visit record.
type CheckInService struct {
	db            *gorm.DB
	visitors      *VisitorService
	resolver      *screening.Resolver
	gate          *AuthorizationService
	emitter       *screening.Emitter
	notifications *NotificationService
}

func NewCheckInService(
	db *gorm.DB,
	visitors *VisitorService,
	resolver *screening.Resolver,
	gate *AuthorizationService,
	emitter *screening.Emitter,
	notifications *NotificationService,
) *CheckInService {
	return &CheckInService{
		db:            db,
		visitors:      visitors,
		resolver:      resolver,
		gate:          gate,
		emitter:       emitter,
		notifications: notifications,
	}
}

// CheckIn runs one complete check-in attempt. Any resolution failure
// blocks the visit: an internal error must read as "unresolved,
// escalate", never as "unrestricted".
func (s *CheckInService) CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResult, error) {
	entry, err := s.visitors.GetByID(req.VisitorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.visitors.GetDestination(req.DestinationID); err != nil {
		return nil, err
	}

	visitor := entry.Visitor
	attrs := screening.VisitorAttributes{
		ID:             &visitor.ID,
		Document:       visitor.Document,
		DocumentTypeID: visitor.DocumentTypeID,
		Name:           visitor.Name,
		Phone:          visitor.Phone,
	}

	resolution, err := s.resolver.Resolve(ctx, attrs, &req.DestinationID)
	if err != nil {
		return nil, err
	}

	result := &CheckInResult{
		Resolution: resolution,
		Severity:   resolution.Severity(),
	}

	if resolution.Restricted() {
		s.notifications.NotifyRestrictedVisitor(visitor.Name, result.Severity, len(resolution.Matches))

		if req.Credentials == nil {
			return result, ErrAuthorizationRequired
		}
		decision, err := s.gate.Authorize(result.Severity, *req.Credentials)
		if err != nil {
			return nil, err
		}
		result.Decision = &decision
		if !decision.Granted {
			return result, decision.Err()
		}

		// Best-effort audit trail; never blocks the admission.
		result.OccurrencesEmitted = s.emitter.EmitPredictive(
			ctx, resolution, &visitor.ID, &req.DestinationID, req.OperatorID)
	}

	checkIn := &models.CheckIn{
		UUID:          uuid.NewString(),
		VisitorID:     visitor.ID,
		DestinationID: req.DestinationID,
		OperatorID:    req.OperatorID,
		Badge:         req.Badge,
		CheckedInAt:   time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(checkIn).Error; err != nil {
		return nil, err
	}
	result.CheckIn = checkIn
	return result, nil
}

// CheckOut closes an open visit.
func (s *CheckInService) CheckOut(id uint) (*models.CheckIn, error) {
	var checkIn models.CheckIn
	if err := s.db.First(&checkIn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckInNotFound
		}
		return nil, err
	}
	if checkIn.CheckedOutAt != nil {
		return nil, ErrAlreadyOut
	}
	now := time.Now()
	checkIn.CheckedOutAt = &now
	if err := s.db.Save(&checkIn).Error; err != nil {
		return nil, err
	}
	return &checkIn, nil
}

// List returns check-ins newest first; openOnly filters to visitors
// still inside.
func (s *CheckInService) List(openOnly bool) ([]models.CheckIn, error) {
	q := s.db.Order("checked_in_at desc")
	if openOnly {
		q = q.Where("checked_out_at IS NULL")
	}
	var out []models.CheckIn
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
