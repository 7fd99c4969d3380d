package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/metrics"
	"github.com/openreception/porteiro/internal/models"
)

// Denial reasons surfaced to the operator.
const (
	DenialInvalidCredentials    = "invalid_credentials"
	DenialInsufficientPrivilege = "insufficient_privilege"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInsufficientPrivilege = errors.New("insufficient privilege")
)

// Credentials re-entered by a principal for a step-up authorization.
// This is independent of the primary session: the approving principal
// may be a different operator than the one logged in at the desk.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthorizationDecision is valid only for the single check-in attempt
// that produced it. It must never be cached or reused across visitors
// or sessions.
type AuthorizationDecision struct {
	Granted            bool              `json:"granted"`
	PrincipalID        *uint             `json:"principal_id,omitempty"`
	RequiredCapability models.Capability `json:"required_capability,omitempty"`
	Reason             string            `json:"reason,omitempty"`
}

// AuthorizationService is the step-up gate in front of restricted
// check-ins. It demands credential re-entry, maps the aggregate
// severity to a required capability, and checks that the principal
// holds it.
type AuthorizationService struct {
	db *gorm.DB
}

func NewAuthorizationService(db *gorm.DB) *AuthorizationService {
	return &AuthorizationService{db: db}
}

// Authorize runs one authorization attempt. Severity none grants
// trivially. Denials are encoded in the decision; the error return is
// reserved for storage failures, which the caller must treat as
// blocking (never as unrestricted).
func (s *AuthorizationService) Authorize(severity models.Severity, creds Credentials) (AuthorizationDecision, error) {
	if severity == models.SeverityNone {
		return AuthorizationDecision{Granted: true}, nil
	}

	required := severity.RequiredCapability()
	decision := AuthorizationDecision{RequiredCapability: required}

	var principal models.Operator
	if err := s.db.Where("email = ?", creds.Email).First(&principal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			decision.Reason = DenialInvalidCredentials
			metrics.IncAuthorization("denied")
			return decision, nil
		}
		return AuthorizationDecision{}, err
	}

	if !principal.Enabled || !principal.CheckPassword(creds.Password) {
		decision.Reason = DenialInvalidCredentials
		metrics.IncAuthorization("denied")
		return decision, nil
	}

	if !principal.HasCapability(required) {
		decision.PrincipalID = &principal.ID
		decision.Reason = DenialInsufficientPrivilege
		metrics.IncAuthorization("denied")
		return decision, nil
	}

	decision.Granted = true
	decision.PrincipalID = &principal.ID
	metrics.IncAuthorization("granted")
	return decision, nil
}

// Err maps a denied decision to its sentinel error, or nil when
// granted. Convenient for callers that want error-shaped flow.
func (d AuthorizationDecision) Err() error {
	if d.Granted {
		return nil
	}
	switch d.Reason {
	case DenialInsufficientPrivilege:
		return ErrInsufficientPrivilege
	default:
		return ErrInvalidCredentials
	}
}
