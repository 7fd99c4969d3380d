package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/models"
)

func setupGateDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Operator{}))
	return db
}

func createOperator(t *testing.T, db *gorm.DB, email, password, role string) *models.Operator {
	op := &models.Operator{Email: email, Name: email, Role: role, Enabled: true}
	require.NoError(t, op.SetPassword(password))
	require.NoError(t, db.Create(op).Error)
	return op
}

func TestAuthorize_NoneSeverityGrantsTrivially(t *testing.T) {
	gate := NewAuthorizationService(setupGateDB(t))

	decision, err := gate.Authorize(models.SeverityNone, Credentials{})
	require.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.NoError(t, decision.Err())
}

func TestAuthorize_HighSeverityRequiresHighRiskApproval(t *testing.T) {
	db := setupGateDB(t)
	chief := createOperator(t, db, "chief@desk.local", "chief-pass", models.RoleSecurityChief)
	createOperator(t, db, "attendant@desk.local", "att-pass", models.RoleAttendant)

	gate := NewAuthorizationService(db)

	// Capability present: granted.
	decision, err := gate.Authorize(models.SeverityHigh, Credentials{Email: "chief@desk.local", Password: "chief-pass"})
	require.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.Equal(t, models.CapabilityHighRiskApproval, decision.RequiredCapability)
	assert.Equal(t, chief.ID, *decision.PrincipalID)

	// Only low_risk_approval: denied with insufficient privilege.
	decision, err = gate.Authorize(models.SeverityHigh, Credentials{Email: "attendant@desk.local", Password: "att-pass"})
	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, DenialInsufficientPrivilege, decision.Reason)
	assert.ErrorIs(t, decision.Err(), ErrInsufficientPrivilege)
}

func TestAuthorize_InvalidCredentials(t *testing.T) {
	db := setupGateDB(t)
	createOperator(t, db, "chief@desk.local", "chief-pass", models.RoleSecurityChief)
	gate := NewAuthorizationService(db)

	// Wrong password.
	decision, err := gate.Authorize(models.SeverityLow, Credentials{Email: "chief@desk.local", Password: "nope"})
	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, DenialInvalidCredentials, decision.Reason)
	assert.ErrorIs(t, decision.Err(), ErrInvalidCredentials)

	// Unknown principal.
	decision, err = gate.Authorize(models.SeverityLow, Credentials{Email: "ghost@desk.local", Password: "x"})
	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, DenialInvalidCredentials, decision.Reason)
}

func TestAuthorize_DisabledPrincipalIsInvalid(t *testing.T) {
	db := setupGateDB(t)
	op := createOperator(t, db, "chief@desk.local", "chief-pass", models.RoleSecurityChief)
	require.NoError(t, db.Model(op).Update("enabled", false).Error)

	gate := NewAuthorizationService(db)
	decision, err := gate.Authorize(models.SeverityMedium, Credentials{Email: "chief@desk.local", Password: "chief-pass"})
	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, DenialInvalidCredentials, decision.Reason)
}

func TestAuthorize_CapabilityMapIsMonotonic(t *testing.T) {
	// A higher severity never requires a weaker capability.
	caps := map[models.Capability]int{
		models.CapabilityLowRiskApproval:    1,
		models.CapabilityMediumRiskApproval: 2,
		models.CapabilityHighRiskApproval:   3,
	}
	order := []models.Severity{models.SeverityNone, models.SeverityLow, models.SeverityMedium, models.SeverityHigh}
	prev := 0
	for _, sev := range order[1:] {
		rank := caps[sev.RequiredCapability()]
		assert.GreaterOrEqual(t, rank, prev, "severity %s", sev)
		prev = rank
	}
	// The fallback maps to the strongest capability.
	assert.Equal(t, models.CapabilityHighRiskApproval, models.SeverityNone.RequiredCapability())
}
