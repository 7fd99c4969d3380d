package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverity_Order(t *testing.T) {
	assert.Less(t, SeverityNone.Rank(), SeverityLow.Rank())
	assert.Less(t, SeverityLow.Rank(), SeverityMedium.Rank())
	assert.Less(t, SeverityMedium.Rank(), SeverityHigh.Rank())

	assert.True(t, SeverityHigh.AtLeast(SeverityMedium))
	assert.True(t, SeverityMedium.AtLeast(SeverityMedium))
	assert.False(t, SeverityLow.AtLeast(SeverityMedium))
}

func TestSeverity_UnknownRanksAboveHigh(t *testing.T) {
	corrupt := Severity("critical")
	assert.False(t, corrupt.Valid())
	assert.Greater(t, corrupt.Rank(), SeverityHigh.Rank())
	assert.Equal(t, CapabilityHighRiskApproval, corrupt.RequiredCapability())
}

func TestSeverity_RequiredCapability(t *testing.T) {
	assert.Equal(t, CapabilityLowRiskApproval, SeverityLow.RequiredCapability())
	assert.Equal(t, CapabilityMediumRiskApproval, SeverityMedium.RequiredCapability())
	assert.Equal(t, CapabilityHighRiskApproval, SeverityHigh.RequiredCapability())
	// Fallback is the strongest capability, never a weaker one.
	assert.Equal(t, CapabilityHighRiskApproval, SeverityNone.RequiredCapability())
}

func TestOccurrenceSeverityFrom(t *testing.T) {
	assert.Equal(t, OccurrenceSeverityNone, OccurrenceSeverityFrom(SeverityNone))
	assert.Equal(t, OccurrenceSeverityLow, OccurrenceSeverityFrom(SeverityLow))
	assert.Equal(t, OccurrenceSeverityMedium, OccurrenceSeverityFrom(SeverityMedium))
	assert.Equal(t, OccurrenceSeverityHigh, OccurrenceSeverityFrom(SeverityHigh))
}
