package models

// Severity classifies how serious a restriction is. The order
// none < low < medium < high is total and drives both aggregation
// and the capability required to override a match.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Capability names the privilege an operator needs to approve a
// check-in despite a restriction match of a given severity.
type Capability string

const (
	CapabilityLowRiskApproval    Capability = "low_risk_approval"
	CapabilityMediumRiskApproval Capability = "medium_risk_approval"
	CapabilityHighRiskApproval   Capability = "high_risk_approval"
)

var severityRank = map[Severity]int{
	SeverityNone:   0,
	SeverityLow:    1,
	SeverityMedium: 2,
	SeverityHigh:   3,
}

// Rank returns the position of s in the severity order. Unknown
// values rank above high so that corrupted data escalates instead of
// slipping through.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return severityRank[SeverityHigh] + 1
}

// Valid reports whether s is one of the known severity values.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// AtLeast reports whether s is equal to or more severe than other.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// RequiredCapability maps a severity to the capability an operator
// must hold to authorize the check-in. The map is monotonic: a higher
// severity never requires a weaker capability, and anything outside
// low/medium falls back to the strongest one.
func (s Severity) RequiredCapability() Capability {
	switch s {
	case SeverityLow:
		return CapabilityLowRiskApproval
	case SeverityMedium:
		return CapabilityMediumRiskApproval
	default:
		return CapabilityHighRiskApproval
	}
}
