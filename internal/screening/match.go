// Package screening implements the visitor restriction resolution
// engine: it queries the three restriction sources, applies wildcard
// matching and scoping, and reduces the matches to a single severity
// verdict used to gate check-ins.
package screening

import (
	"time"

	"github.com/openreception/porteiro/internal/models"
)

// SourceKind identifies which restriction store produced a match.
type SourceKind string

const (
	SourceCommon     SourceKind = "common"
	SourcePartial    SourceKind = "partial"
	SourcePredictive SourceKind = "predictive"
)

// ReasonField names the visitor attribute a restriction matched on.
type ReasonField string

const (
	ReasonIdentity ReasonField = "identity"
	ReasonDocument ReasonField = "document"
	ReasonName     ReasonField = "name"
	ReasonPhone    ReasonField = "phone"
)

// MatchResult is one restriction hit, produced fresh per resolution
// call and never persisted.
type MatchResult struct {
	SourceKind    SourceKind         `json:"source_kind"`
	RestrictionID uint               `json:"restriction_id"`
	Reason        string             `json:"reason"`
	ReasonFields  []ReasonField      `json:"reason_fields"`
	Severity      models.Severity    `json:"severity"`
	ExpiresAt     *time.Time         `json:"expires_at,omitempty"`
	// AutoOccurrence is carried only for predictive matches and drives
	// the audit emitter.
	AutoOccurrence bool `json:"auto_occurrence,omitempty"`
}

// Warning reports a restriction whose pattern failed to compile. The
// restriction is treated as not matching (never as matching
// everything) and resolution continues.
type Warning struct {
	SourceKind    SourceKind `json:"source_kind"`
	RestrictionID uint       `json:"restriction_id"`
	Field         string     `json:"field"`
	Pattern       string     `json:"pattern"`
	Message       string     `json:"message"`
}

// Aggregate reduces a match set to one severity: the maximum over all
// matches in the none < low < medium < high order. An empty set
// aggregates to none.
func Aggregate(matches []MatchResult) models.Severity {
	out := models.SeverityNone
	for _, m := range matches {
		if m.Severity.Rank() > out.Rank() {
			out = m.Severity
		}
	}
	return out
}
