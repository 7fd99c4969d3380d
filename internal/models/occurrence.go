package models

import (
	"time"
)

// OccurrenceSeverity is the audit log's own color taxonomy. It is kept
// separate from the screening Severity enum because occurrences are a
// general audit trail, not specific to restrictions.
type OccurrenceSeverity string

const (
	OccurrenceSeverityNone   OccurrenceSeverity = "none"
	OccurrenceSeverityLow    OccurrenceSeverity = "low"
	OccurrenceSeverityMedium OccurrenceSeverity = "medium"
	OccurrenceSeverityHigh   OccurrenceSeverity = "high"
)

// OccurrenceSeverityFrom maps a restriction severity onto the audit
// taxonomy.
func OccurrenceSeverityFrom(s Severity) OccurrenceSeverity {
	switch s {
	case SeverityLow:
		return OccurrenceSeverityLow
	case SeverityMedium:
		return OccurrenceSeverityMedium
	case SeverityHigh:
		return OccurrenceSeverityHigh
	default:
		return OccurrenceSeverityNone
	}
}

// Occurrence is an append-only audit record. Rows are only ever
// created, never updated or deleted.
type Occurrence struct {
	ID            uint               `json:"id" gorm:"primaryKey"`
	UUID          string             `json:"uuid" gorm:"uniqueIndex"`
	Description   string             `json:"description" gorm:"type:text"`
	Severity      OccurrenceSeverity `json:"severity"`
	VisitorID     *uint              `json:"visitor_id,omitempty" gorm:"index"`
	DestinationID *uint              `json:"destination_id,omitempty" gorm:"index"`
	// Source restriction, when the occurrence was generated by the
	// screening engine.
	RestrictionKind string    `json:"restriction_kind,omitempty"`
	RestrictionID   *uint     `json:"restriction_id,omitempty"`
	OperatorID      uint      `json:"operator_id"`
	Automatic       bool      `json:"automatic"`
	CreatedAt       time.Time `json:"created_at"`
}
