package models

import (
	"encoding/json"
	"strings"
	"time"
)

// CommonRestriction blocks one specific visitor identity. It is bound
// by visitor id, never by pattern. At most one may be active per
// visitor at any instant; RestrictionService enforces that at the
// activation boundary.
type CommonRestriction struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UUID      string     `json:"uuid" gorm:"uniqueIndex"`
	VisitorID uint       `json:"visitor_id" gorm:"index"`
	Reason    string     `json:"reason" gorm:"type:text"`
	Severity  Severity   `json:"severity"`
	Active    bool       `json:"active" gorm:"index"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedBy uint       `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Expired reports whether the restriction lapsed before now.
func (r *CommonRestriction) Expired(now time.Time) bool {
	return expiredAt(r.ExpiresAt, now)
}

// PartialRestriction matches visitors by wildcard pattern on document,
// name and/or phone. A nil field does not constrain; a record matches
// when any configured field matches. It can optionally be scoped to a
// single document type.
type PartialRestriction struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	UUID            string     `json:"uuid" gorm:"uniqueIndex"`
	DocumentTypeID  *uint      `json:"document_type_id,omitempty"` // nil = any document type
	PartialDocument *string    `json:"partial_document,omitempty"`
	PartialName     *string    `json:"partial_name,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	Reason          string     `json:"reason" gorm:"type:text"`
	Severity        Severity   `json:"severity"`
	Active          bool       `json:"active" gorm:"index"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	CreatedBy       uint       `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Expired reports whether the restriction lapsed before now.
func (r *PartialRestriction) Expired(now time.Time) bool {
	return expiredAt(r.ExpiresAt, now)
}

// AllowsDocumentType reports whether the restriction applies to
// visitors carrying the given document type.
func (r *PartialRestriction) AllowsDocumentType(id uint) bool {
	return r.DocumentTypeID == nil || *r.DocumentTypeID == id
}

// PredictiveRestriction matches by wildcard pattern on name and/or
// document number, scoped to sets of document types and destinations
// stored as JSON id arrays. An empty scope column means "any". The
// AutoOccurrence flag controls whether a match generates an audit
// occurrence when the global switch is on.
type PredictiveRestriction struct {
	ID                    uint       `json:"id" gorm:"primaryKey"`
	UUID                  string     `json:"uuid" gorm:"uniqueIndex"`
	NamePattern           *string    `json:"name_pattern,omitempty"`
	DocumentNumberPattern *string    `json:"document_number_pattern,omitempty"`
	DocumentTypeIDs       string     `json:"document_type_ids" gorm:"type:text"` // JSON array of ids; "" = any
	DestinationIDs        string     `json:"destination_ids" gorm:"type:text"`   // JSON array of ids; "" = any
	Reason                string     `json:"reason" gorm:"type:text"`
	Severity              Severity   `json:"severity"`
	Active                bool       `json:"active" gorm:"index"`
	ExpiresAt             *time.Time `json:"expires_at,omitempty"`
	AutoOccurrence        bool       `json:"auto_occurrence"`
	CreatedBy             uint       `json:"created_by"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// Expired reports whether the restriction lapsed before now.
func (r *PredictiveRestriction) Expired(now time.Time) bool {
	return expiredAt(r.ExpiresAt, now)
}

// AllowsDocumentType reports whether the document type scope includes id.
func (r *PredictiveRestriction) AllowsDocumentType(id uint) bool {
	return scopeIncludes(r.DocumentTypeIDs, id)
}

// AllowsDestination reports whether the destination scope includes id.
func (r *PredictiveRestriction) AllowsDestination(id uint) bool {
	return scopeIncludes(r.DestinationIDs, id)
}

func expiredAt(expiresAt *time.Time, now time.Time) bool {
	return expiresAt != nil && !expiresAt.After(now)
}

// scopeIncludes parses a JSON id array scope. An empty or "[]" scope
// does not constrain. A scope that fails to parse excludes everything:
// corrupted scoping data must never widen a restriction's reach, and
// equally must never silently fire it against out-of-scope visitors.
func scopeIncludes(raw string, id uint) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true
	}
	var ids []uint
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return false
	}
	if len(ids) == 0 {
		return true
	}
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
