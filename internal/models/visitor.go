package models

import (
	"time"
)

// DocumentType is a kind of identity document a visitor can present
// (national id, passport, driver's license, ...).
type DocumentType struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"uniqueIndex"`
	Name      string    `json:"name" gorm:"index"`
	Code      string    `json:"code" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Destination is a place a visitor can be checked in to (a sector,
// office or apartment handled by the reception desk).
type Destination struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"uniqueIndex"`
	Name      string    `json:"name" gorm:"index"`
	Sector    string    `json:"sector"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Visitor is an identity known to the reception directory. The
// screening engine matches restrictions against its document, name
// and phone attributes.
type Visitor struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UUID           string    `json:"uuid" gorm:"uniqueIndex"`
	Name           string    `json:"name" gorm:"index"`
	Document       string    `json:"document" gorm:"index"`
	DocumentTypeID uint      `json:"document_type_id" gorm:"index"`
	Phone          string    `json:"phone"`
	PhotoPath      string    `json:"photo_path,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CheckIn records one visit gated by the screening engine. CheckedOutAt
// is nil while the visitor is still inside.
type CheckIn struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	UUID          string     `json:"uuid" gorm:"uniqueIndex"`
	VisitorID     uint       `json:"visitor_id" gorm:"index"`
	DestinationID uint       `json:"destination_id" gorm:"index"`
	OperatorID    uint       `json:"operator_id"`
	Badge         string     `json:"badge"`
	CheckedInAt   time.Time  `json:"checked_in_at"`
	CheckedOutAt  *time.Time `json:"checked_out_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
