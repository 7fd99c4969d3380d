package models

import (
	"time"
)

// Well-known setting keys.
const (
	// SettingAutoOccurrence toggles automatic occurrence generation on
	// predictive restriction matches ("true"/"false").
	SettingAutoOccurrence = "screening.auto_occurrence"
)

// Setting is a key/value configuration row editable at runtime.
type Setting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"uniqueIndex"`
	Value     string    `json:"value"`
	Category  string    `json:"category"`
	Type      string    `json:"type"` // "string", "bool", "int"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
