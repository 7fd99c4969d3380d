package models

import (
	"time"
)

// NotificationProvider is an external alerting target (shoutrrr URL:
// discord, telegram, smtp, ...). Providers opt in to event classes.
type NotificationProvider struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	UUID    string `json:"uuid" gorm:"uniqueIndex"`
	Name    string `json:"name"`
	Type    string `json:"type"` // shoutrrr service name, e.g. "discord", "telegram"
	URL     string `json:"url"`
	Enabled bool   `json:"enabled" gorm:"default:true"`

	// Event preferences
	NotifyRestricted  bool `json:"notify_restricted"`  // restricted visitor at the desk
	NotifyOccurrences bool `json:"notify_occurrences"` // automatic occurrences written

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
