package services

import (
	"fmt"

	"github.com/containrrr/shoutrrr"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/logger"
	"github.com/openreception/porteiro/internal/models"
)

// Notification event types.
const (
	EventRestricted = "restricted"
	EventOccurrence = "occurrence"
)

// NotificationService pushes alerts to external providers via
// shoutrrr. Delivery is asynchronous and best-effort: a failing
// provider is logged and never affects the check-in flow.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// ListProviders returns all configured providers.
func (s *NotificationService) ListProviders() ([]models.NotificationProvider, error) {
	var out []models.NotificationProvider
	if err := s.db.Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProvider registers a provider.
func (s *NotificationService) CreateProvider(p *models.NotificationProvider) error {
	p.UUID = uuid.NewString()
	return s.db.Create(p).Error
}

// DeleteProvider removes a provider.
func (s *NotificationService) DeleteProvider(id uint) error {
	return s.db.Delete(&models.NotificationProvider{}, id).Error
}

// SendExternal fans a message out to every enabled provider opted in
// to the event type.
func (s *NotificationService) SendExternal(eventType, title, message string) {
	var providers []models.NotificationProvider
	if err := s.db.Where("enabled = ?", true).Find(&providers).Error; err != nil {
		logger.Log().WithError(err).Error("failed to fetch notification providers")
		return
	}

	for _, provider := range providers {
		shouldSend := false
		switch eventType {
		case EventRestricted:
			shouldSend = provider.NotifyRestricted
		case EventOccurrence:
			shouldSend = provider.NotifyOccurrences
		default:
			shouldSend = true
		}
		if !shouldSend {
			continue
		}

		go func(p models.NotificationProvider) {
			msg := fmt.Sprintf("%s\n\n%s", title, message)
			if err := shoutrrr.Send(p.URL, msg); err != nil {
				logger.WithFields(map[string]interface{}{
					"provider": p.Name,
				}).WithError(err).Error("failed to send notification")
			}
		}(provider)
	}
}

// NotifyRestrictedVisitor alerts providers that a restricted visitor
// showed up at the desk.
func (s *NotificationService) NotifyRestrictedVisitor(visitorName string, severity models.Severity, matchCount int) {
	title := fmt.Sprintf("Restricted visitor at reception (%s)", severity)
	message := fmt.Sprintf("Visitor %q matched %d restriction(s). Step-up authorization required.", visitorName, matchCount)
	s.SendExternal(EventRestricted, title, message)
}
