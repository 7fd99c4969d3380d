package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/models"
)

// SettingsService reads and writes runtime settings. Values are read
// from the database on every call so flags like the auto-occurrence
// switch are hot-reloadable.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// Get returns a setting value, or fallback when the key is absent.
func (s *SettingsService) Get(key, fallback string) string {
	var setting models.Setting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return fallback
	}
	return setting.Value
}

// GetBool interprets a setting as a boolean.
func (s *SettingsService) GetBool(key string, fallback bool) bool {
	val := s.Get(key, "")
	switch val {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return fallback
	}
}

// Set upserts a setting.
func (s *SettingsService) Set(setting *models.Setting) error {
	var existing models.Setting
	err := s.db.Where("key = ?", setting.Key).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.db.Create(setting).Error
		}
		return err
	}
	existing.Value = setting.Value
	if setting.Category != "" {
		existing.Category = setting.Category
	}
	if setting.Type != "" {
		existing.Type = setting.Type
	}
	*setting = existing
	return s.db.Save(&existing).Error
}

// All returns every setting.
func (s *SettingsService) All() ([]models.Setting, error) {
	var out []models.Setting
	if err := s.db.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// AutoOccurrenceEnabled reports whether automatic occurrence
// generation for predictive matches is on. Satisfies
// screening.AutoOccurrenceConfig.
func (s *SettingsService) AutoOccurrenceEnabled() bool {
	return s.GetBool(models.SettingAutoOccurrence, false)
}
