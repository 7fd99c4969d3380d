package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/logger"
	"github.com/openreception/porteiro/internal/models"
)

// SweeperService periodically deactivates restrictions whose
// expiration passed. The resolver already filters expired records on
// every read; the sweep only keeps list views and the active flags in
// the admin UI consistent with what screening enforces.
type SweeperService struct {
	db   *gorm.DB
	cron *cron.Cron
}

func NewSweeperService(db *gorm.DB) *SweeperService {
	return &SweeperService{db: db}
}

// Start schedules the sweep with a cron expression (e.g. "@every 5m").
func (s *SweeperService) Start(schedule string) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(schedule, func() {
		swept, err := s.Sweep(time.Now())
		if err != nil {
			logger.Log().WithError(err).Error("restriction expiry sweep failed")
			return
		}
		if swept > 0 {
			logger.WithFields(map[string]interface{}{"swept": swept}).Info("deactivated expired restrictions")
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the schedule.
func (s *SweeperService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep deactivates every active restriction expired as of now and
// returns how many rows changed across the three stores.
func (s *SweeperService) Sweep(now time.Time) (int64, error) {
	var total int64
	for _, model := range []interface{}{
		&models.CommonRestriction{},
		&models.PartialRestriction{},
		&models.PredictiveRestriction{},
	} {
		result := s.db.Model(model).
			Where("active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
			Update("active", false)
		if result.Error != nil {
			return total, result.Error
		}
		total += result.RowsAffected
	}
	return total, nil
}
