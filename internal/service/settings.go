package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/notify"
)

// DefaultSettings - значения кнопки "сбросить"
var DefaultSettings = models.Settings{
	ConfidenceThreshold: 0.75,
	AutoAlert:           true,
	EmailNotifications:  true,
	SoundAlerts:         false,
	SaveEvidence:        true,
	MaxFPS:              30,
	InferEveryNFrames:   5,
}

// SettingsService определяет контракт настроек детекции
type SettingsService interface {
	Get(ctx context.Context, actor Actor) (*models.Settings, error)
	Update(ctx context.Context, actor Actor, patch models.SettingsPatch) (*models.Settings, error)
	Reset(ctx context.Context, actor Actor) (*models.Settings, error)
}

type settingsService struct {
	api Backend
	reporter
}

func NewSettingsService(api Backend, audit AuditService, notifier notify.Notifier, logger *logrus.Logger) SettingsService {
	return &settingsService{
		api:      api,
		reporter: reporter{audit: audit, notifier: notifier, logger: logger},
	}
}

func validateSettings(p models.SettingsPatch) error {
	if p.ConfidenceThreshold != nil && (*p.ConfidenceThreshold < 0.5 || *p.ConfidenceThreshold > 1) {
		return invalid("confidence_threshold must be between 0.5 and 1")
	}
	if p.MaxFPS != nil && (*p.MaxFPS < 10 || *p.MaxFPS > 60) {
		return invalid("max_fps must be between 10 and 60")
	}
	if p.InferEveryNFrames != nil && (*p.InferEveryNFrames < 1 || *p.InferEveryNFrames > 30) {
		return invalid("infer_every_n_frames must be between 1 and 30")
	}
	return nil
}

func (s *settingsService) Get(ctx context.Context, actor Actor) (*models.Settings, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	settings, err := s.api.GetSettings(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "settings",
			"method":  "Get",
		}).WithError(err).Error("Failed to get settings")
		s.notify(notify.LevelError, "Could not load settings", "")
		return nil, fmt.Errorf("service: could not get settings: %w", err)
	}
	return settings, nil
}

// Update отправляет только заданные поля
func (s *settingsService) Update(ctx context.Context, actor Actor, patch models.SettingsPatch) (*models.Settings, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateSettings(patch); err != nil {
		return nil, err
	}

	settings, err := s.api.UpdateSettings(ctx, patch)
	s.outcome(ctx, actor, "settings.update", "settings", err, "Settings saved", "Could not save settings")
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "settings",
			"method":  "Update",
		}).WithError(err).Error("Failed to update settings")
		return nil, fmt.Errorf("service: could not update settings: %w", err)
	}
	return settings, nil
}

// Reset сохраняет значения по умолчанию
func (s *settingsService) Reset(ctx context.Context, actor Actor) (*models.Settings, error) {
	d := DefaultSettings
	return s.Update(ctx, actor, models.SettingsPatch{
		ConfidenceThreshold: &d.ConfidenceThreshold,
		AutoAlert:           &d.AutoAlert,
		EmailNotifications:  &d.EmailNotifications,
		SoundAlerts:         &d.SoundAlerts,
		SaveEvidence:        &d.SaveEvidence,
		MaxFPS:              &d.MaxFPS,
		InferEveryNFrames:   &d.InferEveryNFrames,
	})
}
