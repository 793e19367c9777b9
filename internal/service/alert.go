package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/notify"
)

// AlertCache определяет изменяющую часть кеша алертов
type AlertCache interface {
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) error
	DeleteAlert(ctx context.Context, id string) error
}

// AlertService определяет контракт действий оператора над алертами
type AlertService interface {
	MarkAsRead(ctx context.Context, actor Actor, id string) error
	MarkAllAsRead(ctx context.Context, actor Actor) error
	DeleteAlert(ctx context.Context, actor Actor, id string) error
}

type alertService struct {
	cache AlertCache
	reporter
}

func NewAlertService(cache AlertCache, audit AuditService, notifier notify.Notifier, logger *logrus.Logger) AlertService {
	return &alertService{
		cache:    cache,
		reporter: reporter{audit: audit, notifier: notifier, logger: logger},
	}
}

// MarkAsRead помечает алерт прочитанным
func (s *alertService) MarkAsRead(ctx context.Context, actor Actor, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	err := s.cache.MarkAsRead(ctx, id)
	s.outcome(ctx, actor, "alert.read", id, err, "", "Could not mark alert as read")
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":  "alert",
			"method":   "MarkAsRead",
			"alert_id": id,
		}).WithError(err).Warn("Failed to mark alert as read")
		return fmt.Errorf("service: could not mark alert as read: %w", err)
	}
	return nil
}

// MarkAllAsRead помечает прочитанными все алерты в кеше
func (s *alertService) MarkAllAsRead(ctx context.Context, actor Actor) error {
	err := s.cache.MarkAllAsRead(ctx)
	s.outcome(ctx, actor, "alert.read_all", "", err, "", "Could not mark alerts as read")
	if err != nil {
		s.logger.WithField("service", "alert").WithField("method", "MarkAllAsRead").
			WithError(err).Warn("Failed to mark all alerts as read")
		return fmt.Errorf("service: could not mark alerts as read: %w", err)
	}
	return nil
}

// DeleteAlert удаляет алерт (только admin)
func (s *alertService) DeleteAlert(ctx context.Context, actor Actor, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "DeleteAlert",
		"alert_id": id,
	})
	if err := requireAdmin(actor); err != nil {
		s.notify(notify.LevelError, "You are not allowed to delete alerts", "")
		return err
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	log.Info("Attempting to delete alert")

	err := s.cache.DeleteAlert(ctx, id)
	s.outcome(ctx, actor, "alert.delete", id, err, "Alert deleted", "Could not delete alert")
	if err != nil {
		log.WithError(err).Error("Failed to delete alert")
		return fmt.Errorf("service: could not delete alert: %w", err)
	}
	log.Info("Alert deleted successfully")
	return nil
}
