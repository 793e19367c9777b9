package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/models"
)

// AuditRepository определяет контракт для работы с бд журнала действий
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditEntry) error
	List(ctx context.Context, page, pageSize int) ([]*models.AuditEntry, int, error)
}

// AuditService определяет контракт журнала действий консоли
type AuditService interface {
	Record(ctx context.Context, entry *models.AuditEntry)
	List(ctx context.Context, actor Actor, page, pageSize int) (models.Page[*models.AuditEntry], error)
	Enabled() bool
}

type auditService struct {
	repo   AuditRepository
	logger *logrus.Logger
}

// NewAuditService; repo == nil означает, что журнал выключен (нет DATABASE_URL)
func NewAuditService(repo AuditRepository, logger *logrus.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) Enabled() bool {
	return s.repo != nil
}

// Record пишет запись; ошибка бд только логируется и не ломает действие пользователя
func (s *auditService) Record(ctx context.Context, entry *models.AuditEntry) {
	if s.repo == nil {
		return
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	// действие уже выполнено, запись не должна зависеть от отмены запроса
	if err := s.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "audit",
			"method":  "Record",
			"action":  entry.Action,
			"target":  entry.Target,
		}).WithError(err).Error("Failed to write audit entry")
	}
}

// List возвращает страницу журнала, новые записи первыми
func (s *auditService) List(ctx context.Context, actor Actor, page, pageSize int) (models.Page[*models.AuditEntry], error) {
	if err := requireAdmin(actor); err != nil {
		return models.Page[*models.AuditEntry]{}, err
	}
	if s.repo == nil {
		return models.Page[*models.AuditEntry]{}, ErrAuditDisabled
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	items, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "audit",
			"method":  "List",
		}).WithError(err).Error("Failed to list audit entries")
		return models.Page[*models.AuditEntry]{}, fmt.Errorf("service: could not list audit entries: %w", err)
	}
	if items == nil {
		items = []*models.AuditEntry{}
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return models.Page[*models.AuditEntry]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
