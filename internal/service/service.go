package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/access"
	"github.com/shenikar/armguard_console/internal/backend"
	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/notify"
)

var (
	ErrForbidden       = errors.New("admin role required")
	ErrSelfAction      = errors.New("action not allowed on own account")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidID       = errors.New("invalid id")
	ErrNotFound        = errors.New("not found")
	ErrArchiveDisabled = errors.New("evidence archive is disabled")
	ErrAuditDisabled   = errors.New("audit trail is disabled")
)

// Backend определяет контракт внешнего API детекции, нужный экранам консоли
type Backend interface {
	ListAlerts(ctx context.Context, limit int) ([]map[string]any, error)
	ListIncidents(ctx context.Context, limit int) ([]map[string]any, error)
	DeleteIncident(ctx context.Context, id string) error

	ListCameras(ctx context.Context) ([]map[string]any, error)
	CreateCamera(ctx context.Context, in models.CameraInput) (map[string]any, error)
	UpdateCamera(ctx context.Context, id string, patch map[string]any) (map[string]any, error)
	DeleteCamera(ctx context.Context, id string) error
	StartCamera(ctx context.Context, id string) error
	StopCamera(ctx context.Context, id string) error

	ListUsers(ctx context.Context, limit int) ([]map[string]any, error)
	CreateUser(ctx context.Context, in models.UserInput) (map[string]any, error)
	UpdateUser(ctx context.Context, id string, patch map[string]any) (map[string]any, error)
	SetUserRole(ctx context.Context, id string, role models.Role) error
	SetUserEstado(ctx context.Context, id string, active bool) error
	DeleteUser(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error)

	FetchEvidence(ctx context.Context, evidenceURL string) ([]byte, string, error)
	PublicBase() string
	StreamURL(cameraID, token string, cacheBust int64) string
}

// Actor - кто выполняет действие; берется из текущей сессии
type Actor struct {
	ID    string
	Email string
	Role  models.Role
}

// ActorFromSession собирает Actor из сессии; без пользователя роль operator
func ActorFromSession(s *models.Session) Actor {
	if s == nil || s.User == nil {
		return Actor{Role: models.RoleOperator}
	}
	return Actor{ID: s.User.ID, Email: s.User.Email, Role: s.User.Role}
}

func (a Actor) label() string {
	if a.Email != "" {
		return a.Email
	}
	return a.ID
}

func requireAdmin(a Actor) error {
	if !access.IsAdmin(a.Role) {
		return ErrForbidden
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// reporter - общий хвост мутаций: тост, запись аудита, лог
type reporter struct {
	audit    AuditService
	notifier notify.Notifier
	logger   *logrus.Logger
}

func (r reporter) notify(level notify.Level, title, description string) {
	if r.notifier != nil {
		r.notifier.Notify(level, title, description)
	}
}

// outcome фиксирует результат действия. err == nil - успех.
func (r reporter) outcome(ctx context.Context, actor Actor, action, target string, err error, successTitle, failureTitle string) {
	entry := &models.AuditEntry{
		Actor:   actor.label(),
		Action:  action,
		Target:  target,
		Outcome: models.AuditOutcomeSuccess,
	}
	if err != nil {
		entry.Outcome = models.AuditOutcomeFailure
		entry.Detail = backend.ErrorText(err)
		r.notify(notify.LevelError, failureTitle, entry.Detail)
	} else if successTitle != "" {
		r.notify(notify.LevelSuccess, successTitle, target)
	}
	if r.audit != nil {
		r.audit.Record(ctx, entry)
	}
}
