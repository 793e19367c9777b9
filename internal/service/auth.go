package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/notify"
)

// SessionControl - вход и выход в хранилище сессии
type SessionControl interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context)
}

// AuthService определяет контракт входа и выхода оператора с записью в журнал
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context, actor Actor)
}

type authService struct {
	session SessionControl
	reporter
}

func NewAuthService(session SessionControl, audit AuditService, notifier notify.Notifier, logger *logrus.Logger) AuthService {
	return &authService{
		session:  session,
		reporter: reporter{audit: audit, notifier: notifier, logger: logger},
	}
}

// Login; в журнал пишется введенный email, пароль никуда не попадает
func (s *authService) Login(ctx context.Context, email, password string) error {
	err := s.session.Login(ctx, email, password)
	login := strings.TrimSpace(email)
	s.outcome(ctx, Actor{Email: login}, "session.login", login, err, "", "Login failed")
	if err != nil {
		s.logger.WithField("service", "auth").WithField("email", login).
			WithError(err).Warn("Login rejected")
		return fmt.Errorf("service: login failed: %w", err)
	}
	return nil
}

// Logout завершает сессию; actor берется из сессии до выхода.
// Выход без сессии в журнал не пишется.
func (s *authService) Logout(ctx context.Context, actor Actor) {
	s.session.Logout(ctx)
	if actor.label() == "" {
		return
	}
	s.outcome(ctx, actor, "session.logout", actor.label(), nil, "", "")
}
