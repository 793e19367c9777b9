// Package session - единственная сессия оператора консоли.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/backend"
	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/normalize"
)

// ErrNotAuthenticated - операция требует активной сессии
var ErrNotAuthenticated = errors.New("not authenticated")

const (
	keyToken   = "token"
	keyUser    = "user"
	keyModules = "allowed_modules"
)

// Authenticator - часть backend, нужная сессии
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*backend.AuthPayload, error)
	Me(ctx context.Context) (*backend.AuthPayload, error)
}

// State - снимок сессии, рассылаемый подписчикам
type State struct {
	Session       models.Session `json:"session"`
	Loading       bool           `json:"loading"`
	Authenticated bool           `json:"authenticated"`
}

// Store хранит токен, пользователя и разрешенные модули.
// Три ключа всегда пишутся и удаляются вместе.
type Store struct {
	auth    Authenticator
	storage Storage
	prefix  string
	logger  *logrus.Logger

	mu      sync.RWMutex
	current models.Session
	loading bool

	// notifyMu упорядочивает доставку состояний подписчикам
	notifyMu sync.Mutex
	subsMu   sync.Mutex
	subs     map[int]func(State)
	nextSub  int
}

func NewStore(auth Authenticator, storage Storage, prefix string, logger *logrus.Logger) *Store {
	return &Store{
		auth:    auth,
		storage: storage,
		prefix:  prefix,
		logger:  logger,
		loading: true,
		subs:    make(map[int]func(State)),
	}
}

// SetAuthenticator нужен из-за взаимной зависимости: клиент берет токен у Store
func (s *Store) SetAuthenticator(auth Authenticator) {
	s.auth = auth
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) keys() []string {
	return []string{s.key(keyToken), s.key(keyUser), s.key(keyModules)}
}

// Token реализует backend.TokenSource
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Current - копия текущей сессии
func (s *Store) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySession(s.current)
}

// State - текущее состояние
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Session:       copySession(s.current),
		Loading:       s.loading,
		Authenticated: s.current.Authenticated(),
	}
}

// Subscribe регистрирует обработчик изменений; fn сразу получает текущее состояние
func (s *Store) Subscribe(fn func(State)) func() {
	s.notifyMu.Lock()
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()
	fn(s.State())
	s.notifyMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *Store) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	st := s.State()
	s.subsMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

// Restore поднимает сессию из хранилища и проверяет ее через /auth/me.
// Любая ошибка проверки очищает сессию.
func (s *Store) Restore(ctx context.Context) error {
	log := s.logger.WithField("method", "Restore")

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	restored := s.load(ctx)
	s.mu.Lock()
	s.current = restored
	s.mu.Unlock()

	var err error
	if restored.Token != "" {
		if err = s.RefreshMe(ctx); err != nil {
			log.WithError(err).Warn("Stored session rejected, cleared")
		}
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.notify()
	return err
}

// load читает три ключа; битый JSON дает пустое значение
func (s *Store) load(ctx context.Context) models.Session {
	log := s.logger.WithField("method", "load")
	var sess models.Session

	token, ok, err := s.storage.Get(ctx, s.key(keyToken))
	if err != nil {
		log.WithError(err).Warn("Failed to read session token")
	}
	if ok {
		sess.Token = token
		sess.ExpiresAt = tokenExpiry(token)
	}

	if raw, ok, err := s.storage.Get(ctx, s.key(keyUser)); err == nil && ok {
		var u models.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			sess.User = &u
		}
	}

	sess.AllowedModules = []string{}
	if raw, ok, err := s.storage.Get(ctx, s.key(keyModules)); err == nil && ok {
		var mods []string
		if err := json.Unmarshal([]byte(raw), &mods); err == nil && mods != nil {
			sess.AllowedModules = mods
		}
	}
	return sess
}

// Login аутентифицирует оператора и сохраняет сессию.
// При ошибке текущая сессия не меняется.
func (s *Store) Login(ctx context.Context, email, password string) error {
	log := s.logger.WithFields(logrus.Fields{"method": "Login", "email": email})
	log.Info("Attempting to log in")

	payload, err := s.auth.Login(ctx, email, password)
	if err != nil {
		log.WithError(err).Warn("Login rejected")
		return err
	}

	user := normalize.User(payload.User)
	sess := models.Session{
		Token:          payload.AccessToken,
		User:           &user,
		AllowedModules: normalize.Modules(payload.AllowedModules),
		ExpiresAt:      tokenExpiry(payload.AccessToken),
	}
	if err := s.persist(ctx, sess, true); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = sess
	s.loading = false
	s.mu.Unlock()
	s.notify()

	log.WithField("role", user.Role).Info("Logged in")
	return nil
}

// RefreshMe перечитывает пользователя и модули.
// Без токена или при любой ошибке сессия очищается, если токен за время запроса не сменился.
func (s *Store) RefreshMe(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		s.clear(ctx)
		return ErrNotAuthenticated
	}

	payload, err := s.auth.Me(ctx)
	if err != nil {
		// новый логин во время запроса не должен теряться из-за старого ответа
		if s.Token() != token {
			return ErrNotAuthenticated
		}
		s.clear(ctx)
		return fmt.Errorf("session: refresh failed: %w", err)
	}

	user := normalize.User(payload.User)
	mods := normalize.Modules(payload.AllowedModules)

	s.mu.Lock()
	// logout или новый логин во время запроса
	if s.current.Token != token {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	sess := models.Session{
		Token:          token,
		User:           &user,
		AllowedModules: mods,
		ExpiresAt:      tokenExpiry(token),
	}
	s.current = sess
	s.mu.Unlock()

	if err := s.persist(ctx, sess, false); err != nil {
		s.logger.WithError(err).Warn("Failed to persist refreshed session")
	}
	s.notify()
	return nil
}

// Logout очищает сессию безусловно
func (s *Store) Logout(ctx context.Context) {
	s.logger.WithField("method", "Logout").Info("Logging out")
	s.clear(ctx)
}

func (s *Store) clear(ctx context.Context) {
	if err := s.storage.Delete(ctx, s.keys()...); err != nil {
		s.logger.WithError(err).Warn("Failed to delete stored session")
	}
	s.mu.Lock()
	s.current = models.Session{AllowedModules: []string{}}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) persist(ctx context.Context, sess models.Session, withToken bool) error {
	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("session: failed to marshal user: %w", err)
	}
	mods, err := json.Marshal(sess.AllowedModules)
	if err != nil {
		return fmt.Errorf("session: failed to marshal modules: %w", err)
	}

	if withToken {
		if err := s.storage.Set(ctx, s.key(keyToken), sess.Token); err != nil {
			return fmt.Errorf("session: %w", err)
		}
	}
	if err := s.storage.Set(ctx, s.key(keyUser), string(user)); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := s.storage.Set(ctx, s.key(keyModules), string(mods)); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return nil
}

// tokenExpiry читает exp без проверки подписи; ключа у консоли нет
func tokenExpiry(token string) *time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time
	return &t
}

func copySession(in models.Session) models.Session {
	out := in
	if in.User != nil {
		u := *in.User
		out.User = &u
	}
	out.AllowedModules = append([]string{}, in.AllowedModules...)
	return out
}
