// Package alerts - кеш алертов консоли: опрос backend, оптимистичные изменения,
// счетчик непрочитанных.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/shenikar/armguard_console/internal/metrics"
	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/normalize"
	"github.com/shenikar/armguard_console/internal/notify"
)

// ErrNotFound - алерта нет в кеше
var ErrNotFound = errors.New("alert not found")

// Backend - вызовы backend, которые использует кеш
type Backend interface {
	ListAlerts(ctx context.Context, limit int) ([]map[string]any, error)
	MarkAlertRead(ctx context.Context, id string, read bool) (map[string]any, error)
	DeleteAlert(ctx context.Context, id string) error
}

// State - снимок кеша
type State struct {
	Alerts      []models.Alert `json:"alerts"`
	UnreadCount int            `json:"unread_count"`
	Loaded      bool           `json:"loaded"`
	RefreshedAt time.Time      `json:"refreshed_at"`
}

// Store - кеш алертов. Ответы backend применяются в порядке прихода;
// ответы, пришедшие после Reset, отбрасываются по epoch.
type Store struct {
	api      Backend
	limit    int
	notifier notify.Notifier
	logger   *logrus.Logger
	now      func() time.Time

	mu          sync.Mutex
	alerts      []models.Alert
	loaded      bool
	refreshedAt time.Time
	epoch       uint64

	subsMu  sync.Mutex
	subs    map[int]chan State
	nextSub int
}

func NewStore(api Backend, limit int, notifier notify.Notifier, logger *logrus.Logger) *Store {
	return &Store{
		api:      api,
		limit:    limit,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		alerts:   []models.Alert{},
		subs:     make(map[int]chan State),
	}
}

// State - копия текущего состояния
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	list := make([]models.Alert, len(s.alerts))
	copy(list, s.alerts)
	return State{
		Alerts:      list,
		UnreadCount: unreadCount(list),
		Loaded:      s.loaded,
		RefreshedAt: s.refreshedAt,
	}
}

// UnreadCount - число алертов с read=false
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return unreadCount(s.alerts)
}

// Get ищет алерт по id
func (s *Store) Get(id string) (models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.alerts, id); i >= 0 {
		return s.alerts[i], nil
	}
	return models.Alert{}, ErrNotFound
}

// Subscribe возвращает канал состояний. Медленный читатель получает только последнее.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	ch <- s.State()

	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

func (s *Store) publish() {
	st := s.State()
	metrics.AlertsCached.Set(float64(len(st.Alerts)))
	metrics.AlertsUnread.Set(float64(st.UnreadCount))

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

// Refresh заменяет коллекцию целиком свежей выборкой
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	raw, err := s.api.ListAlerts(ctx, s.limit)
	if err != nil {
		metrics.AlertPolls.WithLabelValues("failure").Inc()
		return fmt.Errorf("alerts: refresh failed: %w", err)
	}
	fresh := normalize.Alerts(raw)

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		metrics.AlertPolls.WithLabelValues("stale").Inc()
		return nil
	}
	var added []models.Alert
	if s.loaded {
		added = newAlerts(s.alerts, fresh)
	}
	s.alerts = fresh
	s.loaded = true
	s.refreshedAt = s.now()
	s.mu.Unlock()

	metrics.AlertPolls.WithLabelValues("success").Inc()
	s.announce(added)
	s.publish()
	return nil
}

// Ingest добавляет алерт из push-канала.
// До первой успешной загрузки и после Reset сообщения отбрасываются.
func (s *Store) Ingest(raw map[string]any) {
	a := normalize.Alert(raw)
	if a.ID == "" {
		return
	}

	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		s.logger.WithField("alert_id", a.ID).Debug("Pushed alert dropped, cache is not loaded")
		return
	}
	var added []models.Alert
	if i := indexOf(s.alerts, a.ID); i >= 0 {
		s.alerts[i] = a
	} else {
		s.alerts = append(s.alerts, a)
		added = []models.Alert{a}
	}
	normalize.SortAlerts(s.alerts)
	s.mu.Unlock()

	s.announce(added)
	s.publish()
}

// Reset очищает кеш; ответы запросов, начатых до Reset, будут отброшены
func (s *Store) Reset() {
	s.mu.Lock()
	s.epoch++
	s.alerts = []models.Alert{}
	s.loaded = false
	s.refreshedAt = time.Time{}
	s.mu.Unlock()
	s.publish()
}

// mutation - оптимистичное изменение: apply локально, remote на backend, revert при ошибке
type mutation struct {
	name   string
	apply  func(list []models.Alert) ([]models.Alert, bool)
	remote func(ctx context.Context) error
	revert func(ctx context.Context, epoch uint64)
}

// optimistic применяет изменение сразу и откатывает его, если backend вернул ошибку
func (s *Store) optimistic(ctx context.Context, m mutation) error {
	s.mu.Lock()
	epoch := s.epoch
	next, changed := m.apply(s.alerts)
	if !changed {
		s.mu.Unlock()
		return nil
	}
	s.alerts = next
	s.mu.Unlock()
	s.publish()

	if err := m.remote(ctx); err != nil {
		metrics.OptimisticRollbacks.WithLabelValues(m.name).Inc()
		s.logger.WithError(err).WithField("operation", m.name).Warn("Optimistic alert mutation reverted")
		m.revert(ctx, epoch)
		return fmt.Errorf("alerts: %s failed: %w", m.name, err)
	}
	return nil
}

// rewrite меняет коллекцию, если с момента epoch не было Reset
func (s *Store) rewrite(epoch uint64, fn func(list []models.Alert) []models.Alert) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.alerts = fn(s.alerts)
	s.mu.Unlock()
	s.publish()
}

// MarkAsRead помечает алерт прочитанным; при ошибке флаг возвращается к прежнему.
// Для алерта, которого нет в кеше, запрос не отправляется и возвращается ErrNotFound.
func (s *Store) MarkAsRead(ctx context.Context, id string) error {
	prior, found := false, false
	err := s.optimistic(ctx, mutation{
		name: "mark_read",
		apply: func(list []models.Alert) ([]models.Alert, bool) {
			i := indexOf(list, id)
			if i < 0 {
				return list, false
			}
			found = true
			next := cloneAlerts(list)
			prior = next[i].Read
			next[i].Read = true
			return next, true
		},
		remote: func(ctx context.Context) error {
			_, err := s.api.MarkAlertRead(ctx, id, true)
			return err
		},
		revert: func(_ context.Context, epoch uint64) {
			s.rewrite(epoch, func(list []models.Alert) []models.Alert {
				next := cloneAlerts(list)
				if i := indexOf(next, id); i >= 0 {
					next[i].Read = prior
				}
				return next
			})
		},
	})
	if err == nil && !found {
		return ErrNotFound
	}
	return err
}

// MarkAllAsRead помечает все непрочитанные; при любой ошибке кеш перечитывается целиком
func (s *Store) MarkAllAsRead(ctx context.Context) error {
	var unread []string
	return s.optimistic(ctx, mutation{
		name: "mark_all_read",
		apply: func(list []models.Alert) ([]models.Alert, bool) {
			next := cloneAlerts(list)
			for i := range next {
				if !next[i].Read {
					unread = append(unread, next[i].ID)
					next[i].Read = true
				}
			}
			return next, len(unread) > 0
		},
		remote: func(ctx context.Context) error {
			g, gctx := errgroup.WithContext(ctx)
			for _, id := range unread {
				g.Go(func() error {
					_, err := s.api.MarkAlertRead(gctx, id, true)
					return err
				})
			}
			return g.Wait()
		},
		revert: func(ctx context.Context, epoch uint64) {
			if err := s.Refresh(ctx); err != nil {
				s.logger.WithError(err).Warn("Refresh after failed mark-all-read also failed")
			}
		},
	})
}

// DeleteAlert удаляет алерт; при ошибке восстанавливается весь список,
// каким он был до начала операции
func (s *Store) DeleteAlert(ctx context.Context, id string) error {
	var snapshot []models.Alert
	return s.optimistic(ctx, mutation{
		name: "delete",
		apply: func(list []models.Alert) ([]models.Alert, bool) {
			snapshot = cloneAlerts(list)
			next := make([]models.Alert, 0, len(list))
			for _, a := range list {
				if a.ID != id {
					next = append(next, a)
				}
			}
			return next, true
		},
		remote: func(ctx context.Context) error {
			return s.api.DeleteAlert(ctx, id)
		},
		revert: func(_ context.Context, epoch uint64) {
			s.rewrite(epoch, func([]models.Alert) []models.Alert { return snapshot })
		},
	})
}

// announce сообщает о новых непрочитанных алертах
func (s *Store) announce(added []models.Alert) {
	if s.notifier == nil {
		return
	}
	for _, a := range added {
		if a.Read {
			continue
		}
		level := notify.LevelInfo
		if a.Severity == models.SeverityCritical || a.Severity == models.SeverityHigh {
			level = notify.LevelWarning
		}
		s.notifier.Notify(level, a.Title, a.Message)
	}
}

func newAlerts(prev, fresh []models.Alert) []models.Alert {
	known := make(map[string]struct{}, len(prev))
	for _, a := range prev {
		known[a.ID] = struct{}{}
	}
	var out []models.Alert
	for _, a := range fresh {
		if _, ok := known[a.ID]; !ok {
			out = append(out, a)
		}
	}
	return out
}

func unreadCount(list []models.Alert) int {
	n := 0
	for _, a := range list {
		if !a.Read {
			n++
		}
	}
	return n
}

func indexOf(list []models.Alert, id string) int {
	for i, a := range list {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func cloneAlerts(list []models.Alert) []models.Alert {
	out := make([]models.Alert, len(list))
	copy(out, list)
	return out
}
