// Package notify - уведомления консоли (тосты) и их рассылка подписчикам.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/metrics"
)

// Level - уровень уведомления
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notification struct {
	ID          uuid.UUID `json:"id"`
	Level       Level     `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	At          time.Time `json:"at"`
}

// Sink - внешний получатель уведомлений (например, очередь вебхуков)
type Sink interface {
	Publish(ctx context.Context, n Notification) error
}

// Notifier - то, что нужно остальным пакетам для отправки уведомления
type Notifier interface {
	Notify(level Level, title, description string)
}

const subscriberBuffer = 32

// Hub раздает уведомления живым подписчикам и синкам.
// Медленный подписчик теряет уведомления, но не блокирует издателя.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan Notification
	nextID int
	sinks  []Sink
	logger *logrus.Logger
	now    func() time.Time
}

func NewHub(logger *logrus.Logger, sinks ...Sink) *Hub {
	return &Hub{
		subs:   make(map[int]chan Notification),
		sinks:  sinks,
		logger: logger,
		now:    time.Now,
	}
}

// Notify создает и публикует уведомление
func (h *Hub) Notify(level Level, title, description string) {
	h.Publish(context.Background(), Notification{
		ID:          uuid.New(),
		Level:       level,
		Title:       title,
		Description: description,
		At:          h.now(),
	})
}

// Publish рассылает готовое уведомление
func (h *Hub) Publish(ctx context.Context, n Notification) {
	metrics.NotificationsPublished.WithLabelValues(string(n.Level)).Inc()

	h.mu.RLock()
	for _, ch := range h.subs {
		select {
		case ch <- n:
		default:
		}
	}
	sinks := h.sinks
	h.mu.RUnlock()

	for _, s := range sinks {
		if err := s.Publish(ctx, n); err != nil {
			h.logger.WithError(err).WithField("notification", n.Title).Warn("Failed to forward notification to sink")
		}
	}
}

// Subscribe возвращает канал уведомлений и функцию отписки
func (h *Hub) Subscribe() (<-chan Notification, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Notification, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}
