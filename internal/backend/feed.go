package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	feedMinDelay    = time.Second
	feedMaxDelay    = 32 * time.Second
	feedReadTimeout = 90 * time.Second
)

// AlertFeed - клиент push-канала ${WS_BASE}/ws/alerts.
// Каждое JSON-сообщение передается в обработчик; соединение переустанавливается
// с экспоненциальной задержкой до отмены контекста.
type AlertFeed struct {
	url    string
	dialer *websocket.Dialer
	logger *logrus.Logger

	minDelay time.Duration
	maxDelay time.Duration
}

func NewAlertFeed(wsBase string, logger *logrus.Logger) *AlertFeed {
	return &AlertFeed{
		url: wsBase + "/ws/alerts",
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		logger:   logger,
		minDelay: feedMinDelay,
		maxDelay: feedMaxDelay,
	}
}

// URL - адрес канала
func (f *AlertFeed) URL() string {
	return f.url
}

// Run блокируется до отмены ctx
func (f *AlertFeed) Run(ctx context.Context, onMessage func(map[string]any)) {
	log := f.logger.WithField("feed", f.url)
	delay := f.minDelay

	for {
		err := f.session(ctx, onMessage, func() { delay = f.minDelay })
		if ctx.Err() != nil {
			log.Info("Alert feed stopped")
			return
		}
		log.WithError(err).WithField("retry_in", delay.String()).Warn("Alert feed disconnected")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > f.maxDelay {
			delay = f.maxDelay
		}
	}
}

// session держит одно соединение до первой ошибки чтения
func (f *AlertFeed) session(ctx context.Context, onMessage func(map[string]any), connected func()) error {
	conn, resp, err := f.dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("websocket dial failed (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("websocket dial failed: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()
	connected()
	f.logger.WithField("feed", f.url).Info("Alert feed connected")

	// ReadMessage не реагирует на ctx, поэтому закрываем соединение сами
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			conn.Close()
		case <-done:
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(feedReadTimeout)); err != nil {
			return err
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			f.logger.WithError(err).Warn("Skipping malformed alert feed message")
			continue
		}
		onMessage(msg)
	}
}
