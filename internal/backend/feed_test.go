package backend

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestFeed(wsBase string) *AlertFeed {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	feed := NewAlertFeed(wsBase, logger)
	feed.minDelay = 10 * time.Millisecond
	feed.maxDelay = 50 * time.Millisecond
	return feed
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// runFeed запускает Run в горутине; канал stopped закрывается, когда Run вернулся
func runFeed(ctx context.Context, feed *AlertFeed) (<-chan map[string]any, <-chan struct{}) {
	received := make(chan map[string]any, 8)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		feed.Run(ctx, func(msg map[string]any) { received <- msg })
	}()
	return received, stopped
}

func waitStopped(t *testing.T, stopped <-chan struct{}) {
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestAlertFeed_DeliversSkipsMalformedAndReconnects(t *testing.T) {
	var conns int32
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/alerts", r.URL.Path)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		switch atomic.AddInt32(&conns, 1) {
		case 1:
			// после трех кадров сервер рвет соединение
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"_id":"m1","title":"Knife"}`))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"_id":"m2"}`))
		default:
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"_id":"m3"}`))
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}
	}))
	defer srv.Close()

	feed := newTestFeed(wsURL(srv))
	assert.Equal(t, wsURL(srv)+"/ws/alerts", feed.URL())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	received, stopped := runFeed(ctx, feed)

	next := func() string {
		select {
		case msg := <-received:
			id, _ := msg["_id"].(string)
			return id
		case <-time.After(2 * time.Second):
			t.Fatal("message not delivered")
			return ""
		}
	}
	assert.Equal(t, "m1", next())
	assert.Equal(t, "m2", next(), "malformed frame is skipped")
	assert.Equal(t, "m3", next(), "delivered after reconnect")
	assert.GreaterOrEqual(t, atomic.LoadInt32(&conns), int32(2))

	cancel()
	waitStopped(t, stopped)
}

func TestAlertFeed_StopsWhileReconnecting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no upgrade", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	feed := newTestFeed(wsURL(srv))
	feed.minDelay = time.Minute
	feed.maxDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	received, stopped := runFeed(ctx, feed)

	time.Sleep(50 * time.Millisecond)
	cancel()
	waitStopped(t, stopped)
	assert.Empty(t, received)
}
