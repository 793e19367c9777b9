package alerts

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shenikar/armguard_console/internal/alerts/mocks"
	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/notify"
)

type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
	levels []notify.Level
}

func (n *recordingNotifier) Notify(level notify.Level, title, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
	n.levels = append(n.levels, level)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func newTestStore(t *testing.T) (*Store, *mocks.MockBackend, *recordingNotifier) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockBackend(ctrl)
	notifier := &recordingNotifier{}
	return NewStore(api, 200, notifier, testLogger()), api, notifier
}

func rawAlerts() []map[string]any {
	return []map[string]any{
		{"_id": "a1", "title": "Old", "timestamp": "2025-03-01T08:00:00Z", "read": true},
		{"_id": "a2", "title": "Newest", "timestamp": "2025-03-01T10:00:00Z", "severity": "CRITICAL"},
		{"_id": "a3", "title": "Middle", "timestamp": "2025-03-01T10:30:00+01:00"},
	}
}

func ids(st State) []string {
	out := make([]string, 0, len(st.Alerts))
	for _, a := range st.Alerts {
		out = append(out, a.ID)
	}
	return out
}

func loadStore(t *testing.T, store *Store, api *mocks.MockBackend) {
	api.EXPECT().ListAlerts(gomock.Any(), 200).Return(rawAlerts(), nil).Times(1)
	require.NoError(t, store.Refresh(context.Background()))
}

func TestRefresh_SortsAndCounts(t *testing.T) {
	store, api, notifier := newTestStore(t)
	loadStore(t, store, api)

	st := store.State()
	assert.True(t, st.Loaded)
	// 10:30+01:00 = 09:30Z, т.е. раньше 10:00Z
	assert.Equal(t, []string{"a2", "a3", "a1"}, ids(st))
	assert.Equal(t, 2, st.UnreadCount)
	assert.Empty(t, notifier.titles, "first load does not announce")
}

func TestRefresh_FailureKeepsCache(t *testing.T) {
	store, api, _ := newTestStore(t)
	loadStore(t, store, api)

	api.EXPECT().ListAlerts(gomock.Any(), 200).Return(nil, errors.New("timeout")).Times(1)
	require.Error(t, store.Refresh(context.Background()))
	assert.Len(t, store.State().Alerts, 3)
}

func TestRefresh_AnnouncesNewAlerts(t *testing.T) {
	store, api, notifier := newTestStore(t)
	loadStore(t, store, api)

	next := append(rawAlerts(), map[string]any{"_id": "a4", "title": "Pistol", "severity": "high", "timestamp": "2025-03-01T11:00:00Z"})
	api.EXPECT().ListAlerts(gomock.Any(), 200).Return(next, nil).Times(1)
	require.NoError(t, store.Refresh(context.Background()))

	assert.Equal(t, []string{"Pistol"}, notifier.titles)
	assert.Equal(t, []notify.Level{notify.LevelWarning}, notifier.levels)
	assert.Equal(t, 3, store.UnreadCount())
}

func TestRefresh_StaleResponseAfterReset(t *testing.T) {
	store, api, _ := newTestStore(t)

	api.EXPECT().ListAlerts(gomock.Any(), 200).DoAndReturn(func(context.Context, int) ([]map[string]any, error) {
		store.Reset() // выход оператора во время запроса
		return rawAlerts(), nil
	}).Times(1)

	require.NoError(t, store.Refresh(context.Background()))
	st := store.State()
	assert.Empty(t, st.Alerts)
	assert.False(t, st.Loaded)
}

func TestMarkAsRead_Optimistic(t *testing.T) {
	store, api, _ := newTestStore(t)
	loadStore(t, store, api)

	api.EXPECT().MarkAlertRead(gomock.Any(), "a2", true).DoAndReturn(func(context.Context, string, bool) (map[string]any, error) {
		a, err := store.Get("a2")
		require.NoError(t, err)
		assert.True(t, a.Read, "flag flips before the request resolves")
		return map[string]any{}, nil
	}).Times(1)

	require.NoError(t, store.MarkAsRead(context.Background(), "a2"))
	assert.Equal(t, 1, store.UnreadCount())
}

func TestMarkAsRead_FailureReverts(t *testing.T) {
	store, api, _ := newTestStore(t)
	loadStore(t, store, api)

	api.EXPECT().MarkAlertRead(gomock.Any(), "a2", true).Return(nil, errors.New("503")).Times(1)

	err := store.MarkAsRead(context.Background(), "a2")
	require.Error(t, err)
	a, _ := store.Get("a2")
	assert.False(t, a.Read)
	assert.Equal(t, 2, store.UnreadCount())
}

func TestMarkAsRead_FailureKeepsPriorReadFlag(t *testing.T) {
	store, api, _ := newTestStore(t)
	loadStore(t, store, api)

	api.EXPECT().MarkAlertRead(gomock.Any(), "a1", true).Return(nil, errors.New("503")).Times(1)

	require.Error(t, store.MarkAsRead(context.Background(), "a1"))
	a, _ := store.Get("a1")
	assert.True(t, a.Read)
}

func TestMarkAsRead_NotCached(t *testing.T) {
	store, api, _ := newTestStore(t)
	loadStore(t, store, api)

	api.EXPECT().MarkAlertRead(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := store.MarkAsRead(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, store.UnreadCount())
}

func TestMarkAllAsRead_NoUnreadIsNoop(t *testing.T) {
	store, api, _ := newTestStore(t)
	api.EXPECT().ListAlerts(gomock.Any(), 200).Return([]map[string]any{{"_id": "x", "read": true}}, nil)
	require.NoError(t, store.Refresh(context.Background()))

	api.EXPECT().MarkAlertRead(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	require.NoError(t, store.MarkAllAsRead(context.Background()))
}

func TestMarkAllAsRead_OneRequestPerUnread(t *testing.T) {
	store, api, _ := newTestStore(t)
	loadStore(t, store, api)

	api.EXPECT().MarkAlertRead(gomock.Any(), "a2", true).Return(map[string]any{}, nil).Times(1)
	api.EXPECT().MarkAlertRead(gomock.Any(), "a3", true).Return(map[string]any{}, nil).Times(1)

	require.NoError(t, store.MarkAllAsRead(context.Background()))
	assert.Zero(t, store.UnreadCount())
}

func TestMarkAllAsRead_FailureRefreshes(t *testing.T) {
	store, api, _ := newTestStore(t)
	loadStore(t, store, api)

	api.EXPECT().MarkAlertRead(gomock.Any(), "a2", true).Return(map[string]any{}, nil).AnyTimes()
	api.EXPECT().MarkAlertRead(gomock.Any(), "a3", true).Return(nil, errors.New("boom")).Times(1)
	// сервер успел пометить a2
	api.EXPECT().ListAlerts(gomock.Any(), 200).Return([]map[string]any{
		{"_id": "a1", "read": true},
		{"_id": "a2", "read": true},
		{"_id": "a3", "read": false},
	}, nil).Times(1)

	require.Error(t, store.MarkAllAsRead(context.Background()))
	assert.Equal(t, 1, store.UnreadCount())
}

func TestDeleteAlert_Success(t *testing.T) {
	store, api, _ := newTestStore(t)
	loadStore(t, store, api)

	api.EXPECT().DeleteAlert(gomock.Any(), "a3").Return(nil).Times(1)
	require.NoError(t, store.DeleteAlert(context.Background(), "a3"))
	assert.Equal(t, []string{"a2", "a1"}, ids(store.State()))
	_, err := store.Get("a3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAlert_FailureRestoresWholeSnapshot(t *testing.T) {
	store, api, _ := newTestStore(t)
	loadStore(t, store, api)
	before := store.State()

	api.EXPECT().DeleteAlert(gomock.Any(), "a3").DoAndReturn(func(context.Context, string) error {
		// параллельная оптимистичная правка, затираемая откатом
		store.rewrite(store.epoch, func(list []models.Alert) []models.Alert {
			next := cloneAlerts(list)
			next[0].Read = true
			return next
		})
		return errors.New("403")
	}).Times(1)

	require.Error(t, store.DeleteAlert(context.Background(), "a3"))
	assert.Equal(t, before.Alerts, store.State().Alerts)
}

func TestIngest(t *testing.T) {
	store, api, notifier := newTestStore(t)
	loadStore(t, store, api)

	store.Ingest(map[string]any{"id": "ws1", "title": "Knife", "timestamp": "2025-03-02T00:00:00Z"})
	store.Ingest(map[string]any{"id": "ws1", "title": "Knife", "read": true, "timestamp": "2025-03-02T00:00:00Z"})
	store.Ingest(map[string]any{"title": "no id"})

	st := store.State()
	assert.Equal(t, "ws1", st.Alerts[0].ID)
	assert.True(t, st.Alerts[0].Read)
	assert.Len(t, st.Alerts, 4)
	assert.Equal(t, []string{"Knife"}, notifier.titles)
}

func TestIngest_DroppedWhileNotLoaded(t *testing.T) {
	store, api, notifier := newTestStore(t)

	store.Ingest(map[string]any{"_id": "early", "title": "Knife"})
	assert.Empty(t, store.State().Alerts)

	loadStore(t, store, api)
	store.Reset()
	store.Ingest(map[string]any{"_id": "late", "title": "Knife"})

	st := store.State()
	assert.Empty(t, st.Alerts)
	assert.Equal(t, 0, st.UnreadCount)
	assert.Empty(t, notifier.titles)
}

func TestSubscribe_LatestState(t *testing.T) {
	store, api, _ := newTestStore(t)
	ch, cancel := store.Subscribe()
	defer cancel()

	first := <-ch
	assert.False(t, first.Loaded)

	loadStore(t, store, api)
	st := <-ch
	assert.Equal(t, 2, st.UnreadCount)
}
