package service

import (
	"bytes"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"go.uber.org/mock/gomock"

	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/notify"
	"github.com/shenikar/armguard_console/internal/service/mocks"
)

var (
	adminActor    = Actor{ID: "aaaaaaaaaaaaaaaaaaaaaaaa", Email: "admin@x.io", Role: models.RoleAdmin}
	operatorActor = Actor{ID: "bbbbbbbbbbbbbbbbbbbbbbbb", Email: "op@x.io", Role: models.RoleOperator}
)

type recordedNotification struct {
	level       notify.Level
	title       string
	description string
}

type recordingNotifier struct {
	mu    sync.Mutex
	items []recordedNotification
}

func (n *recordingNotifier) Notify(level notify.Level, title, description string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, recordedNotification{level, title, description})
}

func (n *recordingNotifier) last() recordedNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.items) == 0 {
		return recordedNotification{}
	}
	return n.items[len(n.items)-1]
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

// testDeps - моки и общие зависимости сервисов
type testDeps struct {
	api      *mocks.MockBackend
	repo     *mocks.MockAuditRepository
	audit    AuditService
	notifier *recordingNotifier
	logger   *logrus.Logger
}

func newTestDeps(t *testing.T) *testDeps {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAuditRepository(ctrl)
	logger := testLogger()
	return &testDeps{
		api:      mocks.NewMockBackend(ctrl),
		repo:     repo,
		audit:    NewAuditService(repo, logger),
		notifier: &recordingNotifier{},
		logger:   logger,
	}
}

// expectAudit ожидает одну запись журнала с заданным действием и исходом
func (d *testDeps) expectAudit(action, outcome string) {
	d.repo.EXPECT().
		Create(gomock.Any(), gomock.Cond(func(e *models.AuditEntry) bool {
			return e.Action == action && e.Outcome == outcome
		})).
		Return(nil).
		Times(1)
}
