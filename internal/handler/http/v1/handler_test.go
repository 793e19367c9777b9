package v1

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shenikar/armguard_console/internal/access"
	"github.com/shenikar/armguard_console/internal/alerts"
	alertmocks "github.com/shenikar/armguard_console/internal/alerts/mocks"
	"github.com/shenikar/armguard_console/internal/backend"
	"github.com/shenikar/armguard_console/internal/config"
	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/notify"
	"github.com/shenikar/armguard_console/internal/service"
	"github.com/shenikar/armguard_console/internal/service/mocks"
	"github.com/shenikar/armguard_console/internal/session"
	sessionmocks "github.com/shenikar/armguard_console/internal/session/mocks"
)

const (
	adminID    = "aaaaaaaaaaaaaaaaaaaaaaaa"
	testAPIKey = "test-api-key"
)

// testEnv - настоящие хранилища консоли поверх мокированного backend
type testEnv struct {
	auth      *sessionmocks.MockAuthenticator
	alertsAPI *alertmocks.MockBackend
	api       *mocks.MockBackend
	session   *session.Store
	alerts    *alerts.Store
	hub       *notify.Hub
}

// newTestHandler создает Handler с реальными сервисами и мокированным backend
func newTestHandler(t *testing.T) (*Handler, *testEnv, *gin.Engine) {
	return buildTestHandler(t, nil)
}

// newAuditedTestHandler - то же, но журнал аудита пишет в мок репозитория
func newAuditedTestHandler(t *testing.T) (*testEnv, *mocks.MockAuditRepository, *gin.Engine) {
	repo := mocks.NewMockAuditRepository(gomock.NewController(t))
	_, env, router := buildTestHandler(t, repo)
	return env, repo, router
}

func buildTestHandler(t *testing.T, repo service.AuditRepository) (*Handler, *testEnv, *gin.Engine) {
	ctrl := gomock.NewController(t)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	env := &testEnv{
		auth:      sessionmocks.NewMockAuthenticator(ctrl),
		alertsAPI: alertmocks.NewMockBackend(ctrl),
		api:       mocks.NewMockBackend(ctrl),
		hub:       notify.NewHub(logger),
	}
	env.session = session.NewStore(env.auth, session.NewMemoryStorage(), "test:", logger)
	env.alerts = alerts.NewStore(env.alertsAPI, 200, env.hub, logger)

	audit := service.NewAuditService(repo, logger)
	cfg := &config.Config{
		APIBase: "http://backend.test/api/v1",
		APIKeys: []string{testAPIKey},
	}

	handler := NewHandler(Deps{
		Session:   env.session,
		Alerts:    env.alerts,
		Navigator: access.NewNavigator(nil),
		Hub:       env.hub,

		Auth:         service.NewAuthService(env.session, audit, env.hub, logger),
		AlertActions: service.NewAlertService(env.alerts, audit, env.hub, logger),
		Dashboard:    service.NewDashboardService(env.api, logger),
		Cameras:      service.NewCameraService(env.api, audit, env.hub, logger),
		Incidents:    service.NewIncidentService(env.api, audit, env.hub, logger),
		Evidence:     service.NewEvidenceService(env.api, nil, audit, env.hub, logger),
		Users:        service.NewUserService(env.api, audit, env.hub, logger),
		Settings:     service.NewSettingsService(env.api, audit, env.hub, logger),
		Audit:        audit,
	}, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, env, router
}

// loginAs открывает сессию с заданной ролью
func (e *testEnv) loginAs(t *testing.T, role models.Role) {
	e.auth.EXPECT().Login(gomock.Any(), "user@x.io", "pw").Return(&backend.AuthPayload{
		AccessToken: "tok-" + string(role),
		TokenType:   "bearer",
		User:        map[string]any{"_id": adminID, "email": "user@x.io", "name": "User", "role": string(role)},
	}, nil).Times(1)
	require.NoError(t, e.session.Login(context.Background(), "user@x.io", "pw"))
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов.
// По умолчанию запрос несет testAPIKey; пустое значение в headers удаляет заголовок.
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-API-Key", testAPIKey)
	for _, h := range headers {
		for k, v := range h {
			if v == "" {
				req.Header.Del(k)
				continue
			}
			req.Header.Set(k, v)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// nextNotification ждет уведомление хаба
func nextNotification(t *testing.T, ch <-chan notify.Notification) notify.Notification {
	select {
	case n := <-ch:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered")
		return notify.Notification{}
	}
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Authenticated)
	assert.False(t, resp.Audit)
	assert.False(t, resp.Archive)
	assert.Equal(t, "http://backend.test/api/v1", resp.Backend)
}

func TestGetSession_Anonymous(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/session", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)
	assert.Empty(t, resp.Modules)
	assert.NotNil(t, resp.AllowedModules)
}

func TestLogin_Success(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.auth.EXPECT().Login(gomock.Any(), "admin@x.io", "secret").Return(&backend.AuthPayload{
		AccessToken:    "tok",
		User:           map[string]any{"_id": adminID, "email": "admin@x.io", "role": "admin"},
		AllowedModules: []any{"dashboard", "users"},
	}, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/auth/login", jsonBody(t, LoginRequest{Email: "admin@x.io", Password: "secret"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "tok")
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
	require.NotNil(t, resp.User)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	assert.Len(t, resp.Modules, 7)
}

func TestLogin_InvalidJSON(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/auth/login", bytes.NewBufferString(`{"email": "x"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestLogin_ValidationError(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/auth/login", jsonBody(t, LoginRequest{Email: "admin@x.io"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Password' failed on the 'required' tag")
}

func TestLogin_RejectedByBackend(t *testing.T) {
	_, env, router := newTestHandler(t)
	notes, cancel := env.hub.Subscribe()
	defer cancel()

	env.auth.EXPECT().Login(gomock.Any(), "admin@x.io", "bad").
		Return(nil, &backend.APIError{StatusCode: http.StatusUnauthorized, Detail: "Invalid credentials"}).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/auth/login", jsonBody(t, LoginRequest{Email: "admin@x.io", Password: "bad"}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	n := nextNotification(t, notes)
	assert.Equal(t, notify.LevelError, n.Level)
	assert.Equal(t, "Login failed", n.Title)
	assert.False(t, env.session.State().Authenticated)
}

func TestMe_FailureClearsSession(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleAdmin)
	env.auth.EXPECT().Me(gomock.Any()).
		Return(nil, &backend.APIError{StatusCode: http.StatusUnauthorized}).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/auth/me", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.session.State().Authenticated)
}

func TestLogout(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	w := makeRequest(router, "POST", "/api/v1/auth/logout", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, env.session.Token())
}

func TestAPIKey_Missing(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleAdmin)

	w := makeRequest(router, "GET", "/api/v1/cameras/c1/stream", nil, map[string]string{"X-API-Key": ""})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
	assert.NotContains(t, w.Body.String(), "tok-admin")
}

func TestAPIKey_Invalid(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/auth/login",
		jsonBody(t, LoginRequest{Email: "admin@x.io", Password: "secret"}),
		map[string]string{"X-API-Key": "wrong-key"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
	assert.False(t, env.session.State().Authenticated)
}

func TestAPIKey_Bearer(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/session", nil, map[string]string{
		"X-API-Key":     "",
		"Authorization": "Bearer " + testAPIKey,
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck_WithoutAPIKey(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil, map[string]string{"X-API-Key": ""})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoute_WithoutSession(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/cameras", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "not authenticated")
}

func TestListModules_Operator(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	w := makeRequest(router, "GET", "/api/v1/modules", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ModulesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, access.ModuleDashboard, resp.Active)
	for _, m := range resp.Modules {
		assert.NotEqual(t, access.ModuleUsers, m.ID)
		assert.NotEqual(t, access.ModuleSettings, m.ID)
	}
}

func TestActivateModule_OperatorRedirected(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	w := makeRequest(router, "PUT", "/api/v1/modules/active", jsonBody(t, ActivateModuleRequest{Module: access.ModuleSettings}))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ActivateModuleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Denied)
	assert.Equal(t, access.ModuleDashboard, resp.Active)
}

func TestUsersModule_OperatorDenied(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)
	notes, cancel := env.hub.Subscribe()
	defer cancel()

	env.api.EXPECT().ListUsers(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/users", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	n := nextNotification(t, notes)
	assert.Equal(t, notify.LevelWarning, n.Level)
	assert.Equal(t, "Access denied", n.Title)
}

func TestListCameras_Success(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	env.api.EXPECT().ListCameras(gomock.Any()).Return([]map[string]any{
		{"_id": "c1", "name": "Gate", "rtsp_url": "rtsp://a", "status": "RUNNING"},
		{"_id": "c2", "name": "Hall", "rtsp_url": "rtsp://b", "enabled": false},
	}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/cameras?page=1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp service.CameraList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Running)
	assert.Equal(t, 1, resp.Stopped)
	assert.Equal(t, 2, resp.Page.Total)
	assert.Equal(t, "Gate", resp.Page.Items[0].Name)
}

func TestListCameras_BackendDown(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	env.api.EXPECT().ListCameras(gomock.Any()).
		Return(nil, &backend.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/cameras", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "boom")
}

func TestCreateCamera_Success(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleAdmin)

	env.api.EXPECT().CreateCamera(gomock.Any(), models.CameraInput{
		Name: "Gate", RTSPURL: "rtsp://a", Enabled: true, FPSTarget: 30, InferEveryNFrames: 5,
	}).Return(map[string]any{"_id": "c1", "name": "Gate", "rtsp_url": "rtsp://a"}, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/cameras", jsonBody(t, CameraRequest{Name: "Gate", RTSPURL: "rtsp://a"}))

	assert.Equal(t, http.StatusCreated, w.Code)
	var cam models.Camera
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cam))
	assert.Equal(t, "c1", cam.ID)
}

func TestCreateCamera_OperatorForbidden(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	env.api.EXPECT().CreateCamera(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/cameras", jsonBody(t, CameraRequest{Name: "Gate", RTSPURL: "rtsp://a"}))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateCamera_ValidationError(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleAdmin)

	env.api.EXPECT().CreateCamera(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/cameras", jsonBody(t, CameraRequest{RTSPURL: "rtsp://a"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Name' failed on the 'required' tag")
}

func TestCameraStream_UsesSessionToken(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	env.api.EXPECT().StreamURL("c1", "tok-operator", gomock.Any()).Return("http://backend.test/stream/c1?token=tok-operator").Times(1)

	w := makeRequest(router, "GET", "/api/v1/cameras/c1/stream", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token=tok-operator")
}

func TestDeleteUser_Self(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleAdmin)

	env.api.EXPECT().DeleteUser(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "DELETE", "/api/v1/users/"+adminID, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "own user")
}

func TestDeleteUser_InvalidID(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleAdmin)

	env.api.EXPECT().DeleteUser(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "DELETE", "/api/v1/users/not-an-object-id", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetUserEstado_MissingFlag(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleAdmin)

	w := makeRequest(router, "PATCH", "/api/v1/users/bbbbbbbbbbbbbbbbbbbbbbbb/estado", bytes.NewBufferString(`{}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'Active' failed on the 'required' tag")
}

func TestUpdateSettings_OutOfRange(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleAdmin)

	env.api.EXPECT().UpdateSettings(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "PATCH", "/api/v1/settings", bytes.NewBufferString(`{"max_fps": 5}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MaxFPS")
}

func TestListAlerts_UnreadTab(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	env.alertsAPI.EXPECT().ListAlerts(gomock.Any(), 200).Return([]map[string]any{
		{"_id": "a1", "severity": "critical", "read": false, "timestamp": "2025-03-01T10:00:00Z"},
		{"_id": "a2", "severity": "low", "read": true, "timestamp": "2025-03-01T09:00:00Z"},
	}, nil).Times(1)
	require.NoError(t, env.alerts.Refresh(context.Background()))

	w := makeRequest(router, "GET", "/api/v1/alerts?tab=unread", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp service.AlertView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, service.AlertTabUnread, resp.Tab)
	assert.Equal(t, 2, resp.Counts.All)
	assert.Equal(t, 1, resp.Counts.Unread)
	require.Len(t, resp.Page.Items, 1)
	assert.Equal(t, "a1", resp.Page.Items[0].ID)

	w = makeRequest(router, "GET", "/api/v1/alerts/unread-count", nil)
	assert.JSONEq(t, `{"unread_count": 1}`, w.Body.String())
}

func TestMarkAlertRead_NotCached(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	env.alertsAPI.EXPECT().MarkAlertRead(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "PATCH", "/api/v1/alerts/missing/read", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "alert not found")
}

func TestMarkAlertRead_BackendNotFound(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)
	env.alertsAPI.EXPECT().ListAlerts(gomock.Any(), 200).Return([]map[string]any{{"_id": "a1"}}, nil).Times(1)
	require.NoError(t, env.alerts.Refresh(context.Background()))

	env.alertsAPI.EXPECT().MarkAlertRead(gomock.Any(), "a1", true).
		Return(nil, &backend.APIError{StatusCode: http.StatusNotFound, Detail: "Alert not found"}).
		Times(1)

	w := makeRequest(router, "PATCH", "/api/v1/alerts/a1/read", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Alert not found")
}

func TestDeleteAlert_AdminAudited(t *testing.T) {
	env, repo, router := newAuditedTestHandler(t)
	env.loginAs(t, models.RoleAdmin)
	env.alertsAPI.EXPECT().ListAlerts(gomock.Any(), 200).Return([]map[string]any{{"_id": "a1"}}, nil).Times(1)
	require.NoError(t, env.alerts.Refresh(context.Background()))

	env.alertsAPI.EXPECT().DeleteAlert(gomock.Any(), "a1").Return(nil).Times(1)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Cond(func(e *models.AuditEntry) bool {
			return e.Action == "alert.delete" && e.Target == "a1" &&
				e.Actor == "user@x.io" && e.Outcome == models.AuditOutcomeSuccess
		})).
		Return(nil).
		Times(1)

	w := makeRequest(router, "DELETE", "/api/v1/alerts/a1", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, env.alerts.State().Alerts)
}

func TestLoginLogout_Audited(t *testing.T) {
	env, repo, router := newAuditedTestHandler(t)
	env.auth.EXPECT().Login(gomock.Any(), "admin@x.io", "secret").Return(&backend.AuthPayload{
		AccessToken: "tok",
		User:        map[string]any{"_id": adminID, "email": "admin@x.io", "role": "admin"},
	}, nil).Times(1)
	gomock.InOrder(
		repo.EXPECT().
			Create(gomock.Any(), gomock.Cond(func(e *models.AuditEntry) bool {
				return e.Action == "session.login" && e.Actor == "admin@x.io" && e.Outcome == models.AuditOutcomeSuccess
			})).
			Return(nil),
		repo.EXPECT().
			Create(gomock.Any(), gomock.Cond(func(e *models.AuditEntry) bool {
				return e.Action == "session.logout" && e.Actor == "admin@x.io"
			})).
			Return(nil),
	)

	w := makeRequest(router, "POST", "/api/v1/auth/login", jsonBody(t, LoginRequest{Email: "admin@x.io", Password: "secret"}))
	require.Equal(t, http.StatusOK, w.Code)

	w = makeRequest(router, "POST", "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, env.session.State().Authenticated)
}

func TestDeleteAlert_OperatorForbidden(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	env.alertsAPI.EXPECT().DeleteAlert(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "DELETE", "/api/v1/alerts/a1", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin role required")
}

func TestDownloadEvidence(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	env.api.EXPECT().PublicBase().Return("http://backend.test").AnyTimes()
	env.api.EXPECT().ListIncidents(gomock.Any(), gomock.Any()).Return([]map[string]any{
		{"_id": "i1", "evidence_url": "/static/i1.jpg", "confidence": 0.9, "timestamp": "2025-03-01T10:00:00Z"},
	}, nil).Times(1)
	env.api.EXPECT().FetchEvidence(gomock.Any(), "http://backend.test/static/i1.jpg").
		Return([]byte("jpeg-bytes"), "image/jpeg", nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/evidence/i1/download", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "evidence-i1.jpg")
	assert.Equal(t, "jpeg-bytes", w.Body.String())
}

func TestArchiveEvidence_Disabled(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	w := makeRequest(router, "POST", "/api/v1/evidence/i1/archive", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListAudit(t *testing.T) {
	t.Run("operator is denied", func(t *testing.T) {
		_, env, router := newTestHandler(t)
		env.loginAs(t, models.RoleOperator)

		w := makeRequest(router, "GET", "/api/v1/audit", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin without database", func(t *testing.T) {
		_, env, router := newTestHandler(t)
		env.loginAs(t, models.RoleAdmin)

		w := makeRequest(router, "GET", "/api/v1/audit", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestAlertEvents_StreamsStateAndNotifications(t *testing.T) {
	_, env, router := newTestHandler(t)
	env.loginAs(t, models.RoleOperator)

	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/alerts/events", nil)
	require.NoError(t, err)
	req.Header.Set("X-API-Key", testAPIKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "event:") {
				return strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			}
		}
	}

	// подписка сразу отдает текущее состояние кеша
	assert.Equal(t, "alerts", readEvent())

	env.hub.Notify(notify.LevelInfo, "New alert", "Gate")
	assert.Equal(t, "notification", readEvent())
}
