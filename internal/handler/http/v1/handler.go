package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/access"
	"github.com/shenikar/armguard_console/internal/alerts"
	"github.com/shenikar/armguard_console/internal/backend"
	"github.com/shenikar/armguard_console/internal/config"
	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/notify"
	"github.com/shenikar/armguard_console/internal/service"
	"github.com/shenikar/armguard_console/internal/session"
)

// SessionManager - часть session.Store, нужная API; вход и выход идут через service.AuthService
type SessionManager interface {
	RefreshMe(ctx context.Context) error
	State() session.State
	Token() string
}

// AlertCache - часть alerts.Store, нужная API; изменения идут через service.AlertService
type AlertCache interface {
	State() alerts.State
	UnreadCount() int
	Refresh(ctx context.Context) error
	Subscribe() (<-chan alerts.State, func())
}

// NotificationHub - уведомления: отправка и подписка для SSE
type NotificationHub interface {
	notify.Notifier
	Subscribe() (<-chan notify.Notification, func())
}

// Deps - зависимости API консоли
type Deps struct {
	Session   SessionManager
	Alerts    AlertCache
	Navigator *access.Navigator
	Hub       NotificationHub

	Auth         service.AuthService
	AlertActions service.AlertService
	Dashboard    service.DashboardService
	Cameras      service.CameraService
	Incidents    service.IncidentService
	Evidence     service.EvidenceService
	Users        service.UserService
	Settings     service.SettingsService
	Audit        service.AuditService
}

type Handler struct {
	Deps
	logger   *logrus.Logger
	validate *validator.Validate
	cfg      *config.Config
}

func NewHandler(deps Deps, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		Deps:     deps,
		logger:   logger,
		validate: validator.New(),
		cfg:      cfg,
	}
}

const sessionContextKey = "console_session"

// currentSession - сессия, положенная в контекст RequireSession
func currentSession(c *gin.Context) models.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if s, ok := v.(models.Session); ok {
			return s
		}
	}
	return models.Session{}
}

func actor(c *gin.Context) service.Actor {
	s := currentSession(c)
	return service.ActorFromSession(&s)
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

// bind разбирает и валидирует тело запроса; при ошибке ответ уже отправлен
func (h *Handler) bind(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondError переводит ошибку сервиса или backend в HTTP ответ.
// 4xx backend отдается со своим статусом, остальные сбои backend - 502.
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	status := http.StatusBadGateway
	msg := backend.ErrorText(err)

	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		status, msg = http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrSelfAction),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound), errors.Is(err, alerts.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrArchiveDisabled), errors.Is(err, service.ErrAuditDisabled):
		status = http.StatusServiceUnavailable
	default:
		if apiErr, ok := backend.AsAPIError(err); ok && apiErr.IsClientError() {
			status = apiErr.StatusCode
		}
	}

	entry := log.WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}
	c.JSON(status, gin.H{"error": msg})
}

// @Summary Get application health status
// @Description Get health status of the console agent
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	st := h.Session.State()
	resp := HealthResponse{
		Status:        "ok",
		Authenticated: st.Authenticated,
		AlertsLoaded:  h.Alerts.State().Loaded,
		Audit:         h.Audit.Enabled(),
		Archive:       h.Evidence.ArchiveEnabled(),
	}
	if h.cfg != nil {
		resp.Backend = h.cfg.APIBase
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Modules visible to the current role
// @Tags Navigation
// @Produce json
// @Success 200 {object} ModulesResponse
// @Failure 401 {object} map[string]string "Not authenticated"
// @Security ApiKeyAuth
// @Router /modules [get]
func (h *Handler) listModules(c *gin.Context) {
	s := currentSession(c)
	c.JSON(http.StatusOK, ModulesResponse{
		Active:  h.Navigator.Enforce(s.Role()),
		Modules: access.VisibleModules(s.Role()),
	})
}

// @Summary Switch the active module
// @Description A module the role cannot open redirects to the dashboard and raises a warning notification.
// @Tags Navigation
// @Accept json
// @Produce json
// @Param module body ActivateModuleRequest true "Module to open"
// @Success 200 {object} ActivateModuleResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Not authenticated"
// @Security ApiKeyAuth
// @Router /modules/active [put]
func (h *Handler) activateModule(c *gin.Context) {
	log := h.logger.WithField("method", "activateModule")
	var input ActivateModuleRequest
	if !h.bind(c, log, &input) {
		return
	}

	s := currentSession(c)
	active, denied := h.Navigator.Activate(s.Role(), input.Module)
	if denied {
		log.WithFields(logrus.Fields{"role": s.Role(), "module": input.Module}).Warn("Module access denied")
	}
	c.JSON(http.StatusOK, ActivateModuleResponse{Active: active, Denied: denied})
}
