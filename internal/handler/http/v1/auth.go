package v1

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shenikar/armguard_console/internal/access"
	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/notify"
	"github.com/shenikar/armguard_console/internal/service"
	"github.com/shenikar/armguard_console/internal/session"
)

// APIKeyAuth - middleware для аутентификации клиентов локального API по ключу.
// Ключ передается в X-API-Key или в Authorization: Bearer.
func (h *Handler) APIKeyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			// Проверяем также заголовок Authorization: Bearer
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if apiKey == "" {
			h.logger.WithField("path", c.FullPath()).Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		if !h.validAPIKey(apiKey) {
			h.logger.WithField("path", c.FullPath()).Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

func (h *Handler) validAPIKey(apiKey string) bool {
	valid := false
	for _, key := range h.cfg.APIKeys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
			valid = true
		}
	}
	return valid
}

// RequireSession - middleware: без активной сессии 401
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := h.Session.State()
		if !st.Authenticated {
			h.logger.WithField("path", c.FullPath()).Debug("Request without session")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Set(sessionContextKey, st.Session)
		c.Next()
	}
}

// RequireModule - middleware: роль должна иметь доступ к модулю.
// Отказ сопровождается предупреждением, как при навигации.
func (h *Handler) RequireModule(moduleID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		role := sess.Role()
		if !access.CanAccessModule(role, moduleID) {
			h.deny(c, role, moduleID)
			return
		}
		c.Next()
	}
}

// RequireAdmin - middleware для административных действий вне админских модулей
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		role := sess.Role()
		if !access.IsAdmin(role) {
			h.deny(c, role, c.FullPath())
			return
		}
		c.Next()
	}
}

func (h *Handler) deny(c *gin.Context, role models.Role, target string) {
	h.logger.WithField("role", role).WithField("target", target).Warn("Access denied")
	if h.Hub != nil {
		h.Hub.Notify(notify.LevelWarning, "Access denied", "Your role ("+string(role)+") cannot open "+target)
	}
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
}

func (h *Handler) sessionResponse(st session.State) SessionResponse {
	return ModelToSessionResponse(st.Session, st.Authenticated, st.Loading)
}

// @Summary Log in
// @Description Authenticates against the backend and stores the session (token, user, allowed modules).
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Rejected by backend"
// @Failure 502 {object} map[string]string "Backend unavailable"
// @Security ApiKeyAuth
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	log := h.logger.WithField("method", "login")
	var input LoginRequest
	if !h.bind(c, log, &input) {
		return
	}

	if err := h.Auth.Login(c.Request.Context(), input.Email, input.Password); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, h.sessionResponse(h.Session.State()))
}

// @Summary Refresh the current user
// @Description Re-reads /auth/me. Any failure clears the session.
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Session cleared"
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *Handler) me(c *gin.Context) {
	log := h.logger.WithField("method", "me")
	if err := h.Session.RefreshMe(c.Request.Context()); err != nil {
		log.WithError(err).Warn("Session refresh failed, session cleared")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, h.sessionResponse(h.Session.State()))
}

// @Summary Log out
// @Tags Auth
// @Success 204 "No Content"
// @Security ApiKeyAuth
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	sess := h.Session.State().Session
	h.Auth.Logout(c.Request.Context(), service.ActorFromSession(&sess))
	c.Status(http.StatusNoContent)
}

// @Summary Current session
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Security ApiKeyAuth
// @Router /session [get]
func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionResponse(h.Session.State()))
}
