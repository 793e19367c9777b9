package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/shenikar/armguard_console/internal/access"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Проверка живости без ключа
	api.GET("/system/health", h.healthCheck)

	secured := api.Group("", h.APIKeyAuth())

	// Маршруты без сессии
	auth := secured.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.GET("/me", h.me)
		auth.POST("/logout", h.logout)
	}
	secured.GET("/session", h.getSession)

	protected := secured.Group("", h.RequireSession())

	// Навигация
	protected.GET("/modules", h.listModules)
	protected.PUT("/modules/active", h.activateModule)

	protected.GET("/dashboard", h.RequireModule(access.ModuleDashboard), h.getDashboard)

	alerts := protected.Group("/alerts", h.RequireModule(access.ModuleAlerts))
	{
		alerts.GET("", h.listAlerts)
		alerts.GET("/unread-count", h.unreadCount)
		alerts.GET("/events", h.alertEvents)
		alerts.POST("/refresh", h.refreshAlerts)
		alerts.POST("/read-all", h.markAllAlertsRead)
		alerts.PATCH("/:id/read", h.markAlertRead)
		alerts.DELETE("/:id", h.RequireAdmin(), h.deleteAlert)
	}

	// Мутации камер и инцидентов проверяют роль в сервисах
	cameras := protected.Group("/cameras", h.RequireModule(access.ModuleCameras))
	{
		cameras.GET("", h.listCameras)
		cameras.POST("", h.createCamera)
		cameras.PUT("/:id", h.updateCamera)
		cameras.DELETE("/:id", h.deleteCamera)
		cameras.POST("/:id/start", h.startCamera)
		cameras.POST("/:id/stop", h.stopCamera)
		cameras.GET("/:id/stream", h.cameraStream)
	}

	incidents := protected.Group("/incidents", h.RequireModule(access.ModuleIncidents))
	{
		incidents.GET("", h.listIncidents)
		incidents.DELETE("/:id", h.deleteIncident)
	}

	evidence := protected.Group("/evidence", h.RequireModule(access.ModuleEvidence))
	{
		evidence.GET("", h.listEvidence)
		evidence.GET("/:id/download", h.downloadEvidence)
		evidence.POST("/:id/archive", h.archiveEvidence)
	}

	users := protected.Group("/users", h.RequireModule(access.ModuleUsers))
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
		users.PUT("/:id", h.updateUser)
		users.PATCH("/:id/role", h.setUserRole)
		users.PATCH("/:id/estado", h.setUserEstado)
		users.DELETE("/:id", h.deleteUser)
	}

	settings := protected.Group("/settings", h.RequireModule(access.ModuleSettings))
	{
		settings.GET("", h.getSettings)
		settings.PATCH("", h.updateSettings)
		settings.POST("/reset", h.resetSettings)
	}

	protected.GET("/audit", h.RequireAdmin(), h.listAudit)
}
