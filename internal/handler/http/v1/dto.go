package v1

import (
	"time"

	"github.com/shenikar/armguard_console/internal/access"
	"github.com/shenikar/armguard_console/internal/models"
)

// LoginRequest DTO для входа оператора
// @Description DTO для входа оператора
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse DTO текущей сессии (токен наружу не отдается)
// @Description DTO текущей сессии
type SessionResponse struct {
	Authenticated  bool            `json:"authenticated"`
	Loading        bool            `json:"loading"`
	User           *models.User    `json:"user,omitempty"`
	AllowedModules []string        `json:"allowed_modules"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
	Modules        []access.Module `json:"modules"`
}

// ModulesResponse DTO бокового меню
type ModulesResponse struct {
	Active  string          `json:"active"`
	Modules []access.Module `json:"modules"`
}

// ActivateModuleRequest DTO перехода в модуль
type ActivateModuleRequest struct {
	Module string `json:"module" validate:"required"`
}

type ActivateModuleResponse struct {
	Active string `json:"active"`
	Denied bool   `json:"denied"`
}

// UnreadCountResponse DTO счетчика непрочитанных
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// CameraRequest DTO для создания и обновления камеры
// @Description DTO для создания и обновления камеры
type CameraRequest struct {
	Name              string `json:"name" validate:"required,max=255"`
	RTSPURL           string `json:"rtsp_url" validate:"required"`
	Enabled           *bool  `json:"enabled"`
	FPSTarget         int    `json:"fps_target" validate:"omitempty,gte=1,lte=60"`
	InferEveryNFrames int    `json:"infer_every_n_frames" validate:"omitempty,gte=1,lte=60"`
}

// StreamResponse DTO ссылки на MJPEG поток
type StreamResponse struct {
	URL string `json:"url"`
}

// CreateUserRequest DTO для создания пользователя
// @Description DTO для создания пользователя
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin operator"`
}

// UpdateUserRequest DTO для обновления пользователя
// @Description DTO для обновления пользователя
type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,max=254"`
	Role  string `json:"role" validate:"omitempty,oneof=admin operator"`
}

// SetRoleRequest DTO смены роли
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin operator"`
}

// SetEstadoRequest DTO активации/деактивации
type SetEstadoRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// SettingsRequest DTO частичного обновления настроек
// @Description DTO частичного обновления настроек
type SettingsRequest struct {
	ConfidenceThreshold *float64 `json:"confidence_threshold" validate:"omitempty,gte=0.5,lte=1"`
	AutoAlert           *bool    `json:"auto_alert"`
	EmailNotifications  *bool    `json:"email_notifications"`
	SoundAlerts         *bool    `json:"sound_alerts"`
	SaveEvidence        *bool    `json:"save_evidence"`
	MaxFPS              *int     `json:"max_fps" validate:"omitempty,gte=10,lte=60"`
	InferEveryNFrames   *int     `json:"infer_every_n_frames" validate:"omitempty,gte=1,lte=30"`
}

// HealthResponse DTO состояния агента
type HealthResponse struct {
	Status        string `json:"status"`
	Backend       string `json:"backend,omitempty"`
	Authenticated bool   `json:"authenticated"`
	AlertsLoaded  bool   `json:"alerts_loaded"`
	Audit         bool   `json:"audit"`
	Archive       bool   `json:"archive"`
}
