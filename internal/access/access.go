// Package access - единственный источник правил видимости модулей консоли.
package access

import (
	"sync"

	"github.com/shenikar/armguard_console/internal/models"
)

// Идентификаторы модулей консоли
const (
	ModuleDashboard = "dashboard"
	ModuleCameras   = "cameras"
	ModuleIncidents = "incidents"
	ModuleEvidence  = "evidence"
	ModuleAlerts    = "alerts"
	ModuleUsers     = "users"
	ModuleSettings  = "settings"

	// DefaultModule - куда возвращается навигация при отказе
	DefaultModule = ModuleDashboard
)

// Module - пункт бокового меню
type Module struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Roles       []models.Role `json:"roles"`
}

var catalogue = []Module{
	{ID: ModuleDashboard, Title: "Dashboard", Description: "Main panel", Roles: []models.Role{models.RoleAdmin, models.RoleOperator}},
	{ID: ModuleCameras, Title: "Cameras", Description: "Camera management", Roles: []models.Role{models.RoleAdmin, models.RoleOperator}},
	{ID: ModuleIncidents, Title: "Incidents", Description: "Recorded detections", Roles: []models.Role{models.RoleAdmin, models.RoleOperator}},
	{ID: ModuleEvidence, Title: "Evidence", Description: "Capture gallery", Roles: []models.Role{models.RoleAdmin, models.RoleOperator}},
	{ID: ModuleAlerts, Title: "Alerts", Description: "Alert center", Roles: []models.Role{models.RoleAdmin, models.RoleOperator}},
	{ID: ModuleUsers, Title: "Users", Description: "Create and manage users", Roles: []models.Role{models.RoleAdmin}},
	{ID: ModuleSettings, Title: "Settings", Description: "System parameters", Roles: []models.Role{models.RoleAdmin}},
}

// IsAdmin сообщает, является ли роль административной
func IsAdmin(role models.Role) bool {
	return role == models.RoleAdmin
}

// CanAccessModule - может ли роль открыть модуль. Неизвестный модуль запрещен.
func CanAccessModule(role models.Role, moduleID string) bool {
	for _, m := range catalogue {
		if m.ID != moduleID {
			continue
		}
		for _, r := range m.Roles {
			if r == role {
				return true
			}
		}
		return false
	}
	return false
}

// VisibleModules - модули бокового меню для роли, в порядке каталога
func VisibleModules(role models.Role) []Module {
	out := make([]Module, 0, len(catalogue))
	for _, m := range catalogue {
		if CanAccessModule(role, m.ID) {
			out = append(out, m)
		}
	}
	return out
}

// Denial - уведомление об отказе в доступе
type Denial struct {
	Role      models.Role
	Requested string
}

// Navigator хранит активный модуль и перенаправляет запрещенные переходы на DefaultModule.
// onDeny вызывается ровно один раз на каждую отклоненную попытку.
type Navigator struct {
	mu     sync.Mutex
	active string
	onDeny func(Denial)
}

func NewNavigator(onDeny func(Denial)) *Navigator {
	return &Navigator{active: DefaultModule, onDeny: onDeny}
}

// Active возвращает текущий модуль
func (n *Navigator) Active() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

// Activate пытается открыть модуль; возвращает фактически активный модуль и признак отказа
func (n *Navigator) Activate(role models.Role, moduleID string) (string, bool) {
	n.mu.Lock()
	if CanAccessModule(role, moduleID) {
		n.active = moduleID
		n.mu.Unlock()
		return moduleID, false
	}
	n.active = DefaultModule
	n.mu.Unlock()

	if n.onDeny != nil {
		n.onDeny(Denial{Role: role, Requested: moduleID})
	}
	return DefaultModule, true
}

// Enforce перепроверяет активный модуль после смены роли (например, после refresh сессии).
// Уведомление не отправляется: пользователь ничего не запрашивал.
func (n *Navigator) Enforce(role models.Role) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !CanAccessModule(role, n.active) {
		n.active = DefaultModule
	}
	return n.active
}

// Reset возвращает навигацию в исходное состояние (logout)
func (n *Navigator) Reset() {
	n.mu.Lock()
	n.active = DefaultModule
	n.mu.Unlock()
}
