package models

// DashboardKPIs - показатели главной панели
type DashboardKPIs struct {
	TotalCameras    int    `json:"total_cameras"`
	ActiveCameras   int    `json:"active_cameras"`
	InactiveCameras int    `json:"inactive_cameras"`
	ActivePercent   int    `json:"active_percent"`
	IncidentsToday  int    `json:"incidents_today"`
	LastAlertCamera string `json:"last_alert_camera,omitempty"`
}

type Dashboard struct {
	KPIs      DashboardKPIs  `json:"kpis"`
	LastAlert *Incident      `json:"last_alert,omitempty"`
	Recent    Page[Incident] `json:"recent"`
	// Degraded - какие из трех выборок не удались и заменены пустыми
	Degraded []string `json:"degraded,omitempty"`
}

// UserStats - сводка на странице пользователей
type UserStats struct {
	Total    int `json:"total"`
	Admins   int `json:"admins"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}
