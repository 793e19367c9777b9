package service

import (
	"strings"

	"github.com/shenikar/armguard_console/internal/models"
)

const AlertPageSize = 4

// AlertTab - вкладка списка алертов
type AlertTab string

const (
	AlertTabAll    AlertTab = "all"
	AlertTabUnread AlertTab = "unread"
	AlertTabRead   AlertTab = "read"
)

// ParseAlertTab; неизвестное значение дает "all"
func ParseAlertTab(s string) AlertTab {
	switch AlertTab(strings.ToLower(strings.TrimSpace(s))) {
	case AlertTabUnread:
		return AlertTabUnread
	case AlertTabRead:
		return AlertTabRead
	}
	return AlertTabAll
}

type AlertCounts struct {
	All      int `json:"all"`
	Unread   int `json:"unread"`
	Read     int `json:"read"`
	Critical int `json:"critical"`
}

type AlertView struct {
	Tab    AlertTab                  `json:"tab"`
	Page   models.Page[models.Alert] `json:"page"`
	Counts AlertCounts               `json:"counts"`
}

// BuildAlertView фильтрует закешированный список по вкладке; счетчики по всему списку
func BuildAlertView(list []models.Alert, tab AlertTab, page, pageSize int) AlertView {
	view := AlertView{Tab: tab}
	filtered := make([]models.Alert, 0, len(list))
	for _, a := range list {
		view.Counts.All++
		if a.Read {
			view.Counts.Read++
		} else {
			view.Counts.Unread++
		}
		if a.Severity == models.SeverityCritical {
			view.Counts.Critical++
		}

		switch {
		case tab == AlertTabUnread && a.Read:
			continue
		case tab == AlertTabRead && !a.Read:
			continue
		}
		filtered = append(filtered, a)
	}
	if pageSize < 1 {
		pageSize = AlertPageSize
	}
	view.Page = models.Paginate(filtered, page, pageSize)
	return view
}
