package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/normalize"
	"github.com/shenikar/armguard_console/internal/notify"
)

const (
	IncidentPageSize     = 5
	IncidentDefaultLimit = 50
)

// IncidentQuery - фильтры журнала инцидентов; пустое значение или "all" не фильтрует
type IncidentQuery struct {
	Search   string
	Camera   string
	Severity string
	Page     int
	PageSize int
	Limit    int
}

// CameraOption - камера для выпадающего фильтра
type CameraOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IncidentStats считается по отфильтрованному списку
type IncidentStats struct {
	Total         int `json:"total"`
	Critical      int `json:"critical"`
	AvgConfidence int `json:"avg_confidence"`
}

type IncidentList struct {
	Page    models.Page[models.Incident] `json:"page"`
	Stats   IncidentStats                `json:"stats"`
	Cameras []CameraOption               `json:"cameras"`
}

// IncidentService определяет контракт для журнала инцидентов
type IncidentService interface {
	ListIncidents(ctx context.Context, q IncidentQuery) (*IncidentList, error)
	DeleteIncident(ctx context.Context, actor Actor, id string) error
}

type incidentService struct {
	api Backend
	reporter
}

func NewIncidentService(api Backend, audit AuditService, notifier notify.Notifier, logger *logrus.Logger) IncidentService {
	return &incidentService{
		api:      api,
		reporter: reporter{audit: audit, notifier: notifier, logger: logger},
	}
}

func matchAll(filter string) bool {
	return filter == "" || strings.EqualFold(filter, "all")
}

// ListIncidents получает инциденты и применяет фильтры
func (s *incidentService) ListIncidents(ctx context.Context, q IncidentQuery) (*IncidentList, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
	})
	if q.Limit < 1 {
		q.Limit = IncidentDefaultLimit
	}
	if q.PageSize < 1 {
		q.PageSize = IncidentPageSize
	}

	raw, err := s.api.ListIncidents(ctx, q.Limit)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents")
		s.notify(notify.LevelError, "Could not load incidents", "")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}
	incidents := normalize.Incidents(raw, s.api.PublicBase())

	out := &IncidentList{Cameras: cameraOptions(incidents)}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	filtered := make([]models.Incident, 0, len(incidents))
	var confSum float64
	for _, inc := range incidents {
		if search != "" &&
			!strings.Contains(strings.ToLower(inc.ID), search) &&
			!strings.Contains(strings.ToLower(inc.WeaponType), search) {
			continue
		}
		if !matchAll(q.Camera) && inc.CameraID != q.Camera {
			continue
		}
		if !matchAll(q.Severity) && !strings.EqualFold(string(inc.Severity), q.Severity) {
			continue
		}
		filtered = append(filtered, inc)
		confSum += inc.Confidence
		if inc.Severity == models.SeverityCritical {
			out.Stats.Critical++
		}
	}
	out.Stats.Total = len(filtered)
	if len(filtered) > 0 {
		out.Stats.AvgConfidence = int(math.Round(confSum / float64(len(filtered)) * 100))
	}
	out.Page = models.Paginate(filtered, q.Page, q.PageSize)

	log.WithField("count", len(filtered)).Debug("Incidents listed")
	return out, nil
}

func cameraOptions(incidents []models.Incident) []CameraOption {
	seen := make(map[string]bool)
	out := make([]CameraOption, 0)
	for _, inc := range incidents {
		if seen[inc.CameraID] {
			continue
		}
		seen[inc.CameraID] = true
		out = append(out, CameraOption{ID: inc.CameraID, Name: inc.CameraName})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeleteIncident удаляет инцидент (только admin)
func (s *incidentService) DeleteIncident(ctx context.Context, actor Actor, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeleteIncident",
		"incident_id": id,
	})
	if err := requireAdmin(actor); err != nil {
		s.notify(notify.LevelError, "You are not allowed to delete incidents", "")
		return err
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	log.Info("Attempting to delete incident")

	err := s.api.DeleteIncident(ctx, id)
	s.outcome(ctx, actor, "incident.delete", id, err, "Incident deleted", "Could not delete incident")
	if err != nil {
		log.WithError(err).Error("Failed to delete incident")
		return fmt.Errorf("service: could not delete incident: %w", err)
	}
	log.Info("Incident deleted successfully")
	return nil
}
