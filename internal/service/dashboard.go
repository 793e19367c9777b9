package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/normalize"
)

const (
	DashboardPageSize   = 10
	dashboardFetchLimit = 50
)

// DashboardService определяет контракт главной панели
type DashboardService interface {
	Get(ctx context.Context, page int) (*models.Dashboard, error)
}

type dashboardService struct {
	api    Backend
	logger *logrus.Logger
	now    func() time.Time
}

func NewDashboardService(api Backend, logger *logrus.Logger) DashboardService {
	return &dashboardService{api: api, logger: logger, now: time.Now}
}

// Get собирает панель из трех выборок. Упавшая выборка заменяется пустым списком,
// панель при этом все равно строится.
func (s *dashboardService) Get(ctx context.Context, page int) (*models.Dashboard, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dashboard",
		"method":  "Get",
	})

	var cameras, alertsRaw, incidentsRaw []map[string]any
	var failed [3]bool

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(slot int, name string, dst *[]map[string]any, call func(context.Context) ([]map[string]any, error)) {
		g.Go(func() error {
			list, err := call(gctx)
			if err != nil {
				log.WithError(err).WithField("source", name).Warn("Dashboard source failed, using empty list")
				failed[slot] = true
				return nil
			}
			*dst = list
			return nil
		})
	}
	fetch(0, "cameras", &cameras, s.api.ListCameras)
	fetch(1, "alerts", &alertsRaw, func(c context.Context) ([]map[string]any, error) {
		return s.api.ListAlerts(c, dashboardFetchLimit)
	})
	fetch(2, "incidents", &incidentsRaw, func(c context.Context) ([]map[string]any, error) {
		return s.api.ListIncidents(c, dashboardFetchLimit)
	})
	_ = g.Wait()

	d := &models.Dashboard{}
	for i, name := range []string{"cameras", "alerts", "incidents"} {
		if failed[i] {
			d.Degraded = append(d.Degraded, name)
		}
	}

	d.KPIs = s.kpis(cameras, incidentsRaw)

	recent := normalize.Incidents(alertsRaw, s.api.PublicBase())
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].OccurredAt.After(recent[j].OccurredAt)
	})
	if len(recent) > 0 {
		last := recent[0]
		d.LastAlert = &last
		d.KPIs.LastAlertCamera = last.CameraID
	}
	d.Recent = models.Paginate(recent, page, DashboardPageSize)

	log.WithField("degraded", d.Degraded).Debug("Dashboard assembled")
	return d, nil
}

func (s *dashboardService) kpis(cameras, incidents []map[string]any) models.DashboardKPIs {
	k := models.DashboardKPIs{TotalCameras: len(cameras)}
	for _, c := range cameras {
		if normalize.CameraActive(c) {
			k.ActiveCameras++
		}
	}
	k.InactiveCameras = k.TotalCameras - k.ActiveCameras
	if k.TotalCameras > 0 {
		k.ActivePercent = int(math.Round(float64(k.ActiveCameras) / float64(k.TotalCameras) * 100))
	}

	now := s.now()
	y, m, day := now.Date()
	for _, inc := range incidents {
		t := normalize.Timestamp(normalize.First(inc, "created_at", "timestamp"))
		if t.IsZero() {
			continue
		}
		ty, tm, td := t.In(now.Location()).Date()
		if ty == y && tm == m && td == day {
			k.IncidentsToday++
		}
	}
	return k
}
