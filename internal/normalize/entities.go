package normalize

import (
	"sort"
	"strings"
	"time"

	"github.com/shenikar/armguard_console/internal/models"
)

// Alert нормализует запись /alerts
func Alert(raw map[string]any) models.Alert {
	conf, hasConf := Confidence(raw["confidence"])
	ts := String(First(raw, "timestamp", "created_at"))
	return models.Alert{
		ID:            ID(First(raw, "_id", "id")),
		Type:          firstString(raw, "ALERT", "type"),
		Title:         firstString(raw, "Alert", "title"),
		Message:       String(raw["message"]),
		Severity:      Severity(raw["severity"]),
		WeaponType:    String(raw["weapon_type"]),
		Confidence:    conf,
		HasConfidence: hasConf,
		CameraID:      String(raw["camera_id"]),
		Read:          Truthy(raw["read"]),
		Timestamp:     ts,
		OccurredAt:    Timestamp(First(raw, "timestamp", "created_at")),
		EvidenceURL:   String(raw["evidence_url"]),
	}
}

// Alerts нормализует список и сортирует его от новых к старым по разобранному времени.
// Записи без времени уходят в конец.
func Alerts(raw []map[string]any) []models.Alert {
	out := make([]models.Alert, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			continue
		}
		out = append(out, Alert(r))
	}
	SortAlerts(out)
	return out
}

// SortAlerts - стабильная сортировка по убыванию времени
func SortAlerts(alerts []models.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return newer(alerts[i].OccurredAt, alerts[j].OccurredAt, alerts[i].Timestamp, alerts[j].Timestamp)
	})
}

func newer(a, b time.Time, rawA, rawB string) bool {
	switch {
	case !a.IsZero() && !b.IsZero():
		return a.After(b)
	case !a.IsZero():
		return true
	case !b.IsZero():
		return false
	}
	return rawA > rawB
}

// Incident нормализует запись /incidents; publicBase используется для относительных ссылок на снимки
func Incident(raw map[string]any, publicBase string) models.Incident {
	confRaw := First(raw, "confidence", "score")
	conf, _ := Confidence(confRaw)

	created := First(raw, "created_at", "timestamp", "createdAt")
	severity := SeverityFromConfidence(conf)
	if sev := First(raw, "severity"); sev != nil {
		severity = Severity(sev)
	}

	return models.Incident{
		ID:         firstString(raw, "INC-???", "_id", "id", "incident_id"),
		WeaponType: firstString(raw, "Detection", "weapon_type", "type", "label"),
		Confidence: conf,
		Timestamp:  String(created),
		OccurredAt: Timestamp(created),
		CameraID:   firstString(raw, "CAM-?", "camera_id", "camera", "cameraCode"),
		CameraName: firstString(raw, "", "camera_name", "cameraName"),
		ImageURL:   AbsoluteURL(String(First(raw, "image_url", "snapshot_url", "evidence_url")), publicBase),
		Severity:   severity,
	}
}

// Incidents нормализует список, сохраняя порядок backend
func Incidents(raw []map[string]any, publicBase string) []models.Incident {
	out := make([]models.Incident, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			continue
		}
		out = append(out, Incident(r, publicBase))
	}
	return out
}

// Evidence оставляет только инциденты со ссылкой на доказательство, новые первыми
func Evidence(raw []map[string]any, publicBase string) []models.Evidence {
	out := make([]models.Evidence, 0, len(raw))
	for _, r := range raw {
		if r == nil || String(r["evidence_url"]) == "" {
			continue
		}
		conf, _ := Confidence(r["confidence"])
		ts := String(First(r, "timestamp", "created_at"))
		out = append(out, models.Evidence{
			ID:          ID(First(r, "_id", "id")),
			WeaponType:  firstString(r, "unknown", "weapon_type"),
			Confidence:  conf,
			EvidenceURL: AbsoluteURL(String(r["evidence_url"]), publicBase),
			CameraID:    firstString(r, "-", "camera_id"),
			Timestamp:   ts,
			OccurredAt:  Timestamp(ts),
			Severity:    EvidenceSeverity(conf),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return newer(out[i].OccurredAt, out[j].OccurredAt, out[i].Timestamp, out[j].Timestamp)
	})
	return out
}

// Camera нормализует запись /cameras
func Camera(raw map[string]any) models.Camera {
	enabled := true
	if v, ok := raw["enabled"]; ok && v != nil {
		enabled = Truthy(v)
	}

	status := models.CameraStatus(strings.ToUpper(String(raw["status"])))
	if status != models.CameraRunning && status != models.CameraStopped {
		status = models.CameraStopped
		if enabled {
			status = models.CameraRunning
		}
	}

	return models.Camera{
		ID:                ID(First(raw, "_id", "id")),
		Name:              firstString(raw, "Camera", "name"),
		RTSPURL:           firstString(raw, "0", "rtsp_url"),
		Enabled:           enabled,
		FPSTarget:         positiveInt(raw["fps_target"], 30),
		InferEveryNFrames: positiveInt(raw["infer_every_n_frames"], 5),
		Status:            status,
	}
}

// Cameras нормализует список камер
func Cameras(raw []map[string]any) []models.Camera {
	out := make([]models.Camera, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			continue
		}
		out = append(out, Camera(r))
	}
	return out
}

// CameraActive - признак активности для KPI дашборда
func CameraActive(raw map[string]any) bool {
	if b, ok := raw["is_active"].(bool); ok {
		return b
	}
	if b, ok := raw["active"].(bool); ok {
		return b
	}
	switch strings.ToLower(String(raw["status"])) {
	case "active", "running":
		return true
	}
	return false
}

// User нормализует запись /users и /auth/me
func User(raw map[string]any) models.User {
	role := models.RoleOperator
	if strings.EqualFold(String(raw["role"]), string(models.RoleAdmin)) {
		role = models.RoleAdmin
	}

	active := true
	if n, ok := Number(raw["estado"]); ok {
		active = n == 1
	}

	u := models.User{
		ID:     ID(First(raw, "id", "_id")),
		Name:   String(raw["name"]),
		Email:  String(raw["email"]),
		Role:   role,
		Active: active,
	}
	if t := Timestamp(raw["created_at"]); !t.IsZero() {
		u.CreatedAt = &t
	}
	return u
}

// Users нормализует список пользователей
func Users(raw []map[string]any) []models.User {
	out := make([]models.User, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			continue
		}
		out = append(out, User(r))
	}
	return out
}

// Modules приводит список разрешенных модулей к []string
func Modules(v any) []string {
	list, ok := v.([]any)
	if !ok {
		if s, ok := v.([]string); ok {
			return append([]string(nil), s...)
		}
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s := String(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func positiveInt(v any, def int) int {
	n, ok := Number(v)
	if !ok || int(n) <= 0 {
		return def
	}
	return int(n)
}
