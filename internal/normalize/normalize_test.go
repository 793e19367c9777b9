package normalize

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/shenikar/armguard_console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidence(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"fraction", 0.87, 0.87, true},
		{"percentage", 87.0, 0.87, true},
		{"clamped above", 150.0, 1.0, true},
		{"negative clamped", -0.2, 0, true},
		{"numeric string", "87", 0.87, true},
		{"json number", json.Number("0.5"), 0.5, true},
		{"exact one", 1.0, 1.0, true},
		{"missing", nil, 0, false},
		{"garbage", "high", 0, false},
		{"nan", math.NaN(), 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Confidence(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, models.SeverityCritical, Severity("CRITICAL"))
	assert.Equal(t, models.SeverityHigh, Severity(" High "))
	assert.Equal(t, models.SeverityMedium, Severity("medium"))
	assert.Equal(t, models.SeverityLow, Severity("banana"))
	assert.Equal(t, models.SeverityLow, Severity(nil))
	assert.Equal(t, models.SeverityLow, Severity(3))
}

func TestTimestamp(t *testing.T) {
	want := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	assert.True(t, want.Equal(Timestamp("2025-03-01T10:30:00Z")))
	assert.True(t, want.Equal(Timestamp("2025-03-01T12:30:00+02:00")))
	assert.True(t, want.Equal(Timestamp("2025-03-01T10:30:00")))
	assert.True(t, want.Equal(Timestamp("2025-03-01 10:30:00")))
	assert.True(t, want.Equal(Timestamp(float64(want.Unix()))))
	assert.True(t, want.Equal(Timestamp(float64(want.UnixMilli()))))
	assert.True(t, Timestamp("yesterday").IsZero())
	assert.True(t, Timestamp(nil).IsZero())
}

func TestID(t *testing.T) {
	assert.Equal(t, "abc", ID("abc"))
	assert.Equal(t, "42", ID(float64(42)))
	assert.Equal(t, "65f0c0ffee", ID(map[string]any{"$oid": "65f0c0ffee"}))
	assert.Equal(t, "", ID(map[string]any{"x": 1}))
}

func TestAlert_FieldDrift(t *testing.T) {
	a := Alert(map[string]any{
		"id":          "a1",
		"severity":    "HIGH",
		"confidence":  92.0,
		"camera_id":   float64(7),
		"read":        nil,
		"created_at":  "2025-03-01T10:30:00Z",
		"weapon_type": "pistol",
	})

	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "Alert", a.Title)
	assert.Equal(t, models.SeverityHigh, a.Severity)
	assert.InDelta(t, 0.92, a.Confidence, 1e-9)
	assert.True(t, a.HasConfidence)
	assert.Equal(t, "7", a.CameraID)
	assert.False(t, a.Read)
	assert.Equal(t, "2025-03-01T10:30:00Z", a.Timestamp)
	assert.False(t, a.OccurredAt.IsZero())
}

func TestAlerts_SortsByParsedTime(t *testing.T) {
	// Строковое сравнение поставило бы "2025-03-01T..." выше "2025-03-01 ..." независимо от времени
	list := Alerts([]map[string]any{
		{"_id": "old", "timestamp": "2025-03-01 09:00:00"},
		{"_id": "none"},
		{"_id": "new", "timestamp": "2025-03-01T10:30:00+01:00"},
		{"_id": "newest", "timestamp": "2025-03-01T11:00:00Z"},
	})

	require.Len(t, list, 4)
	assert.Equal(t, []string{"newest", "new", "old", "none"}, []string{list[0].ID, list[1].ID, list[2].ID, list[3].ID})
}

func TestIncident(t *testing.T) {
	inc := Incident(map[string]any{
		"incident_id":  "i-9",
		"label":        "rifle",
		"score":        85.0,
		"camera":       "CAM-3",
		"snapshot_url": "/static/i-9.jpg",
		"timestamp":    "2025-03-01T10:30:00Z",
	}, "http://backend:8000")

	assert.Equal(t, "i-9", inc.ID)
	assert.Equal(t, "rifle", inc.WeaponType)
	assert.InDelta(t, 0.85, inc.Confidence, 1e-9)
	assert.Equal(t, "CAM-3", inc.CameraID)
	assert.Equal(t, "http://backend:8000/static/i-9.jpg", inc.ImageURL)
	assert.Equal(t, models.SeverityHigh, inc.Severity)

	explicit := Incident(map[string]any{"severity": "Critical", "confidence": 0.1}, "")
	assert.Equal(t, models.SeverityCritical, explicit.Severity)
	assert.Equal(t, "INC-???", explicit.ID)
	assert.Equal(t, "Detection", explicit.WeaponType)
}

func TestEvidence_FiltersAndSorts(t *testing.T) {
	items := Evidence([]map[string]any{
		{"_id": "e1", "evidence_url": "static/e1.jpg", "confidence": 0.96, "timestamp": "2025-03-01T08:00:00Z"},
		{"_id": "e2", "confidence": 0.5},
		{"_id": "e3", "evidence_url": "https://cdn/e3.jpg", "confidence": 0.72, "timestamp": "2025-03-02T08:00:00Z"},
	}, "http://backend:8000/")

	require.Len(t, items, 2)
	assert.Equal(t, "e3", items[0].ID)
	assert.Equal(t, models.SeverityMedium, items[0].Severity)
	assert.Equal(t, "https://cdn/e3.jpg", items[0].EvidenceURL)
	assert.Equal(t, "http://backend:8000/static/e1.jpg", items[1].EvidenceURL)
	assert.Equal(t, models.SeverityCritical, items[1].Severity)
}

func TestCamera(t *testing.T) {
	c := Camera(map[string]any{"id": float64(3), "status": "running", "fps_target": 0})
	assert.Equal(t, "3", c.ID)
	assert.Equal(t, "Camera", c.Name)
	assert.Equal(t, "0", c.RTSPURL)
	assert.True(t, c.Enabled)
	assert.Equal(t, 30, c.FPSTarget)
	assert.Equal(t, 5, c.InferEveryNFrames)
	assert.Equal(t, models.CameraRunning, c.Status)

	disabled := Camera(map[string]any{"_id": "c2", "enabled": false, "status": "active"})
	assert.Equal(t, models.CameraStopped, disabled.Status)
}

func TestUser(t *testing.T) {
	u := User(map[string]any{"_id": map[string]any{"$oid": "65f0c0ffee65f0c0ffee65f0"}, "role": "ADMIN", "estado": 0.0})
	assert.Equal(t, "65f0c0ffee65f0c0ffee65f0", u.ID)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.False(t, u.Active)

	op := User(map[string]any{"id": "u2", "role": "superuser"})
	assert.Equal(t, models.RoleOperator, op.Role)
	assert.True(t, op.Active)
}

func TestModules(t *testing.T) {
	assert.Equal(t, []string{"dashboard", "users"}, Modules([]any{"dashboard", "", "users"}))
	assert.Equal(t, []string{}, Modules(nil))
}
