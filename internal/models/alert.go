package models

import "time"

// Severity - уровень критичности алерта или инцидента
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Alert - уведомление о детекции, как его видит консоль.
// Confidence нормализован в [0,1]; HasConfidence=false, если backend его не прислал.
type Alert struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Severity      Severity  `json:"severity"`
	WeaponType    string    `json:"weapon_type,omitempty"`
	Confidence    float64   `json:"confidence"`
	HasConfidence bool      `json:"has_confidence"`
	CameraID      string    `json:"camera_id,omitempty"`
	Read          bool      `json:"read"`
	Timestamp     string    `json:"timestamp,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
	EvidenceURL   string    `json:"evidence_url,omitempty"`
}
