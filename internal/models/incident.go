package models

import "time"

// Incident - зафиксированная детекция оружия (журнал инцидентов)
type Incident struct {
	ID         string    `json:"id"`
	WeaponType string    `json:"weapon_type"`
	Confidence float64   `json:"confidence"`
	Timestamp  string    `json:"timestamp"`
	OccurredAt time.Time `json:"occurred_at"`
	CameraID   string    `json:"camera_id"`
	CameraName string    `json:"camera_name"`
	ImageURL   string    `json:"image_url"`
	Severity   Severity  `json:"severity"`
}

// Evidence - снимок, привязанный к инциденту
type Evidence struct {
	ID          string    `json:"id"`
	WeaponType  string    `json:"weapon_type"`
	Confidence  float64   `json:"confidence"`
	EvidenceURL string    `json:"evidence_url"`
	CameraID    string    `json:"camera_id"`
	Timestamp   string    `json:"timestamp"`
	OccurredAt  time.Time `json:"occurred_at"`
	Severity    Severity  `json:"severity"`
}
