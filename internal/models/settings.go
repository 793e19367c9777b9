package models

// Settings - пороги детекции и переключатели уведомлений
type Settings struct {
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	AutoAlert           bool    `json:"auto_alert"`
	EmailNotifications  bool    `json:"email_notifications"`
	SoundAlerts         bool    `json:"sound_alerts"`
	SaveEvidence        bool    `json:"save_evidence"`
	MaxFPS              int     `json:"max_fps"`
	InferEveryNFrames   int     `json:"infer_every_n_frames"`
	UpdatedAt           string  `json:"updated_at,omitempty"`
}

// SettingsPatch - частичное обновление, nil поля не отправляются
type SettingsPatch struct {
	ConfidenceThreshold *float64 `json:"confidence_threshold,omitempty"`
	AutoAlert           *bool    `json:"auto_alert,omitempty"`
	EmailNotifications  *bool    `json:"email_notifications,omitempty"`
	SoundAlerts         *bool    `json:"sound_alerts,omitempty"`
	SaveEvidence        *bool    `json:"save_evidence,omitempty"`
	MaxFPS              *int     `json:"max_fps,omitempty"`
	InferEveryNFrames   *int     `json:"infer_every_n_frames,omitempty"`
}
