package models

// CameraStatus - состояние пайплайна камеры
type CameraStatus string

const (
	CameraRunning CameraStatus = "RUNNING"
	CameraStopped CameraStatus = "STOPPED"
)

type Camera struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	RTSPURL           string       `json:"rtsp_url"`
	Enabled           bool         `json:"enabled"`
	FPSTarget         int          `json:"fps_target"`
	InferEveryNFrames int          `json:"infer_every_n_frames"`
	Status            CameraStatus `json:"status"`
}

// CameraInput - тело создания/обновления камеры, уходящее в backend
type CameraInput struct {
	Name              string `json:"name"`
	RTSPURL           string `json:"rtsp_url"`
	Enabled           bool   `json:"enabled"`
	FPSTarget         int    `json:"fps_target"`
	InferEveryNFrames int    `json:"infer_every_n_frames"`
}
