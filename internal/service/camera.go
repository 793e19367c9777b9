package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/normalize"
	"github.com/shenikar/armguard_console/internal/notify"
)

const CameraPageSize = 5

// CameraList - страница камер со сводкой по состояниям
type CameraList struct {
	Page    models.Page[models.Camera] `json:"page"`
	Running int                        `json:"running"`
	Stopped int                        `json:"stopped"`
}

// CameraService определяет контракт управления камерами
type CameraService interface {
	List(ctx context.Context, page, pageSize int) (*CameraList, error)
	Create(ctx context.Context, actor Actor, in models.CameraInput) (*models.Camera, error)
	Update(ctx context.Context, actor Actor, id string, in models.CameraInput) (*models.Camera, error)
	Delete(ctx context.Context, actor Actor, id string) error
	SetRunning(ctx context.Context, actor Actor, id string, running bool) error
	StreamURL(id, token string) string
}

type cameraService struct {
	api Backend
	reporter
	now func() time.Time
}

func NewCameraService(api Backend, audit AuditService, notifier notify.Notifier, logger *logrus.Logger) CameraService {
	return &cameraService{
		api:      api,
		reporter: reporter{audit: audit, notifier: notifier, logger: logger},
		now:      time.Now,
	}
}

func validateCamera(in *models.CameraInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.RTSPURL = strings.TrimSpace(in.RTSPURL)
	if in.Name == "" {
		return invalid("name is required")
	}
	if in.RTSPURL == "" {
		return invalid("rtsp_url is required")
	}
	if in.FPSTarget < 1 || in.FPSTarget > 60 {
		return invalid("fps_target must be between 1 and 60")
	}
	if in.InferEveryNFrames < 1 || in.InferEveryNFrames > 60 {
		return invalid("infer_every_n_frames must be between 1 and 60")
	}
	return nil
}

// List возвращает нормализованные камеры постранично
func (s *cameraService) List(ctx context.Context, page, pageSize int) (*CameraList, error) {
	raw, err := s.api.ListCameras(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "camera",
			"method":  "List",
		}).WithError(err).Error("Failed to list cameras")
		s.notify(notify.LevelError, "Could not load cameras", "")
		return nil, fmt.Errorf("service: could not list cameras: %w", err)
	}

	cameras := normalize.Cameras(raw)
	out := &CameraList{}
	for _, c := range cameras {
		if c.Status == models.CameraRunning {
			out.Running++
		} else {
			out.Stopped++
		}
	}
	if pageSize < 1 {
		pageSize = CameraPageSize
	}
	out.Page = models.Paginate(cameras, page, pageSize)
	return out, nil
}

// Create создает камеру
func (s *cameraService) Create(ctx context.Context, actor Actor, in models.CameraInput) (*models.Camera, error) {
	if err := requireAdmin(actor); err != nil {
		s.notify(notify.LevelError, "You are not allowed to save cameras", "")
		return nil, err
	}
	if err := validateCamera(&in); err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "camera",
		"method":  "Create",
		"name":    in.Name,
	})
	log.Info("Attempting to create a new camera")

	raw, err := s.api.CreateCamera(ctx, in)
	s.outcome(ctx, actor, "camera.create", in.Name, err, "Camera created", "Could not save camera")
	if err != nil {
		log.WithError(err).Error("Failed to create camera")
		return nil, fmt.Errorf("service: could not create camera: %w", err)
	}

	cam := normalize.Camera(raw)
	log.WithField("camera_id", cam.ID).Info("Camera created successfully")
	return &cam, nil
}

// Update отправляет форму камеры целиком
func (s *cameraService) Update(ctx context.Context, actor Actor, id string, in models.CameraInput) (*models.Camera, error) {
	if err := requireAdmin(actor); err != nil {
		s.notify(notify.LevelError, "You are not allowed to edit cameras", "")
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidID
	}
	if err := validateCamera(&in); err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "camera",
		"method":    "Update",
		"camera_id": id,
	})

	patch := map[string]any{
		"name":                 in.Name,
		"rtsp_url":             in.RTSPURL,
		"enabled":              in.Enabled,
		"fps_target":           in.FPSTarget,
		"infer_every_n_frames": in.InferEveryNFrames,
	}
	raw, err := s.api.UpdateCamera(ctx, id, patch)
	s.outcome(ctx, actor, "camera.update", id, err, "Camera updated", "Could not save camera")
	if err != nil {
		log.WithError(err).Error("Failed to update camera")
		return nil, fmt.Errorf("service: could not update camera: %w", err)
	}

	cam := normalize.Camera(raw)
	if cam.ID == "" {
		cam.ID = id
	}
	log.Info("Camera updated successfully")
	return &cam, nil
}

func (s *cameraService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		s.notify(notify.LevelError, "You are not allowed to delete cameras", "")
		return err
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}

	err := s.api.DeleteCamera(ctx, id)
	s.outcome(ctx, actor, "camera.delete", id, err, "Camera deleted", "Could not delete camera")
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":   "camera",
			"method":    "Delete",
			"camera_id": id,
		}).WithError(err).Error("Failed to delete camera")
		return fmt.Errorf("service: could not delete camera: %w", err)
	}
	return nil
}

// SetRunning запускает или останавливает пайплайн камеры
func (s *cameraService) SetRunning(ctx context.Context, actor Actor, id string, running bool) error {
	if err := requireAdmin(actor); err != nil {
		s.notify(notify.LevelError, "You are not allowed to start or stop cameras", "")
		return err
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}

	action, title, call := "camera.stop", "Camera stopped", s.api.StopCamera
	if running {
		action, title, call = "camera.start", "Camera started", s.api.StartCamera
	}

	err := call(ctx, id)
	s.outcome(ctx, actor, action, id, err, title, "Could not change camera state")
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":   "camera",
			"method":    "SetRunning",
			"camera_id": id,
			"running":   running,
		}).WithError(err).Error("Failed to change camera state")
		return fmt.Errorf("service: could not change camera state: %w", err)
	}
	return nil
}

// StreamURL - адрес MJPEG потока; метка времени сбрасывает кеш браузера
func (s *cameraService) StreamURL(id, token string) string {
	return s.api.StreamURL(id, token, s.now().UnixMilli())
}
