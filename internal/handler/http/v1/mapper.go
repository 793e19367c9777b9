package v1

import (
	"strings"

	"github.com/shenikar/armguard_console/internal/access"
	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/service"
)

// DTOToCameraInput; незаданные поля формы получают значения по умолчанию (30 fps, каждый 5-й кадр)
func DTOToCameraInput(dto CameraRequest) models.CameraInput {
	in := models.CameraInput{
		Name:              dto.Name,
		RTSPURL:           dto.RTSPURL,
		Enabled:           true,
		FPSTarget:         dto.FPSTarget,
		InferEveryNFrames: dto.InferEveryNFrames,
	}
	if dto.Enabled != nil {
		in.Enabled = *dto.Enabled
	}
	if in.FPSTarget == 0 {
		in.FPSTarget = 30
	}
	if in.InferEveryNFrames == 0 {
		in.InferEveryNFrames = 5
	}
	return in
}

func DTOToUserInput(dto CreateUserRequest) models.UserInput {
	return models.UserInput{
		Name:     dto.Name,
		Email:    dto.Email,
		Password: dto.Password,
		Role:     models.Role(strings.ToLower(dto.Role)),
	}
}

func DTOToUserUpdate(dto UpdateUserRequest) service.UserUpdate {
	return service.UserUpdate{
		Name:  dto.Name,
		Email: dto.Email,
		Role:  models.Role(strings.ToLower(dto.Role)),
	}
}

func DTOToSettingsPatch(dto SettingsRequest) models.SettingsPatch {
	return models.SettingsPatch{
		ConfidenceThreshold: dto.ConfidenceThreshold,
		AutoAlert:           dto.AutoAlert,
		EmailNotifications:  dto.EmailNotifications,
		SoundAlerts:         dto.SoundAlerts,
		SaveEvidence:        dto.SaveEvidence,
		MaxFPS:              dto.MaxFPS,
		InferEveryNFrames:   dto.InferEveryNFrames,
	}
}

// ModelToSessionResponse преобразует сессию в DTO; меню строится по роли
func ModelToSessionResponse(s models.Session, authenticated, loading bool) SessionResponse {
	resp := SessionResponse{
		Authenticated:  authenticated,
		Loading:        loading,
		User:           s.User,
		AllowedModules: s.AllowedModules,
		ExpiresAt:      s.ExpiresAt,
		Modules:        []access.Module{},
	}
	if resp.AllowedModules == nil {
		resp.AllowedModules = []string{}
	}
	if authenticated {
		resp.Modules = access.VisibleModules(s.Role())
	}
	return resp
}
