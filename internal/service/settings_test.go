package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shenikar/armguard_console/internal/models"
)

func newTestSettingsService(t *testing.T) (*settingsService, *testDeps) {
	d := newTestDeps(t)
	svc := NewSettingsService(d.api, d.audit, d.notifier, d.logger)
	return svc.(*settingsService), d
}

func TestSettingsGet_AdminOnly(t *testing.T) {
	service, d := newTestSettingsService(t)
	d.api.EXPECT().GetSettings(gomock.Any()).Return(&models.Settings{MaxFPS: 25}, nil).Times(1)

	_, err := service.Get(context.Background(), operatorActor)
	assert.ErrorIs(t, err, ErrForbidden)

	s, err := service.Get(context.Background(), adminActor)
	require.NoError(t, err)
	assert.Equal(t, 25, s.MaxFPS)
}

func TestSettingsUpdate_Validation(t *testing.T) {
	service, d := newTestSettingsService(t)
	d.api.EXPECT().UpdateSettings(gomock.Any(), gomock.Any()).Times(0)

	low := 0.3
	fps := 90
	frames := 0
	for _, p := range []models.SettingsPatch{
		{ConfidenceThreshold: &low},
		{MaxFPS: &fps},
		{InferEveryNFrames: &frames},
	} {
		_, err := service.Update(context.Background(), adminActor, p)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestSettingsUpdate_PartialPatch(t *testing.T) {
	service, d := newTestSettingsService(t)
	sound := true
	d.api.EXPECT().
		UpdateSettings(gomock.Any(), models.SettingsPatch{SoundAlerts: &sound}).
		Return(&models.Settings{SoundAlerts: true}, nil)
	d.expectAudit("settings.update", models.AuditOutcomeSuccess)

	s, err := service.Update(context.Background(), adminActor, models.SettingsPatch{SoundAlerts: &sound})

	require.NoError(t, err)
	assert.True(t, s.SoundAlerts)
	assert.Equal(t, "Settings saved", d.notifier.last().title)
}

func TestSettingsReset(t *testing.T) {
	service, d := newTestSettingsService(t)
	d.api.EXPECT().
		UpdateSettings(gomock.Any(), gomock.Cond(func(p models.SettingsPatch) bool {
			return p.ConfidenceThreshold != nil && *p.ConfidenceThreshold == 0.75 &&
				p.MaxFPS != nil && *p.MaxFPS == 30 &&
				p.SoundAlerts != nil && !*p.SoundAlerts
		})).
		Return(&DefaultSettings, nil)
	d.expectAudit("settings.update", models.AuditOutcomeSuccess)

	s, err := service.Reset(context.Background(), adminActor)

	require.NoError(t, err)
	assert.Equal(t, 5, s.InferEveryNFrames)
}
