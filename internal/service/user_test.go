package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shenikar/armguard_console/internal/models"
)

const otherUserID = "cccccccccccccccccccccccc"

func newTestUserService(t *testing.T) (*userService, *testDeps) {
	d := newTestDeps(t)
	svc := NewUserService(d.api, d.audit, d.notifier, d.logger)
	return svc.(*userService), d
}

func rawUsers() []map[string]any {
	return []map[string]any{
		{"_id": otherUserID, "name": "Zed", "email": "zed@x.io", "role": "operator", "estado": 0},
		{"_id": adminActor.ID, "name": "Root", "email": "root@x.io", "role": "admin", "estado": 1},
		{"_id": "dddddddddddddddddddddddd", "name": "Amy", "email": "amy@x.io", "role": "operator"},
	}
}

func TestUserList_SortsFiltersAndCounts(t *testing.T) {
	// Подготовка
	service, d := newTestUserService(t)
	d.api.EXPECT().ListUsers(gomock.Any(), userFetchLimit).Return(rawUsers(), nil).Times(2)

	// Действие
	all, err := service.List(context.Background(), adminActor, UserQuery{})
	require.NoError(t, err)
	found, err := service.List(context.Background(), adminActor, UserQuery{Search: "ZED"})
	require.NoError(t, err)

	// Проверки
	require.Len(t, all.Page.Items, 3)
	assert.Equal(t, "root@x.io", all.Page.Items[0].Email, "admins first")
	assert.Equal(t, "amy@x.io", all.Page.Items[1].Email)
	assert.Equal(t, models.UserStats{Total: 3, Admins: 1, Active: 2, Inactive: 1}, all.Stats)

	require.Len(t, found.Page.Items, 1)
	assert.Equal(t, 3, found.Stats.Total, "stats ignore the search")
}

func TestUserList_OperatorForbidden(t *testing.T) {
	service, _ := newTestUserService(t)
	_, err := service.List(context.Background(), operatorActor, UserQuery{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserCreate_Validation(t *testing.T) {
	service, d := newTestUserService(t)
	d.api.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)
	ctx := context.Background()

	cases := []models.UserInput{
		{Name: " A ", Email: "a@x.io", Password: "secret"},
		{Name: "Ann", Email: "not-an-email", Password: "secret"},
		{Name: "Ann", Email: "ann@x.io", Password: "12345"},
		{Name: "Ann", Email: "ann@x.io", Password: "secret", Role: "root"},
	}
	for _, in := range cases {
		_, err := service.Create(ctx, adminActor, in)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", in)
	}
}

func TestUserCreate_NormalizesIdentity(t *testing.T) {
	service, d := newTestUserService(t)
	d.api.EXPECT().CreateUser(gomock.Any(), models.UserInput{
		Name: "Ann", Email: "ann@x.io", Password: "secret", Role: models.RoleOperator,
	}).Return(map[string]any{"_id": "u1", "name": "Ann", "email": "ann@x.io"}, nil)
	d.expectAudit("user.create", models.AuditOutcomeSuccess)

	u, err := service.Create(context.Background(), adminActor, models.UserInput{
		Name: "  Ann ", Email: " ANN@X.IO ", Password: "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestUserSelfGuards(t *testing.T) {
	service, d := newTestUserService(t)
	ctx := context.Background()
	d.api.EXPECT().SetUserEstado(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	d.api.EXPECT().SetUserRole(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	d.api.EXPECT().DeleteUser(gomock.Any(), gomock.Any()).Times(0)

	assert.ErrorIs(t, service.SetActive(ctx, adminActor, adminActor.ID, false), ErrSelfAction)
	assert.ErrorIs(t, service.SetRole(ctx, adminActor, adminActor.ID, models.RoleOperator), ErrSelfAction)
	assert.ErrorIs(t, service.Delete(ctx, adminActor, adminActor.ID), ErrSelfAction)

	_, err := service.Update(ctx, adminActor, adminActor.ID, UserUpdate{Name: "Root", Email: "root@x.io", Role: models.RoleOperator})
	assert.ErrorIs(t, err, ErrSelfAction)
}

func TestUserSelfActivateAllowed(t *testing.T) {
	service, d := newTestUserService(t)
	d.api.EXPECT().SetUserEstado(gomock.Any(), adminActor.ID, true).Return(nil)
	d.expectAudit("user.activate", models.AuditOutcomeSuccess)

	require.NoError(t, service.SetActive(context.Background(), adminActor, adminActor.ID, true))
}

func TestUserDelete_RequiresObjectID(t *testing.T) {
	service, d := newTestUserService(t)
	d.api.EXPECT().DeleteUser(gomock.Any(), "42").Times(0)

	err := service.Delete(context.Background(), adminActor, "42")

	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestUserDelete_Success(t *testing.T) {
	service, d := newTestUserService(t)
	d.api.EXPECT().DeleteUser(gomock.Any(), otherUserID).Return(nil)
	d.expectAudit("user.delete", models.AuditOutcomeSuccess)

	require.NoError(t, service.Delete(context.Background(), adminActor, otherUserID))
}

func TestUserUpdate_RoleChangeSentSeparately(t *testing.T) {
	// Подготовка
	service, d := newTestUserService(t)
	ctx := context.Background()

	// Ожидания
	d.api.EXPECT().ListUsers(gomock.Any(), userFetchLimit).Return(rawUsers(), nil).Times(2)
	gomock.InOrder(
		d.api.EXPECT().UpdateUser(gomock.Any(), otherUserID, map[string]any{"name": "Zed", "email": "zed@x.io"}).
			Return(map[string]any{"_id": otherUserID, "name": "Zed", "email": "zed@x.io", "role": "operator"}, nil),
		d.api.EXPECT().SetUserRole(gomock.Any(), otherUserID, models.RoleAdmin).Return(nil),
	)
	d.api.EXPECT().UpdateUser(gomock.Any(), otherUserID, gomock.Any()).Return(map[string]any{}, nil)
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	// Действие
	promoted, err := service.Update(ctx, adminActor, otherUserID, UserUpdate{Name: "Zed", Email: "ZED@x.io", Role: models.RoleAdmin})
	require.NoError(t, err)
	same, err := service.Update(ctx, adminActor, otherUserID, UserUpdate{Name: "Zed", Email: "zed@x.io", Role: models.RoleOperator})
	require.NoError(t, err)

	// Проверки
	assert.Equal(t, models.RoleAdmin, promoted.Role)
	assert.Equal(t, otherUserID, same.ID)
	assert.False(t, same.Active, "falls back to the listed user")
}

func TestUserUpdate_UnknownUser(t *testing.T) {
	service, d := newTestUserService(t)
	d.api.EXPECT().ListUsers(gomock.Any(), userFetchLimit).Return(rawUsers(), nil)

	_, err := service.Update(context.Background(), adminActor, "eeeeeeeeeeeeeeeeeeeeeeee", UserUpdate{Name: "Eve", Email: "eve@x.io"})

	assert.ErrorIs(t, err, ErrNotFound)
}
