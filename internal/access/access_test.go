package access

import (
	"testing"

	"github.com/shenikar/armguard_console/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanAccessModule(t *testing.T) {
	for _, id := range []string{ModuleDashboard, ModuleCameras, ModuleIncidents, ModuleEvidence, ModuleAlerts} {
		assert.True(t, CanAccessModule(models.RoleOperator, id), id)
		assert.True(t, CanAccessModule(models.RoleAdmin, id), id)
	}

	assert.False(t, CanAccessModule(models.RoleOperator, ModuleUsers))
	assert.False(t, CanAccessModule(models.RoleOperator, ModuleSettings))
	assert.True(t, CanAccessModule(models.RoleAdmin, ModuleUsers))
	assert.True(t, CanAccessModule(models.RoleAdmin, ModuleSettings))

	assert.False(t, CanAccessModule(models.RoleAdmin, "reports"))
	assert.False(t, CanAccessModule("", ModuleDashboard))
}

func TestVisibleModules(t *testing.T) {
	ids := func(ms []Module) []string {
		out := make([]string, 0, len(ms))
		for _, m := range ms {
			out = append(out, m.ID)
		}
		return out
	}

	assert.Equal(t, []string{"dashboard", "cameras", "incidents", "evidence", "alerts"}, ids(VisibleModules(models.RoleOperator)))
	assert.Len(t, VisibleModules(models.RoleAdmin), 7)
}

func TestNavigator_OperatorDeniedAdminModule(t *testing.T) {
	var denials []Denial
	nav := NewNavigator(func(d Denial) { denials = append(denials, d) })

	active, denied := nav.Activate(models.RoleOperator, ModuleCameras)
	assert.False(t, denied)
	assert.Equal(t, ModuleCameras, active)

	active, denied = nav.Activate(models.RoleOperator, ModuleSettings)
	assert.True(t, denied)
	assert.Equal(t, ModuleDashboard, active)
	assert.Equal(t, ModuleDashboard, nav.Active())
	assert.Len(t, denials, 1)
	assert.Equal(t, ModuleSettings, denials[0].Requested)

	nav.Activate(models.RoleOperator, ModuleUsers)
	assert.Len(t, denials, 2)
}

func TestNavigator_AdminAllowed(t *testing.T) {
	calls := 0
	nav := NewNavigator(func(Denial) { calls++ })

	for _, id := range []string{ModuleUsers, ModuleSettings} {
		active, denied := nav.Activate(models.RoleAdmin, id)
		assert.False(t, denied)
		assert.Equal(t, id, active)
	}
	assert.Zero(t, calls)
}

func TestNavigator_EnforceAfterDemotion(t *testing.T) {
	calls := 0
	nav := NewNavigator(func(Denial) { calls++ })
	nav.Activate(models.RoleAdmin, ModuleUsers)

	assert.Equal(t, ModuleDashboard, nav.Enforce(models.RoleOperator))
	assert.Zero(t, calls)

	nav.Activate(models.RoleAdmin, ModuleAlerts)
	nav.Reset()
	assert.Equal(t, ModuleDashboard, nav.Active())
}
