package rbac_test

import (
	"testing"

	"github.com/skylift/workforce/internal/employee"
	"github.com/skylift/workforce/internal/rbac"
	"github.com/skylift/workforce/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func buildRBACService(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer("infra/model.conf")
	assert.NoError(t, err)
	return rbac.NewService(enforcer)
}

func TestRBACService_Enforce(t *testing.T) {
	svc := buildRBACService(t)

	check := func(role, resource, action string) bool {
		t.Helper()
		allowed, err := svc.Enforce(rbac.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		assert.NoError(t, err)
		return allowed
	}

	t.Run("worker manages own leave", func(t *testing.T) {
		assert.True(t, check(employee.RoleWorker, "leave", "create"))
		assert.True(t, check(employee.RoleWorker, "leave", "read"))
		assert.True(t, check(employee.RoleWorker, "leave", "update"))
		assert.True(t, check(employee.RoleWorker, "leave", "delete"))
		assert.True(t, check(employee.RoleWorker, "balance", "read"))
		assert.True(t, check(employee.RoleWorker, "holiday", "read"))
	})

	t.Run("negative worker cannot touch team leave", func(t *testing.T) {
		assert.False(t, check(employee.RoleWorker, "team-leave", "read"))
		assert.False(t, check(employee.RoleWorker, "team-leave", "decide"))
		assert.False(t, check(employee.RoleWorker, "availability", "read"))
	})

	t.Run("site lead inherits worker permissions", func(t *testing.T) {
		assert.True(t, check(employee.RoleSiteLead, "leave", "create"))
		assert.True(t, check(employee.RoleSiteLead, "team-leave", "decide"))
		assert.True(t, check(employee.RoleSiteLead, "availability", "read"))
	})

	t.Run("manager inherits everything", func(t *testing.T) {
		assert.True(t, check(employee.RoleManager, "leave", "create"))
		assert.True(t, check(employee.RoleManager, "team-leave", "read"))
		assert.True(t, check(employee.RoleManager, "team-leave", "decide"))
		assert.True(t, check(employee.RoleManager, "availability", "read"))
	})

	t.Run("negative unknown role is denied", func(t *testing.T) {
		assert.False(t, check("contractor", "leave", "create"))
		assert.False(t, check("", "leave", "read"))
	})

	t.Run("negative unknown resource is denied", func(t *testing.T) {
		assert.False(t, check(employee.RoleManager, "payroll", "read"))
	})
}
