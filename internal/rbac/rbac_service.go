package rbac

import (
	"sync"

	"github.com/skylift/workforce/internal/employee"

	"github.com/casbin/casbin/v2"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	seeded   bool
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{enforcer: enforcer}
}

// rolePolicies is the static permission table. Roles are fixed by the
// employee directory, so there is no per-tenant policy storage: site leads
// inherit worker permissions, managers inherit site-lead permissions.
var rolePolicies = [][3]string{
	{employee.RoleWorker, "leave", "create"},
	{employee.RoleWorker, "leave", "read"},
	{employee.RoleWorker, "leave", "update"},
	{employee.RoleWorker, "leave", "delete"},
	{employee.RoleWorker, "balance", "read"},
	{employee.RoleWorker, "holiday", "read"},
	{employee.RoleWorker, "notification", "read"},
	{employee.RoleWorker, "notification", "update"},

	{employee.RoleSiteLead, "team-leave", "read"},
	{employee.RoleSiteLead, "team-leave", "decide"},
	{employee.RoleSiteLead, "availability", "read"},
}

var roleInheritance = [][2]string{
	{employee.RoleSiteLead, employee.RoleWorker},
	{employee.RoleManager, employee.RoleSiteLead},
}

func (s *service) seedUnlocked() error {
	if s.seeded {
		return nil
	}

	for _, p := range rolePolicies {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	for _, g := range roleInheritance {
		if _, err := s.enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}

	s.seeded = true
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.seedUnlocked(); err != nil {
		return false, err
	}

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
