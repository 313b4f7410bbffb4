package authz

import "fmt"

// RoleSeed one built-in role definition
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds returns the built-in role matrix. Dispatchers run
// the move lifecycle; support handles customers and their history;
// auditors see everything and touch nothing.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "dispatcher",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/moves", Action: "GET"},
				{Object: "/admin/moves/:id", Action: "GET"},
				{Object: "/admin/moves/:id/approve", Action: "POST"},
				{Object: "/admin/moves/:id/schedule", Action: "POST"},
				{Object: "/admin/moves/:id/start", Action: "POST"},
				{Object: "/admin/moves/:id/complete", Action: "POST"},
				{Object: "/admin/moves/:id/cancel", Action: "POST"},
				{Object: "/admin/moves/:id/tracking", Action: "GET"},
				{Object: "/admin/moves/:id/position", Action: "POST"},
				{Object: "/admin/quotes", Action: "*"},
				{Object: "/admin/quotes/:id", Action: "GET"},
				{Object: "/admin/movers", Action: "*"},
				{Object: "/admin/movers/:id", Action: "*"},
				{Object: "/admin/tracking-events", Action: "GET"},
				{Object: "/admin/performance", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "support",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/moves", Action: "GET"},
				{Object: "/admin/moves/:id", Action: "GET"},
				{Object: "/admin/moves/:id/tracking", Action: "GET"},
				{Object: "/admin/moves/:id/cancel", Action: "POST"},
				{Object: "/admin/users", Action: "GET"},
				{Object: "/admin/users/:id", Action: "GET"},
				{Object: "/admin/users/:id/status", Action: "PATCH"},
				{Object: "/admin/user-login-logs", Action: "GET"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles seeds the built-in roles and their policies
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
			if err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if added {
				changed = true
			}
		}
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}
