package domain

import "slices"

// RouteAuthPolicy declares which roles may access a route. The policy is
// attached at route registration time and read-only afterwards. An empty
// Roles set means any authenticated principal is allowed.
type RouteAuthPolicy struct {
	Roles []Role
}

// AnyAuthenticated returns a policy that admits every authenticated principal.
func AnyAuthenticated() RouteAuthPolicy {
	return RouteAuthPolicy{}
}

// RequireRoles returns a policy that admits only principals holding one of
// the given roles.
func RequireRoles(roles ...Role) RouteAuthPolicy {
	return RouteAuthPolicy{Roles: roles}
}

// Allows reports whether a principal with the given role satisfies the
// policy. Pure function of (role, policy); no I/O, no mutation.
func (p RouteAuthPolicy) Allows(role Role) bool {
	if len(p.Roles) == 0 {
		return true
	}
	return slices.Contains(p.Roles, role)
}
