package services

import (
	"fmt"

	"clubhub/internal/domain"
)

// AuthorizationGate decides whether an actor's role may perform an action.
type AuthorizationGate struct {
	// roleCeiling bounds granted roles by the actor's own rank.
	roleCeiling bool
}

// NewAuthorizationGate returns a gate. When roleCeiling is true an actor may
// only invite at, or promote to, roles that do not outrank their own.
func NewAuthorizationGate(roleCeiling bool) *AuthorizationGate {
	return &AuthorizationGate{roleCeiling: roleCeiling}
}

// Authorize returns nil when actorRole is granted perm, ErrPermissionDenied otherwise.
func (g *AuthorizationGate) Authorize(actorRole domain.Role, perm domain.Permission) error {
	if !domain.HasPermission(actorRole, perm) {
		return fmt.Errorf("%w: role %s lacks %s", domain.ErrPermissionDenied, actorRole, perm)
	}
	return nil
}

// AuthorizeRankAction checks that actorRole may act on target. The owner is
// never a valid target; otherwise the actor must strictly outrank the
// target's current role.
func (g *AuthorizationGate) AuthorizeRankAction(actorRole domain.Role, target *domain.Member) error {
	if target.IsOwner {
		return domain.ErrOwnerProtected
	}
	if !actorRole.Outranks(target.Role) {
		return fmt.Errorf("%w: %s does not outrank %s", domain.ErrPermissionDenied, actorRole, target.Role)
	}
	return nil
}

// AuthorizeGrant checks that actorRole may hand out requested.
func (g *AuthorizationGate) AuthorizeGrant(actorRole, requested domain.Role) error {
	if !g.roleCeiling {
		return nil
	}
	if requested.Outranks(actorRole) {
		return fmt.Errorf("%w: %s cannot grant %s", domain.ErrPermissionDenied, actorRole, requested)
	}
	return nil
}
