package domain

import (
	"fmt"
	"strings"
)

// Permission is a named capability granted to a subset of roles.
type Permission int

// Club permissions. The zero value is not a valid permission.
const (
	PermDeleteClub Permission = iota + 1
	PermManageRoles
	PermInviteMembers
	PermRemoveMembers
	PermCreateEvents
	PermEditAllEvents
	PermDeleteAllEvents
	PermManageClubSettings
	PermViewAnalytics

	permissionCount = int(PermViewAnalytics)
)

// Permissions lists every known permission in declaration order.
var Permissions = []Permission{
	PermDeleteClub,
	PermManageRoles,
	PermInviteMembers,
	PermRemoveMembers,
	PermCreateEvents,
	PermEditAllEvents,
	PermDeleteAllEvents,
	PermManageClubSettings,
	PermViewAnalytics,
}

var permissionNames = map[Permission]string{
	PermDeleteClub:         "canDeleteClub",
	PermManageRoles:        "canManageRoles",
	PermInviteMembers:      "canInviteMembers",
	PermRemoveMembers:      "canRemoveMembers",
	PermCreateEvents:       "canCreateEvents",
	PermEditAllEvents:      "canEditAllEvents",
	PermDeleteAllEvents:    "canDeleteAllEvents",
	PermManageClubSettings: "canManageClubSettings",
	PermViewAnalytics:      "canViewAnalytics",
}

func (p Permission) String() string {
	if name, ok := permissionNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePermission converts a permission name (e.g. "canInviteMembers") to a Permission.
func ParsePermission(s string) (Permission, error) {
	s = strings.TrimSpace(s)
	for p, name := range permissionNames {
		if strings.EqualFold(name, s) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown permission %q", ErrValidation, s)
}

// grants is indexed by [Role][Permission]. Index 0 on both axes is the
// invalid zero value and stays false.
var grants = buildGrants()

func buildGrants() [int(RoleAdmin) + 1][permissionCount + 1]bool {
	var t [int(RoleAdmin) + 1][permissionCount + 1]bool
	allow := func(r Role, perms ...Permission) {
		for _, p := range perms {
			t[r][p] = true
		}
	}
	allow(RoleAdmin,
		PermDeleteClub, PermManageRoles, PermInviteMembers, PermRemoveMembers,
		PermCreateEvents, PermEditAllEvents, PermDeleteAllEvents,
		PermManageClubSettings, PermViewAnalytics)
	allow(RoleModerator,
		PermInviteMembers, PermRemoveMembers, PermCreateEvents,
		PermEditAllEvents, PermDeleteAllEvents, PermViewAnalytics)
	allow(RoleEditor, PermCreateEvents)
	allow(RoleContributor, PermCreateEvents)
	return t
}

// HasPermission reports whether role is granted perm. Unknown roles or
// permissions are denied.
func HasPermission(role Role, perm Permission) bool {
	if !role.Valid() || perm < 1 || int(perm) > permissionCount {
		return false
	}
	return grants[role][perm]
}

// PermissionsFor returns the full grant row for role keyed by permission name.
func PermissionsFor(role Role) map[string]bool {
	out := make(map[string]bool, len(Permissions))
	for _, p := range Permissions {
		out[p.String()] = HasPermission(role, p)
	}
	return out
}
