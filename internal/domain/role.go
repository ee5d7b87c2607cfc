package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is a club member role. Roles are totally ordered by rank.
type Role int

// Club roles, lowest to highest. The zero value is not a valid role.
const (
	RoleContributor Role = iota + 1
	RoleEditor
	RoleModerator
	RoleAdmin
)

// Roles lists every valid role from highest to lowest rank.
var Roles = []Role{RoleAdmin, RoleModerator, RoleEditor, RoleContributor}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r >= RoleContributor && r <= RoleAdmin
}

// Rank returns the position of r in the hierarchy (admin=4 ... contributor=1).
// Unknown roles rank 0 and are outranked by everything.
func (r Role) Rank() int {
	if !r.Valid() {
		return 0
	}
	return int(r)
}

// Outranks reports whether r is strictly higher than other.
func (r Role) Outranks(other Role) bool {
	return r.Rank() > other.Rank()
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleModerator:
		return "moderator"
	case RoleEditor:
		return "editor"
	case RoleContributor:
		return "contributor"
	default:
		return "unknown"
	}
}

// ParseRole converts a role name to a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "moderator":
		return RoleModerator, nil
	case "editor":
		return RoleEditor, nil
	case "contributor":
		return RoleContributor, nil
	default:
		return 0, fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("marshal role: invalid value %d", int(r))
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
