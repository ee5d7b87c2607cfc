package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clubhub/internal/domain"
)

func TestAuthorizationGate_Authorize(t *testing.T) {
	gate := NewAuthorizationGate(false)

	for _, role := range domain.Roles {
		err := gate.Authorize(role, domain.PermManageRoles)
		if role == domain.RoleAdmin {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, domain.ErrPermissionDenied, role.String())
		}
	}
	assert.NoError(t, gate.Authorize(domain.RoleModerator, domain.PermInviteMembers))
	assert.ErrorIs(t, gate.Authorize(domain.Role(0), domain.PermCreateEvents), domain.ErrPermissionDenied)
}

func TestAuthorizationGate_AuthorizeRankAction(t *testing.T) {
	gate := NewAuthorizationGate(false)
	owner := &domain.Member{UserID: "U1", Role: domain.RoleAdmin, IsOwner: true}

	tests := []struct {
		name   string
		actor  domain.Role
		target *domain.Member
		want   error
	}{
		{"owner is protected from admins", domain.RoleAdmin, owner, domain.ErrOwnerProtected},
		{"owner is protected from moderators", domain.RoleModerator, owner, domain.ErrOwnerProtected},
		{"admin over moderator", domain.RoleAdmin, &domain.Member{Role: domain.RoleModerator}, nil},
		{"moderator over editor", domain.RoleModerator, &domain.Member{Role: domain.RoleEditor}, nil},
		{"moderator over moderator", domain.RoleModerator, &domain.Member{Role: domain.RoleModerator}, domain.ErrPermissionDenied},
		{"moderator over admin", domain.RoleModerator, &domain.Member{Role: domain.RoleAdmin}, domain.ErrPermissionDenied},
		{"admin over non-owner admin", domain.RoleAdmin, &domain.Member{Role: domain.RoleAdmin}, domain.ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.AuthorizeRankAction(tt.actor, tt.target)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthorizationGate_AuthorizeGrant(t *testing.T) {
	bounded := NewAuthorizationGate(true)
	assert.NoError(t, bounded.AuthorizeGrant(domain.RoleModerator, domain.RoleModerator))
	assert.NoError(t, bounded.AuthorizeGrant(domain.RoleModerator, domain.RoleContributor))
	assert.ErrorIs(t, bounded.AuthorizeGrant(domain.RoleModerator, domain.RoleAdmin), domain.ErrPermissionDenied)

	unbounded := NewAuthorizationGate(false)
	assert.NoError(t, unbounded.AuthorizeGrant(domain.RoleModerator, domain.RoleAdmin))
}
