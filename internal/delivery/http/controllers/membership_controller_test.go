package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clubhub/internal/delivery/http/helpers"
	"clubhub/internal/delivery/http/middleware"
	"clubhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeMembershipService implements domain.MembershipService for handler tests.
type fakeMembershipService struct {
	err error

	createClubResult *domain.Member
	lastClubID       string
	lastFounder      domain.Founder

	members     []*domain.Member
	invitations []*domain.InvitationView

	invitation     *domain.Invitation
	lastEmail      string
	lastRole       domain.Role
	lastActorID    string
	lastInvitation string

	member      *domain.Member
	lastMember  string
	lastInvitee domain.Invitee

	role     domain.Role
	isMember bool
}

func (f *fakeMembershipService) CreateClub(ctx context.Context, clubID string, founder domain.Founder) (*domain.Member, error) {
	f.lastClubID, f.lastFounder = clubID, founder
	if f.err != nil {
		return nil, f.err
	}
	return f.createClubResult, nil
}

func (f *fakeMembershipService) InviteMember(ctx context.Context, clubID, email string, role domain.Role, actorID string) (*domain.Invitation, error) {
	f.lastClubID, f.lastEmail, f.lastRole, f.lastActorID = clubID, email, role, actorID
	if f.err != nil {
		return nil, f.err
	}
	return f.invitation, nil
}

func (f *fakeMembershipService) CancelInvitation(ctx context.Context, clubID, invitationID, actorID string) (*domain.Invitation, error) {
	f.lastClubID, f.lastInvitation, f.lastActorID = clubID, invitationID, actorID
	if f.err != nil {
		return nil, f.err
	}
	return f.invitation, nil
}

func (f *fakeMembershipService) ResendInvitation(ctx context.Context, clubID, invitationID, actorID string) (*domain.Invitation, error) {
	f.lastClubID, f.lastInvitation, f.lastActorID = clubID, invitationID, actorID
	if f.err != nil {
		return nil, f.err
	}
	return f.invitation, nil
}

func (f *fakeMembershipService) AcceptInvitation(ctx context.Context, clubID, invitationID string, invitee domain.Invitee) (*domain.Member, error) {
	f.lastClubID, f.lastInvitation, f.lastInvitee = clubID, invitationID, invitee
	if f.err != nil {
		return nil, f.err
	}
	return f.member, nil
}

func (f *fakeMembershipService) DeclineInvitation(ctx context.Context, clubID, invitationID string, invitee domain.Invitee) (*domain.Invitation, error) {
	f.lastClubID, f.lastInvitation, f.lastInvitee = clubID, invitationID, invitee
	if f.err != nil {
		return nil, f.err
	}
	return f.invitation, nil
}

func (f *fakeMembershipService) ChangeUserRole(ctx context.Context, clubID, memberID string, newRole domain.Role, actorID string) (*domain.Member, error) {
	f.lastClubID, f.lastMember, f.lastRole, f.lastActorID = clubID, memberID, newRole, actorID
	if f.err != nil {
		return nil, f.err
	}
	return f.member, nil
}

func (f *fakeMembershipService) RemoveMember(ctx context.Context, clubID, memberID, actorID string) error {
	f.lastClubID, f.lastMember, f.lastActorID = clubID, memberID, actorID
	return f.err
}

func (f *fakeMembershipService) ListMembers(ctx context.Context, clubID string) ([]*domain.Member, error) {
	f.lastClubID = clubID
	if f.err != nil {
		return nil, f.err
	}
	return f.members, nil
}

func (f *fakeMembershipService) ListInvitations(ctx context.Context, clubID string) ([]*domain.InvitationView, error) {
	f.lastClubID = clubID
	if f.err != nil {
		return nil, f.err
	}
	return f.invitations, nil
}

func (f *fakeMembershipService) GetUserRole(ctx context.Context, clubID, userID string) (domain.Role, bool, error) {
	f.lastClubID, f.lastMember = clubID, userID
	if f.err != nil {
		return 0, false, f.err
	}
	return f.role, f.isMember, nil
}

func (f *fakeMembershipService) HasPermission(role domain.Role, perm domain.Permission) bool {
	return domain.HasPermission(role, perm)
}

var testIdentity = domain.Identity{UserID: "U1", Email: "owner@example.com", Name: "Olive"}

// serve routes one request through a ServeMux so PathValue works. A non-nil id is put on the context.
func serve(t *testing.T, pattern string, h http.HandlerFunc, method, target string, body any, id *domain.Identity) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader = http.NoBody
	if body != nil {
		switch b := body.(type) {
		case string:
			buf = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			buf = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, target, buf)
	if id != nil {
		req = req.WithContext(middleware.SetIdentity(req.Context(), *id))
	}
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *helpers.APIError {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var resp struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Nil(t, resp.Error)
	require.NoError(t, json.Unmarshal(resp.Data, dest))
}

func TestMembershipController_CreateClub(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	owner := domain.NewOwner("C1", "U1", "Olive", "owner@example.com", now)

	tests := []struct {
		name       string
		body       any
		id         *domain.Identity
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"created", CreateClubRequest{ClubID: "C1"}, &testIdentity, nil, http.StatusCreated, ""},
		{"unauthenticated", CreateClubRequest{ClubID: "C1"}, nil, nil, http.StatusUnauthorized, helpers.ErrCodeUnauthorized},
		{"missing club id", CreateClubRequest{}, &testIdentity, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"unknown field", `{"club_id":"C1","owner":"x"}`, &testIdentity, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"club exists", CreateClubRequest{ClubID: "C1"}, &testIdentity, domain.ErrClubExists, http.StatusConflict, helpers.ErrCodeClubExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMembershipService{createClubResult: owner, err: tt.svcErr}
			ctrl := NewMembershipController(testLogger, svc)
			rr := serve(t, "POST /clubs", ctrl.CreateClub, http.MethodPost, "/clubs", tt.body, tt.id)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rr).Code)
				return
			}
			var got domain.Member
			decodeData(t, rr, &got)
			assert.True(t, got.IsOwner)
			assert.Equal(t, domain.RoleAdmin, got.Role)
			assert.Equal(t, "C1", svc.lastClubID)
			assert.Equal(t, domain.Founder{UserID: "U1", DisplayName: "Olive", Email: "owner@example.com"}, svc.lastFounder)
		})
	}
}

func TestMembershipController_ListMembers_paginates(t *testing.T) {
	members := make([]*domain.Member, 0, 5)
	for i := range 5 {
		members = append(members, &domain.Member{ClubID: "C1", UserID: fmt.Sprintf("U%d", i+1), Role: domain.RoleContributor})
	}
	svc := &fakeMembershipService{members: members}
	ctrl := NewMembershipController(testLogger, svc)

	rr := serve(t, "GET /clubs/{clubID}/members", ctrl.ListMembers, http.MethodGet, "/clubs/C1/members?page=2&page_size=2", nil, &testIdentity)

	require.Equal(t, http.StatusOK, rr.Code)
	var data ListMembersResponse
	decodeData(t, rr, &data)
	require.Len(t, data.Items, 2)
	assert.Equal(t, "U3", data.Items[0].UserID)
	assert.Equal(t, "U4", data.Items[1].UserID)
	assert.Equal(t, helpers.NewPaginationMeta(2, 2, 5), data.Pagination)
	assert.Equal(t, "C1", svc.lastClubID)
}

func TestMembershipController_ListInvitations_filters_by_effective_status(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	fresh := domain.NewInvitation("I1", "C1", "a@example.com", domain.RoleEditor, "U1", now.Add(-time.Hour))
	stale := domain.NewInvitation("I2", "C1", "b@example.com", domain.RoleEditor, "U1", now.Add(-8*24*time.Hour))
	svc := &fakeMembershipService{invitations: []*domain.InvitationView{
		domain.NewInvitationView(fresh, now),
		domain.NewInvitationView(stale, now),
	}}
	ctrl := NewMembershipController(testLogger, svc)

	rr := serve(t, "GET /clubs/{clubID}/invitations", ctrl.ListInvitations, http.MethodGet, "/clubs/C1/invitations?status=expired", nil, &testIdentity)

	require.Equal(t, http.StatusOK, rr.Code)
	var data ListInvitationsResponse
	decodeData(t, rr, &data)
	require.Len(t, data.Items, 1)
	assert.Equal(t, "I2", data.Items[0].ID)
	assert.True(t, data.Items[0].Expired)
	assert.Equal(t, domain.InvitationExpired, data.Items[0].EffectiveStatus)
	assert.Equal(t, domain.InvitationPending, data.Items[0].Status)
	assert.Equal(t, 1, data.Pagination.Total)
}

func TestMembershipController_GetUserRole(t *testing.T) {
	t.Run("member", func(t *testing.T) {
		svc := &fakeMembershipService{role: domain.RoleModerator, isMember: true}
		ctrl := NewMembershipController(testLogger, svc)
		rr := serve(t, "GET /clubs/{clubID}/members/{userID}/role", ctrl.GetUserRole, http.MethodGet, "/clubs/C1/members/U2/role", nil, &testIdentity)

		require.Equal(t, http.StatusOK, rr.Code)
		var data UserRoleResponse
		decodeData(t, rr, &data)
		assert.True(t, data.IsMember)
		assert.Equal(t, "moderator", data.Role)
		assert.True(t, data.Permissions["canInviteMembers"])
		assert.False(t, data.Permissions["canManageRoles"])
		assert.Equal(t, "U2", svc.lastMember)
	})
	t.Run("not a member", func(t *testing.T) {
		svc := &fakeMembershipService{}
		ctrl := NewMembershipController(testLogger, svc)
		rr := serve(t, "GET /clubs/{clubID}/members/{userID}/role", ctrl.GetUserRole, http.MethodGet, "/clubs/C1/members/U9/role", nil, &testIdentity)

		require.Equal(t, http.StatusOK, rr.Code)
		var data UserRoleResponse
		decodeData(t, rr, &data)
		assert.False(t, data.IsMember)
		assert.Empty(t, data.Role)
		assert.Empty(t, data.Permissions)
	})
	t.Run("single permission", func(t *testing.T) {
		svc := &fakeMembershipService{role: domain.RoleEditor, isMember: true}
		ctrl := NewMembershipController(testLogger, svc)
		rr := serve(t, "GET /clubs/{clubID}/members/{userID}/role", ctrl.GetUserRole, http.MethodGet, "/clubs/C1/members/U3/role?permission=caninvitemembers", nil, &testIdentity)

		require.Equal(t, http.StatusOK, rr.Code)
		var data UserRoleResponse
		decodeData(t, rr, &data)
		assert.Equal(t, map[string]bool{"canInviteMembers": false}, data.Permissions)
	})
	t.Run("unknown permission", func(t *testing.T) {
		svc := &fakeMembershipService{role: domain.RoleEditor, isMember: true}
		ctrl := NewMembershipController(testLogger, svc)
		rr := serve(t, "GET /clubs/{clubID}/members/{userID}/role", ctrl.GetUserRole, http.MethodGet, "/clubs/C1/members/U3/role?permission=canFly", nil, &testIdentity)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, helpers.ErrCodeValidation, decodeError(t, rr).Code)
		assert.Empty(t, svc.lastMember)
	})
}

func TestMembershipController_ChangeUserRole(t *testing.T) {
	updated := &domain.Member{ClubID: "C1", UserID: "U2", Role: domain.RoleEditor}
	tests := []struct {
		name       string
		body       any
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"changed", ChangeRoleRequest{Role: "editor"}, nil, http.StatusOK, ""},
		{"missing role", ChangeRoleRequest{}, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"unknown role", ChangeRoleRequest{Role: "owner"}, nil, http.StatusBadRequest, helpers.ErrCodeValidation},
		{"owner protected", ChangeRoleRequest{Role: "editor"}, domain.ErrOwnerProtected, http.StatusForbidden, helpers.ErrCodeOwnerProtected},
		{"permission denied", ChangeRoleRequest{Role: "editor"}, fmt.Errorf("%w: nope", domain.ErrPermissionDenied), http.StatusForbidden, helpers.ErrCodePermissionDenied},
		{"member not found", ChangeRoleRequest{Role: "editor"}, domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMembershipService{member: updated, err: tt.svcErr}
			ctrl := NewMembershipController(testLogger, svc)
			rr := serve(t, "PATCH /clubs/{clubID}/members/{userID}/role", ctrl.ChangeUserRole, http.MethodPatch, "/clubs/C1/members/U2/role", tt.body, &testIdentity)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rr).Code)
				return
			}
			assert.Equal(t, domain.RoleEditor, svc.lastRole)
			assert.Equal(t, "U2", svc.lastMember)
			assert.Equal(t, "U1", svc.lastActorID)
		})
	}
}

func TestMembershipController_RemoveMember(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		svc := &fakeMembershipService{}
		ctrl := NewMembershipController(testLogger, svc)
		rr := serve(t, "DELETE /clubs/{clubID}/members/{userID}", ctrl.RemoveMember, http.MethodDelete, "/clubs/C1/members/U2", nil, &testIdentity)

		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "U2", svc.lastMember)
		assert.Equal(t, "U1", svc.lastActorID)
	})
	t.Run("unavailable hides cause", func(t *testing.T) {
		svc := &fakeMembershipService{err: fmt.Errorf("%w: remove member: %w", domain.ErrUnavailable, errors.New("dial tcp 10.0.0.1:5432"))}
		ctrl := NewMembershipController(testLogger, svc)
		rr := serve(t, "DELETE /clubs/{clubID}/members/{userID}", ctrl.RemoveMember, http.MethodDelete, "/clubs/C1/members/U2", nil, &testIdentity)

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		apiErr := decodeError(t, rr)
		assert.Equal(t, helpers.ErrCodeUnavailable, apiErr.Code)
		assert.NotContains(t, apiErr.Message, "10.0.0.1")
	})
	t.Run("unexpected error is 500", func(t *testing.T) {
		svc := &fakeMembershipService{err: errors.New("boom")}
		ctrl := NewMembershipController(testLogger, svc)
		rr := serve(t, "DELETE /clubs/{clubID}/members/{userID}", ctrl.RemoveMember, http.MethodDelete, "/clubs/C1/members/U2", nil, &testIdentity)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, helpers.ErrCodeInternalError, decodeError(t, rr).Code)
	})
}

func TestMembershipController_InviteMember(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inv := domain.NewInvitation("I1", "C1", "new@example.com", domain.RoleEditor, "U1", now)

	tests := []struct {
		name       string
		body       any
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"created", InviteMemberRequest{Email: "new@example.com", Role: "editor"}, nil, http.StatusCreated, ""},
		{"missing fields", InviteMemberRequest{}, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"bad role", InviteMemberRequest{Email: "new@example.com", Role: "superuser"}, nil, http.StatusBadRequest, helpers.ErrCodeValidation},
		{"duplicate", InviteMemberRequest{Email: "new@example.com", Role: "editor"}, domain.ErrDuplicateInvitation, http.StatusConflict, helpers.ErrCodeDuplicateInvitation},
		{"already member", InviteMemberRequest{Email: "new@example.com", Role: "editor"}, domain.ErrAlreadyMember, http.StatusConflict, helpers.ErrCodeAlreadyMember},
		{"invalid email", InviteMemberRequest{Email: "nope", Role: "editor"}, fmt.Errorf("%w: invalid email format", domain.ErrValidation), http.StatusBadRequest, helpers.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMembershipService{invitation: inv, err: tt.svcErr}
			ctrl := NewMembershipController(testLogger, svc)
			rr := serve(t, "POST /clubs/{clubID}/invitations", ctrl.InviteMember, http.MethodPost, "/clubs/C1/invitations", tt.body, &testIdentity)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rr).Code)
				return
			}
			var got domain.Invitation
			decodeData(t, rr, &got)
			assert.Equal(t, "I1", got.ID)
			assert.Equal(t, domain.InvitationPending, got.Status)
			assert.True(t, now.Add(domain.InvitationTTL).Equal(got.ExpiresAt))
			assert.Equal(t, "new@example.com", svc.lastEmail)
			assert.Equal(t, domain.RoleEditor, svc.lastRole)
		})
	}
}

func TestMembershipController_InvitationActions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inv := domain.NewInvitation("I1", "C1", "new@example.com", domain.RoleEditor, "U1", now)
	joined := &domain.Member{ClubID: "C1", UserID: "U3", Email: "new@example.com", Role: domain.RoleEditor}
	invitee := domain.Identity{UserID: "U3", Email: "new@example.com", Name: "Nia"}

	tests := []struct {
		name       string
		action     string
		handler    func(*MembershipController) http.HandlerFunc
		id         domain.Identity
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"cancel", "cancel", func(c *MembershipController) http.HandlerFunc { return c.CancelInvitation }, testIdentity, nil, http.StatusOK, ""},
		{"cancel unknown", "cancel", func(c *MembershipController) http.HandlerFunc { return c.CancelInvitation }, testIdentity, domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
		{"resend", "resend", func(c *MembershipController) http.HandlerFunc { return c.ResendInvitation }, testIdentity, nil, http.StatusOK, ""},
		{"resend duplicate", "resend", func(c *MembershipController) http.HandlerFunc { return c.ResendInvitation }, testIdentity, domain.ErrDuplicateInvitation, http.StatusConflict, helpers.ErrCodeDuplicateInvitation},
		{"accept", "accept", func(c *MembershipController) http.HandlerFunc { return c.AcceptInvitation }, invitee, nil, http.StatusCreated, ""},
		{"accept expired", "accept", func(c *MembershipController) http.HandlerFunc { return c.AcceptInvitation }, invitee, domain.ErrInvitationExpired, http.StatusGone, helpers.ErrCodeInvitationExpired},
		{"decline", "decline", func(c *MembershipController) http.HandlerFunc { return c.DeclineInvitation }, invitee, nil, http.StatusOK, ""},
		{"decline wrong user", "decline", func(c *MembershipController) http.HandlerFunc { return c.DeclineInvitation }, testIdentity, domain.ErrPermissionDenied, http.StatusForbidden, helpers.ErrCodePermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeMembershipService{invitation: inv, member: joined, err: tt.svcErr}
			ctrl := NewMembershipController(testLogger, svc)
			pattern := "POST /clubs/{clubID}/invitations/{invitationID}/" + tt.action
			target := "/clubs/C1/invitations/I1/" + tt.action
			id := tt.id
			rr := serve(t, pattern, tt.handler(ctrl), http.MethodPost, target, nil, &id)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rr).Code)
				return
			}
			assert.Equal(t, "C1", svc.lastClubID)
			assert.Equal(t, "I1", svc.lastInvitation)
			switch tt.action {
			case "accept", "decline":
				assert.Equal(t, domain.Invitee{UserID: "U3", DisplayName: "Nia", Email: "new@example.com"}, svc.lastInvitee)
			default:
				assert.Equal(t, "U1", svc.lastActorID)
			}
		})
	}
}

func TestMembershipController_GetRolePermissions(t *testing.T) {
	ctrl := NewMembershipController(testLogger, &fakeMembershipService{})

	t.Run("admin", func(t *testing.T) {
		rr := serve(t, "GET /roles/{role}/permissions", ctrl.GetRolePermissions, http.MethodGet, "/roles/admin/permissions", nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var data RolePermissionsResponse
		decodeData(t, rr, &data)
		assert.Equal(t, "admin", data.Role)
		assert.Equal(t, 4, data.Rank)
		assert.Len(t, data.Permissions, len(domain.Permissions))
		for name, granted := range data.Permissions {
			assert.True(t, granted, name)
		}
	})
	t.Run("contributor", func(t *testing.T) {
		rr := serve(t, "GET /roles/{role}/permissions", ctrl.GetRolePermissions, http.MethodGet, "/roles/Contributor/permissions", nil, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var data RolePermissionsResponse
		decodeData(t, rr, &data)
		assert.Equal(t, map[string]bool{
			"canDeleteClub":         false,
			"canManageRoles":        false,
			"canInviteMembers":      false,
			"canRemoveMembers":      false,
			"canCreateEvents":       true,
			"canEditAllEvents":      false,
			"canDeleteAllEvents":    false,
			"canManageClubSettings": false,
			"canViewAnalytics":      false,
		}, data.Permissions)
	})
	t.Run("unknown role", func(t *testing.T) {
		rr := serve(t, "GET /roles/{role}/permissions", ctrl.GetRolePermissions, http.MethodGet, "/roles/owner/permissions", nil, nil)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, helpers.ErrCodeValidation, decodeError(t, rr).Code)
	})
}
