package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"clubhub/internal/delivery/http/helpers"
	"clubhub/internal/delivery/http/middleware"
	"clubhub/internal/domain"
)

type MembershipController struct {
	Logger  *slog.Logger
	Service domain.MembershipService
}

func NewMembershipController(logger *slog.Logger, svc domain.MembershipService) *MembershipController {
	return &MembershipController{
		Logger:  logger,
		Service: svc,
	}
}

// fail writes the mapped domain error, or logs and writes 500 for anything else.
func (c *MembershipController) fail(w http.ResponseWriter, r *http.Request, err error) {
	if helpers.WriteDomainError(w, err) {
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
}

func (c *MembershipController) identity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok || id.UserID == "" {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return domain.Identity{}, false
	}
	return id, true
}

// pathValues reads the named path parameters, writing 400 for the first missing one.
func pathValues(w http.ResponseWriter, r *http.Request, names ...string) ([]string, bool) {
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = r.PathValue(name)
		if values[i] == "" {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
			return nil, false
		}
	}
	return values, true
}

// CreateClubRequest is the request body for POST /clubs.
type CreateClubRequest struct {
	ClubID      string `json:"club_id"`
	DisplayName string `json:"display_name"`
}

// Validate implements Validator.
func (c CreateClubRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.ClubID) == "" {
		errs = append(errs, "club_id is required")
	}
	return errs
}

// MemberSuccessResponse is the success response envelope for endpoints returning a member.
type MemberSuccessResponse struct {
	Data  *domain.Member    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateClub godoc
// @Summary Create a club
// @Description Registers a new club roster. The authenticated user becomes its owner with the admin role.
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param club body CreateClubRequest true "Club ID and the owner's display name"
// @Success 201 {object} controllers.MemberSuccessResponse "data contains the owner membership"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: club_exists"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /clubs [post]
func (c *MembershipController) CreateClub(w http.ResponseWriter, r *http.Request) {
	id, ok := c.identity(w, r)
	if !ok {
		return
	}
	var req CreateClubRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	displayName := req.DisplayName
	if displayName == "" {
		displayName = id.Name
	}
	owner, err := c.Service.CreateClub(r.Context(), strings.TrimSpace(req.ClubID), domain.Founder{
		UserID:      id.UserID,
		DisplayName: displayName,
		Email:       id.Email,
	})
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, owner)
}

// ListMembersResponse is the data payload for GET /clubs/{clubID}/members.
type ListMembersResponse struct {
	Items      []*domain.Member       `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListMembersSuccessResponse is the success response envelope for GET /clubs/{clubID}/members (200).
type ListMembersSuccessResponse struct {
	Data  ListMembersResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListMembers godoc
// @Summary List club members
// @Description Returns the club roster in join order, paginated. An unknown club yields an empty list.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListMembersSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /clubs/{clubID}/members [get]
func (c *MembershipController) ListMembers(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.identity(w, r); !ok {
		return
	}
	p, ok := pathValues(w, r, "clubID")
	if !ok {
		return
	}
	members, err := c.Service.ListMembers(r.Context(), p[0])
	if err != nil {
		c.fail(w, r, err)
		return
	}
	params := helpers.ParsePagination(r)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListMembersResponse{
		Items:      helpers.Paginate(members, params),
		Pagination: helpers.NewPaginationMeta(params.Number, params.Size, len(members)),
	})
}

// UserRoleResponse is the data payload for GET /clubs/{clubID}/members/{userID}/role.
// Role is empty when IsMember is false.
type UserRoleResponse struct {
	UserID      string          `json:"user_id"`
	IsMember    bool            `json:"is_member"`
	Role        string          `json:"role,omitempty"`
	Permissions map[string]bool `json:"permissions"`
}

// UserRoleSuccessResponse is the success response envelope for GET /clubs/{clubID}/members/{userID}/role (200).
type UserRoleSuccessResponse struct {
	Data  UserRoleResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetUserRole godoc
// @Summary Get a user's role in a club
// @Description Returns the user's role and resolved permissions. Non-members are reported with is_member=false and no permissions.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID"
// @Param userID path string true "User ID"
// @Param permission query string false "Only report this permission, e.g. canInviteMembers"
// @Success 200 {object} controllers.UserRoleSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /clubs/{clubID}/members/{userID}/role [get]
func (c *MembershipController) GetUserRole(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.identity(w, r); !ok {
		return
	}
	p, ok := pathValues(w, r, "clubID", "userID")
	if !ok {
		return
	}
	var only *domain.Permission
	if name := r.URL.Query().Get("permission"); name != "" {
		perm, err := domain.ParsePermission(name)
		if err != nil {
			c.fail(w, r, err)
			return
		}
		only = &perm
	}
	role, isMember, err := c.Service.GetUserRole(r.Context(), p[0], p[1])
	if err != nil {
		c.fail(w, r, err)
		return
	}
	resp := UserRoleResponse{UserID: p[1], IsMember: isMember, Permissions: map[string]bool{}}
	if isMember {
		resp.Role = role.String()
		if only != nil {
			resp.Permissions[only.String()] = c.Service.HasPermission(role, *only)
		} else {
			resp.Permissions = domain.PermissionsFor(role)
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// ChangeRoleRequest is the request body for PATCH /clubs/{clubID}/members/{userID}/role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// Validate implements Validator.
func (c ChangeRoleRequest) Validate() []string {
	if strings.TrimSpace(c.Role) == "" {
		return []string{"role is required"}
	}
	return nil
}

// ChangeUserRole godoc
// @Summary Change a member's role
// @Description Requires canManageRoles and a rank above the member's current role. The owner cannot be changed.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID"
// @Param userID path string true "User ID of the member"
// @Param body body ChangeRoleRequest true "New role"
// @Success 200 {object} controllers.MemberSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied or owner_protected"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /clubs/{clubID}/members/{userID}/role [patch]
func (c *MembershipController) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := c.identity(w, r)
	if !ok {
		return
	}
	p, ok := pathValues(w, r, "clubID", "userID")
	if !ok {
		return
	}
	var req ChangeRoleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	member, err := c.Service.ChangeUserRole(r.Context(), p[0], p[1], role, id.UserID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, member)
}

// RemoveMember godoc
// @Summary Remove a member
// @Description Requires canRemoveMembers and a rank above the member's role. The owner cannot be removed.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID"
// @Param userID path string true "User ID of the member"
// @Success 204 "No Content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied or owner_protected"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /clubs/{clubID}/members/{userID} [delete]
func (c *MembershipController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := c.identity(w, r)
	if !ok {
		return
	}
	p, ok := pathValues(w, r, "clubID", "userID")
	if !ok {
		return
	}
	if err := c.Service.RemoveMember(r.Context(), p[0], p[1], id.UserID); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListInvitationsResponse is the data payload for GET /clubs/{clubID}/invitations.
type ListInvitationsResponse struct {
	Items      []*domain.InvitationView `json:"items"`
	Pagination helpers.PaginationMeta   `json:"pagination"`
}

// ListInvitationsSuccessResponse is the success response envelope for GET /clubs/{clubID}/invitations (200).
type ListInvitationsSuccessResponse struct {
	Data  ListInvitationsResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// ListInvitations godoc
// @Summary List club invitations
// @Description Returns every invitation of the club with its effective status. Lapsed pending invitations are reported as expired. Optional status filter matches the effective status.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID"
// @Param status query string false "Filter by effective status (pending, accepted, declined, cancelled, expired)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListInvitationsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /clubs/{clubID}/invitations [get]
func (c *MembershipController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.identity(w, r); !ok {
		return
	}
	p, ok := pathValues(w, r, "clubID")
	if !ok {
		return
	}
	views, err := c.Service.ListInvitations(r.Context(), p[0])
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))); status != "" {
		filtered := make([]*domain.InvitationView, 0, len(views))
		for _, v := range views {
			if string(v.EffectiveStatus) == status {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}
	params := helpers.ParsePagination(r)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListInvitationsResponse{
		Items:      helpers.Paginate(views, params),
		Pagination: helpers.NewPaginationMeta(params.Number, params.Size, len(views)),
	})
}

// InviteMemberRequest is the request body for POST /clubs/{clubID}/invitations.
type InviteMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Validate implements Validator.
func (c InviteMemberRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(c.Role) == "" {
		errs = append(errs, "role is required")
	}
	return errs
}

// InvitationSuccessResponse is the success response envelope for endpoints returning an invitation.
type InvitationSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// InviteMember godoc
// @Summary Invite a user to a club
// @Description Creates a pending invitation valid for 7 days and emails the invitee. Requires canInviteMembers.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID"
// @Param body body InviteMemberRequest true "Invitee email and role"
// @Success 201 {object} controllers.InvitationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied"
// @Failure 409 {object} helpers.APIResponse "error.code: already_member or duplicate_invitation"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /clubs/{clubID}/invitations [post]
func (c *MembershipController) InviteMember(w http.ResponseWriter, r *http.Request) {
	id, ok := c.identity(w, r)
	if !ok {
		return
	}
	p, ok := pathValues(w, r, "clubID")
	if !ok {
		return
	}
	var req InviteMemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	inv, err := c.Service.InviteMember(r.Context(), p[0], req.Email, role, id.UserID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, inv)
}

// CancelInvitation godoc
// @Summary Cancel an invitation
// @Description Marks the invitation cancelled. Requires canInviteMembers.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID"
// @Param invitationID path string true "Invitation ID"
// @Success 200 {object} controllers.InvitationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /clubs/{clubID}/invitations/{invitationID}/cancel [post]
func (c *MembershipController) CancelInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := c.identity(w, r)
	if !ok {
		return
	}
	p, ok := pathValues(w, r, "clubID", "invitationID")
	if !ok {
		return
	}
	inv, err := c.Service.CancelInvitation(r.Context(), p[0], p[1], id.UserID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// ResendInvitation godoc
// @Summary Resend an invitation
// @Description Restarts the 7-day window, sets the invitation back to pending and emails it again. Requires canInviteMembers.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID"
// @Param invitationID path string true "Invitation ID"
// @Success 200 {object} controllers.InvitationSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_member or duplicate_invitation"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /clubs/{clubID}/invitations/{invitationID}/resend [post]
func (c *MembershipController) ResendInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := c.identity(w, r)
	if !ok {
		return
	}
	p, ok := pathValues(w, r, "clubID", "invitationID")
	if !ok {
		return
	}
	inv, err := c.Service.ResendInvitation(r.Context(), p[0], p[1], id.UserID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

func invitee(id domain.Identity) domain.Invitee {
	return domain.Invitee{UserID: id.UserID, DisplayName: id.Name, Email: id.Email}
}

// AcceptInvitation godoc
// @Summary Accept an invitation
// @Description The authenticated user joins the club at the invited role. The token email must match the invitation.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID"
// @Param invitationID path string true "Invitation ID"
// @Success 201 {object} controllers.MemberSuccessResponse "data contains the new membership"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_member"
// @Failure 410 {object} helpers.APIResponse "error.code: invitation_expired"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /clubs/{clubID}/invitations/{invitationID}/accept [post]
func (c *MembershipController) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := c.identity(w, r)
	if !ok {
		return
	}
	p, ok := pathValues(w, r, "clubID", "invitationID")
	if !ok {
		return
	}
	member, err := c.Service.AcceptInvitation(r.Context(), p[0], p[1], invitee(id))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, member)
}

// DeclineInvitation godoc
// @Summary Decline an invitation
// @Description Marks a pending invitation declined. The token email must match the invitation.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param clubID path string true "Club ID"
// @Param invitationID path string true "Invitation ID"
// @Success 200 {object} controllers.InvitationSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: permission_denied"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /clubs/{clubID}/invitations/{invitationID}/decline [post]
func (c *MembershipController) DeclineInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := c.identity(w, r)
	if !ok {
		return
	}
	p, ok := pathValues(w, r, "clubID", "invitationID")
	if !ok {
		return
	}
	inv, err := c.Service.DeclineInvitation(r.Context(), p[0], p[1], invitee(id))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// RolePermissionsResponse is the data payload for GET /roles/{role}/permissions.
type RolePermissionsResponse struct {
	Role        string          `json:"role"`
	Rank        int             `json:"rank"`
	Permissions map[string]bool `json:"permissions"`
}

// RolePermissionsSuccessResponse is the success response envelope for GET /roles/{role}/permissions (200).
type RolePermissionsSuccessResponse struct {
	Data  RolePermissionsResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// GetRolePermissions godoc
// @Summary Get the permissions of a role
// @Description Returns every permission and whether the role is granted it. Public.
// @Tags roles
// @Produce json
// @Param role path string true "Role name" Enums(admin, moderator, editor, contributor)
// @Success 200 {object} controllers.RolePermissionsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Router /roles/{role}/permissions [get]
func (c *MembershipController) GetRolePermissions(w http.ResponseWriter, r *http.Request) {
	p, ok := pathValues(w, r, "role")
	if !ok {
		return
	}
	role, err := domain.ParseRole(p[0])
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RolePermissionsResponse{
		Role:        role.String(),
		Rank:        role.Rank(),
		Permissions: domain.PermissionsFor(role),
	})
}
