package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"clubhub/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// requireAuth wraps every club route; role permissions and swagger are public.
func NewRouter(membershipController *controllers.MembershipController, requireAuth func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	// Clubs and members
	mux.HandleFunc("POST /clubs", requireAuth(membershipController.CreateClub))
	mux.HandleFunc("GET /clubs/{clubID}/members", requireAuth(membershipController.ListMembers))
	mux.HandleFunc("GET /clubs/{clubID}/members/{userID}/role", requireAuth(membershipController.GetUserRole))
	mux.HandleFunc("PATCH /clubs/{clubID}/members/{userID}/role", requireAuth(membershipController.ChangeUserRole))
	mux.HandleFunc("DELETE /clubs/{clubID}/members/{userID}", requireAuth(membershipController.RemoveMember))

	// Invitations
	mux.HandleFunc("GET /clubs/{clubID}/invitations", requireAuth(membershipController.ListInvitations))
	mux.HandleFunc("POST /clubs/{clubID}/invitations", requireAuth(membershipController.InviteMember))
	mux.HandleFunc("POST /clubs/{clubID}/invitations/{invitationID}/cancel", requireAuth(membershipController.CancelInvitation))
	mux.HandleFunc("POST /clubs/{clubID}/invitations/{invitationID}/resend", requireAuth(membershipController.ResendInvitation))
	mux.HandleFunc("POST /clubs/{clubID}/invitations/{invitationID}/accept", requireAuth(membershipController.AcceptInvitation))
	mux.HandleFunc("POST /clubs/{clubID}/invitations/{invitationID}/decline", requireAuth(membershipController.DeclineInvitation))

	// Roles
	mux.HandleFunc("GET /roles/{role}/permissions", membershipController.GetRolePermissions)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
