package domain

import "context"

// MembershipService is the only entry point other parts of the system use to
// read or mutate club rosters and invitations. Every mutation takes the acting
// user's ID; the service resolves the actor's role itself.
type MembershipService interface {
	CreateClub(ctx context.Context, clubID string, founder Founder) (*Member, error)

	InviteMember(ctx context.Context, clubID, email string, role Role, actorID string) (*Invitation, error)
	CancelInvitation(ctx context.Context, clubID, invitationID, actorID string) (*Invitation, error)
	ResendInvitation(ctx context.Context, clubID, invitationID, actorID string) (*Invitation, error)
	AcceptInvitation(ctx context.Context, clubID, invitationID string, invitee Invitee) (*Member, error)
	DeclineInvitation(ctx context.Context, clubID, invitationID string, invitee Invitee) (*Invitation, error)

	ChangeUserRole(ctx context.Context, clubID, memberID string, newRole Role, actorID string) (*Member, error)
	RemoveMember(ctx context.Context, clubID, memberID, actorID string) error

	ListMembers(ctx context.Context, clubID string) ([]*Member, error)
	ListInvitations(ctx context.Context, clubID string) ([]*InvitationView, error)
	// GetUserRole returns the user's role and whether they are a member at all.
	GetUserRole(ctx context.Context, clubID, userID string) (Role, bool, error)
	HasPermission(role Role, perm Permission) bool
}
