package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// InvitationTTL is how long an invitation stays acceptable after it is sent.
const InvitationTTL = 7 * 24 * time.Hour

// InvitationStatus is the stored lifecycle state of an invitation.
// Expiry is derived, never stored; see IsExpired.
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationDeclined  InvitationStatus = "declined"
	InvitationCancelled InvitationStatus = "cancelled"

	// InvitationExpired is only ever reported by EffectiveStatus.
	InvitationExpired InvitationStatus = "expired"
)

// ParseInvitationStatus converts a stored status string to an InvitationStatus.
func ParseInvitationStatus(s string) (InvitationStatus, error) {
	switch st := InvitationStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case InvitationPending, InvitationAccepted, InvitationDeclined, InvitationCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown invitation status %q", s)
	}
}

// Invitation is an offer of club membership at a given role, addressed by email.
// swagger:model Invitation
type Invitation struct {
	ID        string           `json:"id"`
	ClubID    string           `json:"club_id"`
	Email     string           `json:"email"`
	Role      Role             `json:"role" swaggertype:"string" enums:"admin,moderator,editor,contributor"`
	InvitedBy string           `json:"invited_by"`
	Status    InvitationStatus `json:"status"`
	InvitedAt time.Time        `json:"invited_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// NewInvitation returns a pending invitation sent at now.
func NewInvitation(id, clubID, email string, role Role, invitedBy string, now time.Time) *Invitation {
	inv := &Invitation{
		ID:        id,
		ClubID:    clubID,
		Email:     NormalizeEmail(email),
		Role:      role,
		InvitedBy: invitedBy,
	}
	inv.Renew(now)
	return inv
}

// Renew restarts the invitation window at now and forces the status back to pending.
func (i *Invitation) Renew(now time.Time) {
	i.Status = InvitationPending
	i.InvitedAt = now
	i.ExpiresAt = now.Add(InvitationTTL)
}

// IsExpired reports whether inv is still pending but past its expiry at now.
// This is the only place expiry is decided.
func IsExpired(inv *Invitation, now time.Time) bool {
	return inv != nil && inv.Status == InvitationPending && now.After(inv.ExpiresAt)
}

// EffectiveStatus returns the status to display at now, reporting lapsed
// pending invitations as expired.
func (i *Invitation) EffectiveStatus(now time.Time) InvitationStatus {
	if IsExpired(i, now) {
		return InvitationExpired
	}
	return i.Status
}

// InvitationView is an invitation decorated with its derived status for read paths.
// swagger:model InvitationView
type InvitationView struct {
	*Invitation
	EffectiveStatus InvitationStatus `json:"effective_status"`
	Expired         bool             `json:"expired"`
}

// NewInvitationView decorates inv with its status as of now.
func NewInvitationView(inv *Invitation, now time.Time) *InvitationView {
	return &InvitationView{
		Invitation:      inv,
		EffectiveStatus: inv.EffectiveStatus(now),
		Expired:         IsExpired(inv, now),
	}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// InvitationRepository defines storage operations for club invitations.
type InvitationRepository interface {
	ListByClubID(ctx context.Context, clubID string) ([]*Invitation, error)
	GetByID(ctx context.Context, clubID, id string) (*Invitation, error)
	// FindPending returns the pending invitation for email, or ErrNotFound.
	FindPending(ctx context.Context, clubID, email string) (*Invitation, error)
	// Create stores a new invitation. It returns ErrDuplicateInvitation when
	// another pending invitation exists for the same club and email.
	Create(ctx context.Context, inv *Invitation) error
	Update(ctx context.Context, inv *Invitation) error
	Delete(ctx context.Context, clubID, id string) error
}
