package domain

import (
	"context"
	"time"
)

// Member is a user's membership record in a club. (ClubID, UserID) identifies it.
// swagger:model Member
type Member struct {
	ClubID      string    `json:"club_id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role" swaggertype:"string" enums:"admin,moderator,editor,contributor"`
	JoinedAt    time.Time `json:"joined_at"`
	InvitedBy   *string   `json:"invited_by"`
	IsOwner     bool      `json:"is_owner"`
}

// NewOwner returns the founding member of a club. The owner is always an admin.
func NewOwner(clubID, userID, displayName, email string, joinedAt time.Time) *Member {
	return &Member{
		ClubID:      clubID,
		UserID:      userID,
		DisplayName: displayName,
		Email:       email,
		Role:        RoleAdmin,
		JoinedAt:    joinedAt,
		IsOwner:     true,
	}
}

// Founder identifies the user creating a club.
type Founder struct {
	UserID      string
	DisplayName string
	Email       string
}

// Invitee identifies the authenticated user answering an invitation.
type Invitee struct {
	UserID      string
	DisplayName string
	Email       string
}

// MemberRepository defines storage operations for club members.
type MemberRepository interface {
	// ListByClubID returns members in join order; an unknown club yields an empty slice.
	ListByClubID(ctx context.Context, clubID string) ([]*Member, error)
	GetByUserID(ctx context.Context, clubID, userID string) (*Member, error)
	GetByEmail(ctx context.Context, clubID, email string) (*Member, error)
	// Upsert inserts or replaces the member keyed by (ClubID, UserID).
	Upsert(ctx context.Context, m *Member) error
	Delete(ctx context.Context, clubID, userID string) error
}
