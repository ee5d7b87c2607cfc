package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"clubhub/internal/domain"
)

type membershipService struct {
	memberRepo     domain.MemberRepository
	invitationRepo domain.InvitationRepository
	gate           *AuthorizationGate
	emailService   domain.EmailService
	logger         *slog.Logger
	locks          *clubLocks
	contextTimeout time.Duration

	now        func() time.Time
	newID      func() string
	appBaseURL string
}

// MembershipOption customizes a membership service.
type MembershipOption func(*membershipService)

// WithClock overrides the time source used for join, invite and expiry timestamps.
func WithClock(now func() time.Time) MembershipOption {
	return func(s *membershipService) { s.now = now }
}

// WithIDGenerator overrides how invitation IDs are generated.
func WithIDGenerator(newID func() string) MembershipOption {
	return func(s *membershipService) { s.newID = newID }
}

// WithAppBaseURL sets the public URL used to build links in invitation emails.
func WithAppBaseURL(baseURL string) MembershipOption {
	return func(s *membershipService) { s.appBaseURL = strings.TrimSuffix(baseURL, "/") }
}

func NewMembershipService(memberRepo domain.MemberRepository,
	invitationRepo domain.InvitationRepository,
	gate *AuthorizationGate,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
	opts ...MembershipOption,
) domain.MembershipService {
	s := &membershipService{
		memberRepo:     memberRepo,
		invitationRepo: invitationRepo,
		gate:           gate,
		emailService:   emailService,
		logger:         logger,
		locks:          newClubLocks(),
		contextTimeout: timeout,
		now:            time.Now,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// storeErr passes domain sentinels through and reports any other storage
// failure as ErrUnavailable.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrDuplicateInvitation),
		errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrClubExists),
		errors.Is(err, domain.ErrUnavailable):
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, op, err)
}

// resolveActor loads the acting member. Callers outside the roster hold no role.
func (s *membershipService) resolveActor(ctx context.Context, clubID, actorID string) (*domain.Member, error) {
	actor, err := s.memberRepo.GetByUserID(ctx, clubID, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: actor is not a member of the club", domain.ErrPermissionDenied)
		}
		return nil, storeErr("get actor", err)
	}
	return actor, nil
}

func (s *membershipService) CreateClub(ctx context.Context, clubID string, founder domain.Founder) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := domain.RequireIDs("club id", clubID, "founder id", founder.UserID); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(founder.Email); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(clubID)
	defer unlock()

	existing, err := s.memberRepo.ListByClubID(ctx, clubID)
	if err != nil {
		return nil, storeErr("list members", err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrClubExists
	}

	owner := domain.NewOwner(clubID, founder.UserID, strings.TrimSpace(founder.DisplayName), domain.NormalizeEmail(founder.Email), s.now())
	if err := s.memberRepo.Upsert(ctx, owner); err != nil {
		return nil, storeErr("create owner", err)
	}
	s.logger.InfoContext(ctx, "club created", "club_id", clubID, "owner_id", owner.UserID)
	return owner, nil
}

func (s *membershipService) InviteMember(ctx context.Context, clubID, email string, role domain.Role, actorID string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := domain.RequireIDs("club id", clubID, "actor id", actorID); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := domain.ValidateRole(role); err != nil {
		return nil, err
	}
	email = domain.NormalizeEmail(email)

	unlock := s.locks.lock(clubID)
	defer unlock()

	actor, err := s.resolveActor(ctx, clubID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor.Role, domain.PermInviteMembers); err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeGrant(actor.Role, role); err != nil {
		return nil, err
	}
	if err := s.ensureNotMember(ctx, clubID, email); err != nil {
		return nil, err
	}

	if _, err := s.invitationRepo.FindPending(ctx, clubID, email); err == nil {
		return nil, domain.ErrDuplicateInvitation
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, storeErr("find pending invitation", err)
	}

	inv := domain.NewInvitation(s.newID(), clubID, email, role, actor.UserID, s.now())
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, storeErr("create invitation", err)
	}

	s.notify(ctx, inv, actor)
	return inv, nil
}

func (s *membershipService) ensureNotMember(ctx context.Context, clubID, email string) error {
	_, err := s.memberRepo.GetByEmail(ctx, clubID, email)
	if err == nil {
		return domain.ErrAlreadyMember
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return storeErr("get member by email", err)
}

// notify sends the invitation email. Delivery failures are logged and never
// undo the invitation.
func (s *membershipService) notify(ctx context.Context, inv *domain.Invitation, actor *domain.Member) {
	if s.emailService == nil {
		return
	}
	inviter := actor.DisplayName
	if inviter == "" {
		inviter = actor.Email
	}
	data := &domain.ClubInvitationEmailData{
		Email:        inv.Email,
		ClubID:       inv.ClubID,
		Role:         inv.Role.String(),
		InvitationID: inv.ID,
		InviterName:  inviter,
		AcceptURL:    fmt.Sprintf("%s/clubs/%s/invitations/%s", s.appBaseURL, inv.ClubID, inv.ID),
		ExpiresAt:    inv.ExpiresAt,
	}
	if err := s.emailService.SendClubInvitation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "invitation email failed", "club_id", inv.ClubID, "invitation_id", inv.ID, "err", err)
	}
}

func (s *membershipService) getInvitation(ctx context.Context, clubID, invitationID string) (*domain.Invitation, error) {
	inv, err := s.invitationRepo.GetByID(ctx, clubID, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invitation %s: %w", invitationID, domain.ErrNotFound)
		}
		return nil, storeErr("get invitation", err)
	}
	return inv, nil
}

func (s *membershipService) CancelInvitation(ctx context.Context, clubID, invitationID, actorID string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := domain.RequireIDs("club id", clubID, "invitation id", invitationID, "actor id", actorID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(clubID)
	defer unlock()

	actor, err := s.resolveActor(ctx, clubID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor.Role, domain.PermInviteMembers); err != nil {
		return nil, err
	}
	inv, err := s.getInvitation(ctx, clubID, invitationID)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvitationAccepted {
		return nil, fmt.Errorf("%w: invitation was already accepted", domain.ErrValidation)
	}

	updated := *inv
	updated.Status = domain.InvitationCancelled
	if err := s.invitationRepo.Update(ctx, &updated); err != nil {
		return nil, storeErr("cancel invitation", err)
	}
	return &updated, nil
}

func (s *membershipService) ResendInvitation(ctx context.Context, clubID, invitationID, actorID string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := domain.RequireIDs("club id", clubID, "invitation id", invitationID, "actor id", actorID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(clubID)
	defer unlock()

	actor, err := s.resolveActor(ctx, clubID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(actor.Role, domain.PermInviteMembers); err != nil {
		return nil, err
	}
	inv, err := s.getInvitation(ctx, clubID, invitationID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotMember(ctx, clubID, inv.Email); err != nil {
		return nil, err
	}
	// Reviving a closed invitation must not create a second pending one.
	if inv.Status != domain.InvitationPending {
		other, err := s.invitationRepo.FindPending(ctx, clubID, inv.Email)
		if err == nil && other.ID != inv.ID {
			return nil, domain.ErrDuplicateInvitation
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, storeErr("find pending invitation", err)
		}
	}

	updated := *inv
	updated.Renew(s.now())
	if err := s.invitationRepo.Update(ctx, &updated); err != nil {
		return nil, storeErr("resend invitation", err)
	}

	s.notify(ctx, &updated, actor)
	return &updated, nil
}

// openInvitation loads a pending invitation addressed to invitee.
func (s *membershipService) openInvitation(ctx context.Context, clubID, invitationID string, invitee domain.Invitee) (*domain.Invitation, error) {
	inv, err := s.getInvitation(ctx, clubID, invitationID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvitationPending {
		return nil, fmt.Errorf("invitation %s is %s: %w", invitationID, inv.Status, domain.ErrNotFound)
	}
	if domain.NormalizeEmail(invitee.Email) != inv.Email {
		return nil, fmt.Errorf("%w: invitation is addressed to another email", domain.ErrPermissionDenied)
	}
	return inv, nil
}

func (s *membershipService) AcceptInvitation(ctx context.Context, clubID, invitationID string, invitee domain.Invitee) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := domain.RequireIDs("club id", clubID, "invitation id", invitationID, "user id", invitee.UserID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(clubID)
	defer unlock()

	inv, err := s.openInvitation(ctx, clubID, invitationID, invitee)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if domain.IsExpired(inv, now) {
		return nil, domain.ErrInvitationExpired
	}

	if _, err := s.memberRepo.GetByUserID(ctx, clubID, invitee.UserID); err == nil {
		return nil, domain.ErrAlreadyMember
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, storeErr("get member", err)
	}
	if err := s.ensureNotMember(ctx, clubID, inv.Email); err != nil {
		return nil, err
	}

	invitedBy := inv.InvitedBy
	member := &domain.Member{
		ClubID:      clubID,
		UserID:      invitee.UserID,
		DisplayName: strings.TrimSpace(invitee.DisplayName),
		Email:       inv.Email,
		Role:        inv.Role,
		JoinedAt:    now,
		InvitedBy:   &invitedBy,
	}
	if err := s.memberRepo.Upsert(ctx, member); err != nil {
		return nil, storeErr("add member", err)
	}

	accepted := *inv
	accepted.Status = domain.InvitationAccepted
	if err := s.invitationRepo.Update(ctx, &accepted); err != nil {
		if rbErr := s.memberRepo.Delete(ctx, clubID, member.UserID); rbErr != nil {
			s.logger.ErrorContext(ctx, "rollback of accepted member failed", "club_id", clubID, "user_id", member.UserID, "err", rbErr)
		}
		return nil, storeErr("accept invitation", err)
	}
	s.logger.InfoContext(ctx, "invitation accepted", "club_id", clubID, "invitation_id", inv.ID, "user_id", member.UserID)
	return member, nil
}

func (s *membershipService) DeclineInvitation(ctx context.Context, clubID, invitationID string, invitee domain.Invitee) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := domain.RequireIDs("club id", clubID, "invitation id", invitationID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(clubID)
	defer unlock()

	inv, err := s.openInvitation(ctx, clubID, invitationID, invitee)
	if err != nil {
		return nil, err
	}
	declined := *inv
	declined.Status = domain.InvitationDeclined
	if err := s.invitationRepo.Update(ctx, &declined); err != nil {
		return nil, storeErr("decline invitation", err)
	}
	return &declined, nil
}

// loadTarget resolves the actor and the target member, then authorizes perm and
// the rank action. The owner is reported as protected before any permission check.
func (s *membershipService) loadTarget(ctx context.Context, clubID, memberID, actorID string, perm domain.Permission) (actor, target *domain.Member, err error) {
	actor, err = s.resolveActor(ctx, clubID, actorID)
	if err != nil {
		return nil, nil, err
	}
	target, err = s.memberRepo.GetByUserID(ctx, clubID, memberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("member %s: %w", memberID, domain.ErrNotFound)
		}
		return nil, nil, storeErr("get member", err)
	}
	if target.IsOwner {
		return nil, nil, domain.ErrOwnerProtected
	}
	if err := s.gate.Authorize(actor.Role, perm); err != nil {
		return nil, nil, err
	}
	if err := s.gate.AuthorizeRankAction(actor.Role, target); err != nil {
		return nil, nil, err
	}
	return actor, target, nil
}

func (s *membershipService) ChangeUserRole(ctx context.Context, clubID, memberID string, newRole domain.Role, actorID string) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := domain.RequireIDs("club id", clubID, "member id", memberID, "actor id", actorID); err != nil {
		return nil, err
	}
	if err := domain.ValidateRole(newRole); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(clubID)
	defer unlock()

	actor, target, err := s.loadTarget(ctx, clubID, memberID, actorID, domain.PermManageRoles)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeGrant(actor.Role, newRole); err != nil {
		return nil, err
	}

	updated := *target
	updated.Role = newRole
	if err := s.memberRepo.Upsert(ctx, &updated); err != nil {
		return nil, storeErr("update member role", err)
	}
	s.logger.InfoContext(ctx, "member role changed", "club_id", clubID, "user_id", memberID, "from", target.Role.String(), "to", newRole.String(), "actor_id", actorID)
	return &updated, nil
}

func (s *membershipService) RemoveMember(ctx context.Context, clubID, memberID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := domain.RequireIDs("club id", clubID, "member id", memberID, "actor id", actorID); err != nil {
		return err
	}

	unlock := s.locks.lock(clubID)
	defer unlock()

	if _, _, err := s.loadTarget(ctx, clubID, memberID, actorID, domain.PermRemoveMembers); err != nil {
		return err
	}
	if err := s.memberRepo.Delete(ctx, clubID, memberID); err != nil {
		return storeErr("remove member", err)
	}
	s.logger.InfoContext(ctx, "member removed", "club_id", clubID, "user_id", memberID, "actor_id", actorID)
	return nil
}

func (s *membershipService) ListMembers(ctx context.Context, clubID string) ([]*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	members, err := s.memberRepo.ListByClubID(ctx, clubID)
	if err != nil {
		return nil, storeErr("list members", err)
	}
	if members == nil {
		members = []*domain.Member{}
	}
	return members, nil
}

func (s *membershipService) ListInvitations(ctx context.Context, clubID string) ([]*domain.InvitationView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invs, err := s.invitationRepo.ListByClubID(ctx, clubID)
	if err != nil {
		return nil, storeErr("list invitations", err)
	}
	now := s.now()
	views := make([]*domain.InvitationView, 0, len(invs))
	for _, inv := range invs {
		views = append(views, domain.NewInvitationView(inv, now))
	}
	return views, nil
}

func (s *membershipService) GetUserRole(ctx context.Context, clubID, userID string) (domain.Role, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	m, err := s.memberRepo.GetByUserID(ctx, clubID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, storeErr("get member", err)
	}
	return m.Role, true, nil
}

func (s *membershipService) HasPermission(role domain.Role, perm domain.Permission) bool {
	return domain.HasPermission(role, perm)
}
