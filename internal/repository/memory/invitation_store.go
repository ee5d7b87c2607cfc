package memory

import (
	"context"
	"sync"

	"clubhub/internal/domain"
)

type invitationStore struct {
	mu     sync.RWMutex
	byClub map[string][]*domain.Invitation
}

func NewInvitationStore() domain.InvitationRepository {
	return &invitationStore{byClub: make(map[string][]*domain.Invitation)}
}

func cloneInvitation(inv *domain.Invitation) *domain.Invitation {
	c := *inv
	return &c
}

func (s *invitationStore) ListByClubID(ctx context.Context, clubID string) ([]*domain.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Invitation, 0, len(s.byClub[clubID]))
	for _, inv := range s.byClub[clubID] {
		out = append(out, cloneInvitation(inv))
	}
	return out, nil
}

func (s *invitationStore) GetByID(ctx context.Context, clubID, id string) (*domain.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(clubID, id); i >= 0 {
		return cloneInvitation(s.byClub[clubID][i]), nil
	}
	return nil, domain.ErrNotFound
}

func (s *invitationStore) FindPending(ctx context.Context, clubID, email string) (*domain.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if inv := s.pending(clubID, domain.NormalizeEmail(email), ""); inv != nil {
		return cloneInvitation(inv), nil
	}
	return nil, domain.ErrNotFound
}

func (s *invitationStore) Create(ctx context.Context, inv *domain.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.Status == domain.InvitationPending && s.pending(inv.ClubID, inv.Email, "") != nil {
		return domain.ErrDuplicateInvitation
	}
	s.byClub[inv.ClubID] = append(s.byClub[inv.ClubID], cloneInvitation(inv))
	return nil
}

func (s *invitationStore) Update(ctx context.Context, inv *domain.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(inv.ClubID, inv.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if inv.Status == domain.InvitationPending && s.pending(inv.ClubID, inv.Email, inv.ID) != nil {
		return domain.ErrDuplicateInvitation
	}
	s.byClub[inv.ClubID][i] = cloneInvitation(inv)
	return nil
}

func (s *invitationStore) Delete(ctx context.Context, clubID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(clubID, id)
	if i < 0 {
		return domain.ErrNotFound
	}
	list := s.byClub[clubID]
	s.byClub[clubID] = append(list[:i:i], list[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (s *invitationStore) indexOf(clubID, id string) int {
	for i, inv := range s.byClub[clubID] {
		if inv.ID == id {
			return i
		}
	}
	return -1
}

// pending returns the pending invitation for email other than exceptID. mu must be held.
func (s *invitationStore) pending(clubID, email, exceptID string) *domain.Invitation {
	for _, inv := range s.byClub[clubID] {
		if inv.ID != exceptID && inv.Status == domain.InvitationPending && inv.Email == email {
			return inv
		}
	}
	return nil
}
