// Package memory provides in-process implementations of the membership
// repositories. State lives in the store instance; nothing is shared
// between instances.
package memory

import (
	"context"
	"sync"

	"clubhub/internal/domain"
)

type memberStore struct {
	mu sync.RWMutex
	// byClub holds each roster in join order.
	byClub map[string][]*domain.Member
}

func NewMemberStore() domain.MemberRepository {
	return &memberStore{byClub: make(map[string][]*domain.Member)}
}

func cloneMember(m *domain.Member) *domain.Member {
	c := *m
	if m.InvitedBy != nil {
		by := *m.InvitedBy
		c.InvitedBy = &by
	}
	return &c
}

func (s *memberStore) ListByClubID(ctx context.Context, clubID string) ([]*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Member, 0, len(s.byClub[clubID]))
	for _, m := range s.byClub[clubID] {
		out = append(out, cloneMember(m))
	}
	return out, nil
}

func (s *memberStore) GetByUserID(ctx context.Context, clubID, userID string) (*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.byClub[clubID] {
		if m.UserID == userID {
			return cloneMember(m), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memberStore) GetByEmail(ctx context.Context, clubID, email string) (*domain.Member, error) {
	email = domain.NormalizeEmail(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.byClub[clubID] {
		if domain.NormalizeEmail(m.Email) == email {
			return cloneMember(m), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memberStore) Upsert(ctx context.Context, m *domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	roster := s.byClub[m.ClubID]
	for i, existing := range roster {
		if existing.UserID == m.UserID {
			roster[i] = cloneMember(m)
			return nil
		}
	}
	s.byClub[m.ClubID] = append(roster, cloneMember(m))
	return nil
}

func (s *memberStore) Delete(ctx context.Context, clubID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	roster := s.byClub[clubID]
	for i, m := range roster {
		if m.UserID == userID {
			s.byClub[clubID] = append(roster[:i:i], roster[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
