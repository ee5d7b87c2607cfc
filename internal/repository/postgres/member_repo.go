package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"clubhub/internal/domain"
)

type memberRepository struct {
	DB *sql.DB
}

func NewMemberRepository(db *sql.DB) domain.MemberRepository {
	return &memberRepository{
		DB: db,
	}
}

const memberColumns = `club_id, user_id, display_name, email, role, joined_at, invited_by, is_owner`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*domain.Member, error) {
	m := &domain.Member{}
	var role string
	var invitedBy sql.NullString
	if err := row.Scan(&m.ClubID, &m.UserID, &m.DisplayName, &m.Email, &role, &m.JoinedAt, &invitedBy, &m.IsOwner); err != nil {
		return nil, err
	}
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("member %s/%s: %w", m.ClubID, m.UserID, err)
	}
	m.Role = r
	if invitedBy.Valid {
		by := invitedBy.String
		m.InvitedBy = &by
	}
	return m, nil
}

func (r *memberRepository) ListByClubID(ctx context.Context, clubID string) ([]*domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM club_members
		WHERE club_id = $1
		ORDER BY joined_at, seq
	`
	rows, err := r.DB.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := make([]*domain.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) GetByUserID(ctx context.Context, clubID, userID string) (*domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM club_members
		WHERE club_id = $1 AND user_id = $2
	`
	m, err := scanMember(r.DB.QueryRowContext(ctx, query, clubID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, clubID, email string) (*domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM club_members
		WHERE club_id = $1 AND lower(email) = $2
		LIMIT 1
	`
	m, err := scanMember(r.DB.QueryRowContext(ctx, query, clubID, domain.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) Upsert(ctx context.Context, m *domain.Member) error {
	query := `
		INSERT INTO club_members (club_id, user_id, display_name, email, role, joined_at, invited_by, is_owner)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (club_id, user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			joined_at = EXCLUDED.joined_at,
			invited_by = EXCLUDED.invited_by,
			is_owner = EXCLUDED.is_owner
	`
	var invitedBy sql.NullString
	if m.InvitedBy != nil {
		invitedBy = sql.NullString{String: *m.InvitedBy, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query, m.ClubID, m.UserID, m.DisplayName, m.Email, m.Role.String(), m.JoinedAt, invitedBy, m.IsOwner)
	if err != nil {
		if isUniqueViolation(err, "club_members_one_owner") {
			return domain.ErrClubExists
		}
		return err
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, clubID, userID string) error {
	query := `DELETE FROM club_members WHERE club_id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, clubID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
