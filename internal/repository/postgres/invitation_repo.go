package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"clubhub/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

const invitationColumns = `id, club_id, email, role, invited_by, status, invited_at, expires_at`

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var role, status string
	if err := row.Scan(&inv.ID, &inv.ClubID, &inv.Email, &role, &inv.InvitedBy, &status, &inv.InvitedAt, &inv.ExpiresAt); err != nil {
		return nil, err
	}
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("invitation %s: %w", inv.ID, err)
	}
	st, err := domain.ParseInvitationStatus(status)
	if err != nil {
		return nil, fmt.Errorf("invitation %s: %w", inv.ID, err)
	}
	inv.Role = r
	inv.Status = st
	return inv, nil
}

func (r *invitationRepository) ListByClubID(ctx context.Context, clubID string) ([]*domain.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM club_invitations
		WHERE club_id = $1
		ORDER BY seq
	`
	rows, err := r.DB.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invs := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invs, nil
}

func (r *invitationRepository) GetByID(ctx context.Context, clubID, id string) (*domain.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM club_invitations
		WHERE club_id = $1 AND id::text = $2
	`
	return r.getOne(ctx, query, clubID, id)
}

func (r *invitationRepository) FindPending(ctx context.Context, clubID, email string) (*domain.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM club_invitations
		WHERE club_id = $1 AND email = $2 AND status = 'pending'
	`
	return r.getOne(ctx, query, clubID, domain.NormalizeEmail(email))
}

func (r *invitationRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Invitation, error) {
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO club_invitations (id, club_id, email, role, invited_by, status, invited_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query, inv.ID, inv.ClubID, inv.Email, inv.Role.String(), inv.InvitedBy, string(inv.Status), inv.InvitedAt, inv.ExpiresAt)
	if err != nil {
		if isUniqueViolation(err, "club_invitations_one_pending") {
			return domain.ErrDuplicateInvitation
		}
		return err
	}
	return nil
}

func (r *invitationRepository) Update(ctx context.Context, inv *domain.Invitation) error {
	query := `
		UPDATE club_invitations
		SET role = $3, status = $4, invited_at = $5, expires_at = $6
		WHERE club_id = $1 AND id::text = $2
	`
	result, err := r.DB.ExecContext(ctx, query, inv.ClubID, inv.ID, inv.Role.String(), string(inv.Status), inv.InvitedAt, inv.ExpiresAt)
	if err != nil {
		if isUniqueViolation(err, "club_invitations_one_pending") {
			return domain.ErrDuplicateInvitation
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invitationRepository) Delete(ctx context.Context, clubID, id string) error {
	query := `DELETE FROM club_invitations WHERE club_id = $1 AND id::text = $2`
	result, err := r.DB.ExecContext(ctx, query, clubID, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
