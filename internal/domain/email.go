package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ClubInvitationEmailData holds data for the club invitation email.
type ClubInvitationEmailData struct {
	Email        string
	ClubID       string
	Role         string
	InvitationID string
	InviterName  string
	AcceptURL    string
	ExpiresAt    time.Time
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendClubInvitation(ctx context.Context, data *ClubInvitationEmailData) error
}
