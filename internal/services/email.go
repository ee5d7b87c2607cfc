package services

import (
	"context"
	"fmt"
	"log"

	"clubhub/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendClubInvitation sends the invitation email using the "club_invitation" template.
func (s *emailService) SendClubInvitation(ctx context.Context, data *domain.ClubInvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("club invitation email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("club_invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render club_invitation template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send club invitation email: %w", err)
	}
	log.Printf("[EMAIL] Club invitation %s sent to %s", data.InvitationID, data.Email)
	return nil
}
