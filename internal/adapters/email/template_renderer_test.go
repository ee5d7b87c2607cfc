package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubhub/internal/domain"
)

func TestTemplateRenderer_ClubInvitation(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	data := &domain.ClubInvitationEmailData{
		Email:        "new@x.com",
		ClubID:       "C1",
		Role:         "contributor",
		InvitationID: "inv-1",
		InviterName:  "Mod <Two>",
		AcceptURL:    "https://clubhub.test/clubs/C1/invitations/inv-1",
		ExpiresAt:    time.Date(2026, 10, 26, 12, 0, 0, 0, time.UTC),
	}
	subject, html, text, err := r.Render("club_invitation", data)
	require.NoError(t, err)

	assert.Equal(t, "Mod <Two> invited you to join a club as contributor", subject)
	assert.Contains(t, html, "Mod &lt;Two&gt;", "html body must escape inviter name")
	assert.Contains(t, html, data.AcceptURL)
	assert.Contains(t, text, "club C1 as contributor")
	assert.Contains(t, text, "Mon, 26 Oct 2026 12:00 UTC")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)
	_, _, _, err = r.Render("does_not_exist", nil)
	assert.Error(t, err)
}
