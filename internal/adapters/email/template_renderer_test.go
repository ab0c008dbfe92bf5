package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventvenues/internal/domain"
)

func TestTemplateRenderer_EventInvitation(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.EventInvitationEmailData{
		Email:      "ada@example.com",
		FirstName:  "Ada",
		EventID:    "ev-1",
		EventTitle: "Launch <Party>",
		StartDate:  "2025-02-01",
		EndDate:    "2025-02-02",
		Location:   "Main Hall",
	}

	subject, html, text, err := r.Render("event_invitation", data)
	require.NoError(t, err)

	assert.Equal(t, "You're invited to Launch <Party>", subject)
	assert.Contains(t, html, "Hi Ada,")
	assert.Contains(t, html, "Launch &lt;Party&gt;")
	assert.Contains(t, html, "Main Hall")
	assert.Contains(t, text, "Starts: 2025-02-01")
	assert.Contains(t, text, "Location: Main Hall")
	assert.Contains(t, text, "ev-1")
}

func TestTemplateRenderer_OmitsEmptyLocation(t *testing.T) {
	_, html, text, err := NewTemplateRenderer().Render("event_invitation", &domain.EventInvitationEmailData{
		EventTitle: "Launch",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "Location")
	assert.NotContains(t, text, "Location")
	assert.Contains(t, text, "Hi,")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("does_not_exist", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render subject")
}
