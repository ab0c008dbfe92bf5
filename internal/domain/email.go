package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventInvitationEmailData holds data for the event invitation email.
type EventInvitationEmailData struct {
	Email      string
	FirstName  string
	EventID    string
	EventTitle string
	StartDate  string
	EndDate    string
	Location   string
}

// EmailService sends domain-level emails. Delivery is best-effort.
type EmailService interface {
	SendEventInvitation(ctx context.Context, data *EventInvitationEmailData) error
}
