package email

// Provider defines the interface for sending email.
type Provider interface {
	// Send delivers one plain-text message
	Send(to, subject, body string) error
}
