package email

import (
	"fmt"

	"codecheck_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// GomailProvider sends mail over SMTP via gomail.
type GomailProvider struct {
	cfg *config.Config
}

func NewGomailProvider(cfg *config.Config) *GomailProvider {
	return &GomailProvider{cfg: cfg}
}

func (p *GomailProvider) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(p.cfg.Email.FromEmail, p.cfg.Email.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUser,
		p.cfg.Email.SMTPPassword,
	)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
