package email

import (
	"technest_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider sends mail through the configured SMTP relay.
type SMTPProvider struct {
	cfg *config.Config
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) SendOTP(to, code string) error {
	return p.send(to, "Your TechNest verification code", otpBody(code))
}

func (p *SMTPProvider) SendPasswordReset(to, resetLink string) error {
	return p.send(to, "Reset your TechNest password", passwordResetBody(resetLink))
}

// SendContactMessage relays a contact-form submission to the configured
// inbox, with reply-to pointing at the sender.
func (p *SMTPProvider) SendContactMessage(fromName, fromEmail, body string) error {
	to := p.cfg.Email.ContactEmail
	if to == "" {
		to = p.cfg.Email.FromEmail
	}

	m := gomail.NewMessage()
	m.SetHeader("From", p.cfg.Email.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Reply-To", fromEmail)
	m.SetHeader("Subject", "TechNest contact form: "+fromName)
	m.SetBody("text/html", contactBody(fromName, fromEmail, body))

	return p.dialer().DialAndSend(m)
}

func (p *SMTPProvider) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.cfg.Email.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return p.dialer().DialAndSend(m)
}

func (p *SMTPProvider) dialer() *gomail.Dialer {
	return gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUsername,
		p.cfg.Email.SMTPPassword,
	)
}
