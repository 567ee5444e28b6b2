package email

import (
	"fmt"

	"munext_backend/internal/config"
	"munext_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Provider определяет интерфейс для отправки email.
// В тестах подменяется на мок, чтобы не ходить в SMTP.
type Provider interface {
	// Send отправляет письмо с HTML-телом
	Send(to, subject, htmlBody string) error

	// SendVerification отправляет письмо для подтверждения email
	SendVerification(to, name, token string) error

	// SendWelcome отправляет приветственное письмо после верификации аккаунта
	SendWelcome(to, name string) error
}

// SMTPProvider реализует Provider через gomail
type SMTPProvider struct {
	cfg       config.EmailConfig
	templates *TemplateManager
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(cfg config.EmailConfig) (*SMTPProvider, error) {
	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to init email templates: %w", err)
	}

	return &SMTPProvider{
		cfg:       cfg,
		templates: tm,
	}, nil
}

// Send отправляет письмо с HTML-телом
func (p *SMTPProvider) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.cfg.FromEmail, p.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		p.cfg.SMTPHost,
		p.cfg.SMTPPort,
		p.cfg.SMTPUsername,
		p.cfg.SMTPPassword,
	)

	if err := d.DialAndSend(m); err != nil {
		logger.WithError(err).Error("Failed to send email", "to", to, "subject", subject)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendVerification отправляет письмо для подтверждения email
func (p *SMTPProvider) SendVerification(to, name, token string) error {
	body, err := p.templates.Render("verification", TemplateData{
		UserName:   name,
		ActionURL:  fmt.Sprintf("%s/verify-email?token=%s", p.cfg.FrontendURL, token),
		ActionText: "Verify Email",
	})
	if err != nil {
		return err
	}
	return p.Send(to, "Verify your email address", body)
}

// SendWelcome отправляет приветственное письмо после верификации аккаунта
func (p *SMTPProvider) SendWelcome(to, name string) error {
	body, err := p.templates.Render("welcome", TemplateData{
		UserName: name,
	})
	if err != nil {
		return err
	}
	return p.Send(to, "Your account has been verified", body)
}

// NoopProvider не отправляет писем. Используется в тестах и когда
// SMTP не сконфигурирован.
type NoopProvider struct{}

func (NoopProvider) Send(to, subject, htmlBody string) error       { return nil }
func (NoopProvider) SendVerification(to, name, token string) error { return nil }
func (NoopProvider) SendWelcome(to, name string) error             { return nil }
