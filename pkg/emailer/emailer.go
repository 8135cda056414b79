package emailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/nasalinha/backend/config"
)

// Emailer sends transactional emails. Callers treat every send as
// best-effort: a failed email never fails the operation that triggered it.
type Emailer interface {
	SendWelcome(ctx context.Context, name, to string) error
	SendPasswordReset(ctx context.Context, name, to, resetToken string) error
}

type smtpEmailer struct {
	cfg config.EmailConfigs
}

func New(cfg config.EmailConfigs) Emailer {
	return &smtpEmailer{cfg: cfg}
}

func (e *smtpEmailer) SendWelcome(ctx context.Context, name, to string) error {
	body, err := renderTemplate(welcomeTemplate, map[string]string{
		"Name":     name,
		"LoginURL": e.cfg.FrontendURL + "/login",
	})
	if err != nil {
		return err
	}

	return e.send(to, "Bem-vindo ao NaSalinha!", body)
}

func (e *smtpEmailer) SendPasswordReset(ctx context.Context, name, to, resetToken string) error {
	body, err := renderTemplate(passwordResetTemplate, map[string]string{
		"Name":     name,
		"ResetURL": fmt.Sprintf("%s/reset-password?token=%s", e.cfg.FrontendURL, resetToken),
	})
	if err != nil {
		return err
	}

	return e.send(to, "Recuperação de Senha - NaSalinha", body)
}

func (e *smtpEmailer) send(to, subject, htmlBody string) error {
	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s\r\n", e.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", e.cfg.Host, e.cfg.Port)
	auth := smtp.PlainAuth("", e.cfg.User, e.cfg.Password, e.cfg.Host)

	return smtp.SendMail(addr, auth, e.cfg.From, []string{to}, msg.Bytes())
}

func renderTemplate(t *template.Template, data map[string]string) (string, error) {
	buf := bytes.Buffer{}
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
