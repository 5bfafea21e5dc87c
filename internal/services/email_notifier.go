package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"pizocrm/internal/config"
	"pizocrm/internal/models"
)

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier mails the owning advisor when a snoozed lead wakes up.
type EmailNotifier struct {
	sender   mailSender
	from     string
	fallback string
	advisors map[string]string
}

func NewEmailNotifier(cfg config.EmailConfig) *EmailNotifier {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return newEmailNotifier(dialer, cfg)
}

func newEmailNotifier(sender mailSender, cfg config.EmailConfig) *EmailNotifier {
	advisors := make(map[string]string, len(cfg.Advisors))
	for k, v := range cfg.Advisors {
		advisors[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &EmailNotifier{
		sender:   sender,
		from:     cfg.FromEmail,
		fallback: cfg.NotifyTo,
		advisors: advisors,
	}
}

func (n *EmailNotifier) recipient(asesor string) string {
	if to, ok := n.advisors[strings.ToLower(strings.TrimSpace(asesor))]; ok && to != "" {
		return to
	}
	return n.fallback
}

func (n *EmailNotifier) LeadAwake(ctx context.Context, lead models.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to := n.recipient(lead.Asesor)
	if to == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Negocio reactivado: %s", leadTitle(lead)))

	body := fmt.Sprintf(`
		<h3>El negocio volvió al tablero</h3>
		<p><strong>%s</strong> (%s) terminó su periodo de espera.</p>
		<p>Cliente: %s · %s · %s</p>
		<p>Estatus: %s</p>
	`,
		html.EscapeString(leadTitle(lead)), html.EscapeString(string(lead.TransactionType)),
		html.EscapeString(lead.NombreCompleto), html.EscapeString(lead.Telefono), html.EscapeString(lead.Correo),
		html.EscapeString(string(lead.Estatus)))
	m.SetBody("text/html", body)

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send wake email for %s: %w", lead.ID, err)
	}
	return nil
}

func leadTitle(l models.Lead) string {
	if l.CondoName != "" {
		return l.CondoName
	}
	if l.NombreCompleto != "" {
		return l.NombreCompleto
	}
	return l.ID
}
