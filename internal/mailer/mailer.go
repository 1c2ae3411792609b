package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/WaLkINgCodEx/PY-69-Blog-Capstone-Part-4-adding-users/internal/config"
	"github.com/rs/zerolog"
)

// Mailer delivers contact-form messages through an SMTP submission relay.
// Each send dials, upgrades, authenticates, transmits one message and
// releases the connection; there is no pooling and no retry, so any failing
// step fails the send as a whole.
type Mailer struct {
	cfg *config.MailConfig
	log zerolog.Logger
}

// New creates a new mailer
func New(cfg *config.MailConfig, log zerolog.Logger) *Mailer {
	return &Mailer{
		cfg: cfg,
		log: log.With().Str("component", "mailer").Logger(),
	}
}

// SendContactMessage transmits a single plain-text message carrying the
// visitor's name, email and message to the configured recipient. The message
// must already be plain text; markup is stripped at the submission boundary,
// not here.
func (m *Mailer) SendContactMessage(ctx context.Context, name, email, message string) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	dialer := &net.Dialer{Timeout: m.cfg.SendTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial mail relay: %w", err)
	}

	// The deadline covers the whole exchange, not just the dial
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(m.cfg.SendTimeout))
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake failed: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("starttls failed: %w", err)
		}
	}

	if ok, _ := client.Extension("AUTH"); ok && m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if err := client.Mail(m.cfg.Username); err != nil {
		return fmt.Errorf("smtp mail failed: %w", err)
	}
	if err := client.Rcpt(m.cfg.Recipient); err != nil {
		return fmt.Errorf("smtp rcpt failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data failed: %w", err)
	}
	if _, err := w.Write(composeMessage(m.cfg.Username, m.cfg.Recipient, name, email, message)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("smtp quit failed: %w", err)
	}

	m.log.Info().Str("from_email", email).Msg("Contact message sent")
	return nil
}

// composeMessage builds the outgoing plain-text message
func composeMessage(from, to, name, email, message string) []byte {
	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: New Message from the Blog\r\n\r\nName: %s\r\nEmail: %s\r\nMessage: %s\r\n",
		from, to, name, email, message,
	))
}
