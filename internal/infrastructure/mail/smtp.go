// Package mail delivers outbound email over SMTP. Configuration is static
// (env-provided relay plus app-password credentials); messages are plain
// text, single recipient.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	gomail "net/mail"
	gosmtp "net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ai-autopilot/gateway/internal/infrastructure/config"
)

const dialTimeout = 10 * time.Second

// Sender implements ports.Mailer against a configured SMTP relay.
type Sender struct {
	cfg config.MailConfig
}

func NewSender(cfg config.MailConfig) *Sender {
	return &Sender{cfg: cfg}
}

// Send builds an RFC 2822 message and delivers it according to the
// configured encryption mode. The context deadline is honoured up to the
// dial; net/smtp offers no per-command cancellation beyond that.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if s.cfg.Server == "" || s.cfg.From == "" {
		return fmt.Errorf("smtp relay is not configured")
	}
	if _, err := gomail.ParseAddress(to); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", to, err)
	}

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= 0 {
		return ctx.Err()
	}

	from := gomail.Address{Name: s.cfg.FromName, Address: s.cfg.From}
	msg := s.buildMessage(from, to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.cfg.Server, s.cfg.Port)

	switch s.cfg.Encryption {
	case "ssl":
		return s.sendSSL(addr, from.Address, to, msg)
	case "none":
		return s.sendPlain(addr, from.Address, to, msg)
	default: // "starttls"
		return s.sendStartTLS(addr, from.Address, to, msg)
	}
}

func (s *Sender) buildMessage(from gomail.Address, to, subject, body string) string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from.String()))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z)))
	msg.WriteString(fmt.Sprintf("Message-ID: <%s@%s>\r\n", uuid.NewString(), s.cfg.Server))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return msg.String()
}

// sendStartTLS sends email using STARTTLS (port 587 typical).
func (s *Sender) sendStartTLS(addr, from, to, msg string) error {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, s.cfg.Server)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: s.cfg.Server, MinVersion: tls.VersionTLS12}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("starting TLS: %w", err)
	}

	if err := s.authenticate(client); err != nil {
		return err
	}
	return s.sendMessage(client, from, to, msg)
}

// sendSSL sends email using implicit SSL/TLS (port 465 typical).
func (s *Sender) sendSSL(addr, from, to, msg string) error {
	tlsConfig := &tls.Config{ServerName: s.cfg.Server, MinVersion: tls.VersionTLS12}
	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: dialTimeout}, "tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("connecting to %s (SSL): %w", addr, err)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, s.cfg.Server)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	defer client.Close()

	if err := s.authenticate(client); err != nil {
		return err
	}
	return s.sendMessage(client, from, to, msg)
}

// sendPlain sends email without encryption.
func (s *Sender) sendPlain(addr, from, to, msg string) error {
	var auth gosmtp.Auth
	if s.cfg.Username != "" {
		auth = gosmtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Server)
	}
	if err := gosmtp.SendMail(addr, auth, from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

func (s *Sender) authenticate(client *gosmtp.Client) error {
	if s.cfg.Username == "" {
		return nil
	}
	auth := gosmtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Server)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authenticating: %w", err)
	}
	return nil
}

// sendMessage handles MAIL FROM, RCPT TO, DATA for an established client.
func (s *Sender) sendMessage(client *gosmtp.Client, from, to, msg string) error {
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO %s: %w", to, err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing data: %w", err)
	}
	return client.Quit()
}
