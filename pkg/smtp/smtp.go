package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	smtpPkg "net/smtp"
	"time"
)

var ErrNotConfigured = errors.New("smtp sender address is not configured")

type ItfSmtp interface {
	Send(ctx context.Context, msg Message) error
	Verify(ctx context.Context) error
}

type Options struct {
	Host     string
	Port     string
	Mail     string
	Password string
	Timeout  time.Duration
}

type smtp struct {
	opts Options
	auth smtpPkg.Auth
}

func New(opts Options) ItfSmtp {
	if opts.Host == "" {
		opts.Host = "smtp.gmail.com"
	}
	if opts.Port == "" {
		opts.Port = "587"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	auth := smtpPkg.PlainAuth("", opts.Mail, opts.Password, opts.Host)

	return &smtp{opts: opts, auth: auth}
}

func (s *smtp) Send(ctx context.Context, msg Message) error {
	if s.opts.Mail == "" {
		return ErrNotConfigured
	}
	if msg.From.Address == "" {
		msg.From.Address = s.opts.Mail
	}

	body, err := msg.Bytes()
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	client, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Mail(s.opts.Mail); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp RCPT TO %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp end of data: %w", err)
	}

	return client.Quit()
}

func (s *smtp) Verify(ctx context.Context) error {
	if s.opts.Mail == "" {
		return ErrNotConfigured
	}

	client, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	return client.Quit()
}

// dial connects, upgrades with STARTTLS when offered and authenticates.
// The connection deadline follows ctx, falling back to the configured timeout.
func (s *smtp) dial(ctx context.Context) (*smtpPkg.Client, error) {
	addr := net.JoinHostPort(s.opts.Host, s.opts.Port)

	dialer := &net.Dialer{Timeout: s.opts.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("smtp dial %s: %w", addr, err)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(s.opts.Timeout)
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtpPkg.NewClient(conn, s.opts.Host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("smtp handshake: %w", err)
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.opts.Host}); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if ok, _ := client.Extension("AUTH"); ok {
		if err := client.Auth(s.auth); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("smtp auth: %w", err)
		}
	}

	return client, nil
}
