package smtp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/notify/internal/config"
	"github.com/corray333/backend-labs/notify/internal/service/models/notification"
	"github.com/wneessen/go-mail"
)

const (
	defaultTimeout  = 30 * time.Second
	implicitTLSPort = 465
)

// ErrDelivery wraps every failure to hand a message over to the SMTP server.
var ErrDelivery = errors.New("smtp delivery failed")

// Client sends notifications over an authenticated, encrypted SMTP session.
// Every Send dials a new session; nothing is pooled between calls.
type Client struct {
	cfg config.MailConfig
}

// NewClient creates a new SMTP client.
func NewClient(cfg config.MailConfig) *Client {
	return &Client{cfg: cfg}
}

// Send makes a single delivery attempt bounded by the configured timeout.
func (c *Client) Send(ctx context.Context, email notification.Email) error {
	msg, err := BuildMessage(email)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mail.NewClient(c.cfg.Host, c.options(timeout)...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	start := time.Now()
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	slog.DebugContext(ctx, "Email handed over to SMTP server",
		"host", c.cfg.Host,
		"port", c.cfg.Port,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

func (c *Client) options(timeout time.Duration) []mail.Option {
	opts := []mail.Option{
		mail.WithPort(c.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.cfg.Username),
		mail.WithPassword(c.cfg.Password),
		mail.WithTimeout(timeout),
	}
	if c.cfg.Port == implicitTLSPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	return opts
}

// BuildMessage converts a notification into a MIME message with an HTML body
// and the order document as an attachment.
func BuildMessage(email notification.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(email.From); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTMLBody)

	att := email.Attachment
	if err := msg.AttachReader(
		att.Name,
		bytes.NewReader(att.Data),
		mail.WithFileContentType(mail.ContentType(att.ContentType)),
	); err != nil {
		return nil, fmt.Errorf("failed to attach %q: %w", att.Name, err)
	}

	return msg, nil
}
