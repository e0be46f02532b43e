package delivery

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/SscSPs/expense_management_app/internal/core/domain"
	"github.com/SscSPs/expense_management_app/internal/middleware"
	"github.com/SscSPs/expense_management_app/internal/platform/config"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

type sendFunc func(ctx context.Context, addr string, a sasl.Client, from string, to []string, r io.Reader) error

const defaultSendTimeout = 30 * time.Second

// SMTPChannel mails the password to the new user and tells the admin it was sent.
// Without a configured server it behaves like NotificationChannel.
type SMTPChannel struct {
	cfg  config.SMTPConfig
	send sendFunc
}

// NewSMTPChannel creates a channel sending through the configured server.
func NewSMTPChannel(cfg config.SMTPConfig) *SMTPChannel {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSendTimeout
	}
	c := &SMTPChannel{cfg: cfg}
	c.send = c.sendMail
	return c
}

// sendMail runs one SMTP session bounded by ctx. The connection is closed as soon as ctx
// is done, which fails whatever command is in flight.
func (c *SMTPChannel) sendMail(ctx context.Context, addr string, a sasl.Client, from string, to []string, r io.Reader) error {
	dialer := &net.Dialer{}
	tlsConfig := &tls.Config{ServerName: c.cfg.Host}

	var (
		conn net.Conn
		err  error
	)
	if c.cfg.TLSEnabled {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	var client *smtp.Client
	if c.cfg.TLSEnabled {
		client = smtp.NewClient(conn)
	} else if client, err = smtp.NewClientStartTLS(conn, tlsConfig); err != nil {
		return errors.Join(err, ctx.Err())
	}
	defer client.Close()
	client.CommandTimeout = c.cfg.Timeout
	client.SubmissionTimeout = c.cfg.Timeout

	if err := client.Auth(a); err != nil {
		return errors.Join(err, ctx.Err())
	}
	if err := client.SendMail(from, to, r); err != nil {
		return errors.Join(err, ctx.Err())
	}
	return client.Quit()
}

var _ CredentialDeliveryChannel = (*SMTPChannel)(nil)

func (c *SMTPChannel) configured() bool {
	return c.cfg.Host != "" && c.cfg.Port != "" && c.cfg.User != ""
}

func (c *SMTPChannel) Deliver(ctx context.Context, creds Credentials) ([]domain.Notification, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("recipient_user_id", creds.User.UserID))
	if !c.configured() {
		logger.Warn("SMTP client is not configured, falling back to in-app credential delivery")
		return (&NotificationChannel{}).Deliver(ctx, creds)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	auth := sasl.NewPlainClient("", c.cfg.User, c.cfg.Password)
	addr := net.JoinHostPort(c.cfg.Host, c.cfg.Port)
	if err := c.send(ctx, addr, auth, c.cfg.From, []string{creds.User.Email}, strings.NewReader(c.message(creds))); err != nil {
		logger.Error("Failed to send credentials mail", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to send credentials mail: %w", err)
	}
	logger.Info("Credentials mail sent")

	return []domain.Notification{
		newUserAddedNotification(creds, fmt.Sprintf("%s has been added as %s. Login details were emailed to %s.", creds.User.Name, creds.User.Role, creds.User.Email)),
	}, nil
}

func (c *SMTPChannel) message(creds Credentials) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", c.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", creds.User.Email)
	fmt.Fprintf(&b, "Subject: Your %s expense account\r\n", creds.User.CompanyName)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", creds.User.Name)
	fmt.Fprintf(&b, "%s added you as %s.\r\n", creds.Admin.Name, creds.User.Role)
	fmt.Fprintf(&b, "Email: %s\r\nPassword: %s\r\n", creds.User.Email, creds.Password)
	return b.String()
}
