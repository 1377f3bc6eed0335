package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/config"
)

// Dispatcher delivers verification links. Delivery is fire-and-forget from
// the caller's point of view: a failed dispatch never fails a sign-up.
type Dispatcher interface {
	SendVerification(ctx context.Context, to, key string) error
}

// SMTPDispatcher sends HTML mail over plain SMTP with AUTH PLAIN.
type SMTPDispatcher struct {
	cfg config.MailConfig
}

func NewSMTPDispatcher(cfg config.MailConfig) (*SMTPDispatcher, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("MAIL_HOST is required")
	}
	return &SMTPDispatcher{cfg: cfg}, nil
}

// SendVerification sends the verification link for the given key.
func (d *SMTPDispatcher) SendVerification(ctx context.Context, to, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", d.cfg.Host, d.cfg.Port)
	var auth smtp.Auth
	if d.cfg.User != "" {
		auth = smtp.PlainAuth("", d.cfg.User, d.cfg.Pass, d.cfg.Host)
	}

	msg := BuildVerificationMessage(d.cfg, to, key)

	if err := smtp.SendMail(addr, auth, d.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send verification mail: %w", err)
	}
	return nil
}

// BuildVerificationMessage renders the full RFC 5322 message bytes.
func BuildVerificationMessage(cfg config.MailConfig, to, key string) []byte {
	link := cfg.VerificationURL(key)
	fromHeader := fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From)

	body := fmt.Sprintf(
		"<p>Welcome!</p>"+
			"<p>Please confirm your email address by clicking the link below. "+
			"The link is valid for 30 minutes.</p>"+
			`<p><a href="%s">Verify email</a></p>`, link)

	return []byte(fmt.Sprintf("From: %s\r\n", fromHeader) +
		fmt.Sprintf("To: %s\r\n", to) +
		"Subject: Verify your email\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")
}
