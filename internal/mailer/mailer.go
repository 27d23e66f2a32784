// Package mailer delivers finished reports over SMTP: a plain-text body, an
// HTML body and the generated report files as attachments.
package mailer

import (
	"fmt"

	"github.com/wneessen/go-mail"
	"golang.org/x/exp/slog"
)

type Opts struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	UseTLS   bool // STARTTLS when true, implicit SSL otherwise
}

type Mailer struct {
	lo   *slog.Logger
	opts Opts
}

func New(lo *slog.Logger, opts Opts) *Mailer {
	if opts.FromName == "" {
		opts.FromName = "Server Monitor"
	}
	return &Mailer{lo: lo, opts: opts}
}

// Enabled reports whether SMTP delivery is configured at all; mailings are
// skipped silently when it is not.
func (m *Mailer) Enabled() bool {
	return m.opts.Host != ""
}

// Send mails one report. recipients must be non-empty; htmlBody and
// attachments are optional.
func (m *Mailer) Send(subject, body, htmlBody string, recipients, attachments []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients given")
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.opts.FromName, m.opts.Username); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("setting recipients: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	if htmlBody != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)
	}
	for _, path := range attachments {
		msg.AttachFile(path)
	}

	client, err := m.client()
	if err != nil {
		return err
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	m.lo.Info("email sent", "subject", subject, "recipients", recipients, "attachments", len(attachments))
	return nil
}

func (m *Mailer) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(m.opts.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.opts.Username),
		mail.WithPassword(m.opts.Password),
	}
	if m.opts.UseTLS {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(m.opts.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}
	return client, nil
}
