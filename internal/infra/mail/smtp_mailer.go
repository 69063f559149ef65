package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/smtp"
	"net/url"
	"strconv"
	"strings"
	"time"

	"archive/config"
	"archive/internal/domain/service"
	"archive/internal/errors"
)

const (
	smtpDialTimeout = 8 * time.Second
	smtpIODeadline  = 15 * time.Second
)

var verifyTemplate = template.Must(template.New("verify").Parse(`<html><body>
<p>Welcome! Please confirm your email address to activate your account.</p>
<p><a href="{{.Link}}">Verify my email</a></p>
<p>The link is valid for 24 hours. If you did not sign up, ignore this email.</p>
</body></html>`))

var resetTemplate = template.Must(template.New("reset").Parse(`<html><body>
<p>We received a request to reset your password.</p>
<p><a href="{{.Link}}">Choose a new password</a></p>
<p>The link is valid for 1 hour. If you did not request this, ignore this email.</p>
</body></html>`))

// smtpMailer delivers emails over SMTP submission with STARTTLS. Every send
// dials a fresh connection with an overall deadline so a stalled server can
// never wedge the caller.
type smtpMailer struct {
	cfg     *config.SMTPConfig
	baseURL string
	logger  *slog.Logger
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.SMTPConfig, baseURL string, logger *slog.Logger) service.Mailer {
	return &smtpMailer{
		cfg:     cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// SendVerification mails the signup verification link for token.
func (m *smtpMailer) SendVerification(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/verify?email=%s&code=%s",
		m.baseURL, url.QueryEscape(email), url.QueryEscape(token))

	body, err := renderTemplate(verifyTemplate, link)
	if err != nil {
		return err
	}

	return m.send(ctx, email, "Verify your email", body)
}

// SendPasswordReset mails the password reset link for token.
func (m *smtpMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/reset-password?email=%s&token=%s",
		m.baseURL, url.QueryEscape(email), url.QueryEscape(token))

	body, err := renderTemplate(resetTemplate, link)
	if err != nil {
		return err
	}

	return m.send(ctx, email, "Reset your password", body)
}

func renderTemplate(tmpl *template.Template, link string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string{"Link": link}); err != nil {
		return "", errors.Wrap(err, "failed to render mail template")
	}

	return buf.String(), nil
}

func (m *smtpMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	fromHeader := m.cfg.From
	if m.cfg.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	msg := strings.Join([]string{
		"From: " + fromHeader,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	m.logger.DebugContext(ctx, "sending mail over SMTP",
		slog.String("to", to),
		slog.String("host", m.cfg.Host),
	)

	return m.submit(ctx, to, []byte(msg))
}

func (m *smtpMailer) submit(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	dialer := &net.Dialer{Timeout: smtpDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrap(err, "failed to dial SMTP server")
	}

	deadline := time.Now().Add(smtpIODeadline)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return errors.Wrap(err, "failed to open SMTP session")
	}
	defer func() { _ = client.Quit() }()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return errors.Wrap(err, "STARTTLS failed")
		}
	}

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return errors.Wrap(err, "SMTP auth failed")
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return errors.Wrap(err, "MAIL FROM rejected")
	}
	if err := client.Rcpt(to); err != nil {
		return errors.Wrap(err, "RCPT TO rejected")
	}

	writer, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "DATA rejected")
	}
	if _, err := writer.Write(msg); err != nil {
		_ = writer.Close()

		return errors.Wrap(err, "failed to write message body")
	}

	return writer.Close()
}
