package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"

	"github.com/rs/zerolog"
)

type Config struct {
	Host     string
	Port     string
	From     string
	Password string
}

type Mailer struct {
	cfg Config
	log *zerolog.Logger
}

func New(cfg Config, log *zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// Attachment is the rendered ticket shipped with the confirmation email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SendTicketEmail delivers an HTML email with optional attachments. Callers
// treat delivery as best-effort; a failure here never unwinds a confirmed
// booking.
func (m *Mailer) SendTicketEmail(to, subject, html string, attachments ...Attachment) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", w.Boundary())

	body, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return fmt.Errorf("build email body: %w", err)
	}
	if _, err := body.Write([]byte(html)); err != nil {
		return fmt.Errorf("write email body: %w", err)
	}

	for _, a := range attachments {
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {a.ContentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", a.Filename)},
		})
		if err != nil {
			return fmt.Errorf("build attachment part: %w", err)
		}
		enc := base64.StdEncoding.EncodeToString(a.Data)
		if _, err := part.Write([]byte(enc)); err != nil {
			return fmt.Errorf("write attachment: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish email: %w", err)
	}

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, buf.Bytes()); err != nil {
		m.log.Warn().Err(err).Str("to", to).Msg("failed to send email")
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
