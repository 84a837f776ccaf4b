package email

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net/smtp"
	"strings"
)

// maxHeaderLine is the folding target for header lines (RFC 5322 2.1.1)
const maxHeaderLine = 76

// SMTPConfig holds relay settings (Brevo by default)
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

// SMTPSender sends emails via an authenticated SMTP relay
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates an SMTP sender
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		sendMail: smtp.SendMail,
	}
}

// IsConfigured checks if the relay has valid credentials
func (s *SMTPSender) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// Send delivers msg through the relay. net/smtp does not honour ctx once the
// dialogue has started; a cancelled ctx is only checked up front.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) (string, error) {
	if !s.IsConfigured() {
		return "", ErrNotConfigured
	}
	if err := msg.validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := newMessageID(s.host)
	raw := buildMIME(msg, messageID)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.sendMail(addr, auth, msg.From, msg.To, raw); err != nil {
		return "", &ProviderError{Provider: "smtp", Message: "send failed", Cause: err}
	}

	return messageID, nil
}

// buildMIME renders a multipart/alternative message (text + HTML). The subject
// is RFC 2047 encoded and folded; body parts are quoted-printable so long or
// non-ASCII visitor input stays within line limits.
func buildMIME(msg *Message, messageID string) []byte {
	boundary := "portfolio-" + randomHex(12)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", sanitizeHeader(msg.From))
	fmt.Fprintf(&b, "To: %s\r\n", sanitizeHeader(strings.Join(msg.To, ", ")))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", sanitizeHeader(msg.ReplyTo))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", encodeSubject(msg.Subject))
	fmt.Fprintf(&b, "Message-ID: %s\r\n", messageID)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	if msg.TextBody != "" {
		writePart(&b, boundary, "text/plain", msg.TextBody)
	}
	if msg.HTMLBody != "" {
		writePart(&b, boundary, "text/html", msg.HTMLBody)
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}

func writePart(b *strings.Builder, boundary, contentType, body string) {
	fmt.Fprintf(b, "--%s\r\n", boundary)
	fmt.Fprintf(b, "Content-Type: %s; charset=UTF-8\r\n", contentType)
	b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")

	qp := quotedprintable.NewWriter(b)
	// Writes to a strings.Builder cannot fail
	_, _ = qp.Write([]byte(body))
	_ = qp.Close()
	b.WriteString("\r\n")
}

// encodeSubject Q-encodes non-ASCII text and folds the result on spaces.
func encodeSubject(subject string) string {
	return foldHeader(mime.QEncoding.Encode("utf-8", sanitizeHeader(subject)))
}

// foldHeader breaks v at spaces so no line exceeds maxHeaderLine when possible.
// A single word longer than the limit is kept whole.
func foldHeader(v string) string {
	words := strings.Split(v, " ")
	var (
		b       strings.Builder
		lineLen = len("Subject: ")
	)
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > maxHeaderLine {
				b.WriteString("\r\n ")
				lineLen = 1
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}

func newMessageID(host string) string {
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("<%s@%s>", randomHex(16), host)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "0000"
	}
	return hex.EncodeToString(buf)
}
