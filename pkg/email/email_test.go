package email

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"go-portfolio-site/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMessage() *Message {
	return &Message{
		From:     "onboarding@resend.dev",
		To:       []string{"owner@example.com"},
		ReplyTo:  "a@b.com",
		Subject:  "Portfolio Contact: Hello there",
		HTMLBody: "<p>hi</p>",
		TextBody: "hi",
	}
}

func TestResendSenderSend(t *testing.T) {
	t.Run("Posts the message and returns the provider id", func(t *testing.T) {
		var got resendRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/emails", r.URL.Path)
			assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"msg_123"}`))
		}))
		defer server.Close()

		id, err := NewResendSender(server.URL, "re_test").Send(context.Background(), sampleMessage())

		require.NoError(t, err)
		assert.Equal(t, "msg_123", id)
		assert.Equal(t, "a@b.com", got.ReplyTo)
		assert.Equal(t, []string{"owner@example.com"}, got.To)
		assert.Equal(t, "Portfolio Contact: Hello there", got.Subject)
	})

	t.Run("Rejection becomes a ProviderError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`))
		}))
		defer server.Close()

		_, err := NewResendSender(server.URL, "re_test").Send(context.Background(), sampleMessage())

		var providerErr *ProviderError
		require.ErrorAs(t, err, &providerErr)
		assert.Equal(t, http.StatusUnprocessableEntity, providerErr.StatusCode)
		assert.Contains(t, providerErr.Error(), "Invalid from field")
	})

	t.Run("Missing API key is reported as not configured", func(t *testing.T) {
		_, err := NewResendSender("http://127.0.0.1:1", "").Send(context.Background(), sampleMessage())
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestSMTPSenderSend(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "user", Password: "pass"})

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	sender.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	msg := sampleMessage()
	msg.Subject = "Portfolio Contact: Hi\r\nBcc: victim@example.com"
	id, err := sender.Send(context.Background(), msg)

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Reply-To: a@b.com\r\n")
	assert.NotContains(t, gotMsg, "\r\nBcc:")
	assert.Contains(t, gotMsg, "Content-Type: text/html; charset=UTF-8")
}

func TestSMTPSenderEncodesNonASCIIAndLongLines(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "user", Password: "pass"})

	var raw []byte
	sender.sendMail = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		raw = msg
		return nil
	}

	longLine := strings.Repeat("é", 600) + strings.Repeat("a", 200)
	msg := sampleMessage()
	msg.Subject = "Portfolio Contact: Réunion à Paris"
	msg.TextBody = "Bonjour,\n" + longLine
	msg.HTMLBody = "<p>" + longLine + "</p>"

	_, err := sender.Send(context.Background(), msg)
	require.NoError(t, err)

	for _, line := range strings.Split(string(raw), "\r\n") {
		assert.LessOrEqual(t, len(line), 998)
		for _, r := range line {
			require.Less(t, r, rune(128), "8-bit octet on the wire: %q", line)
		}
	}

	parsed, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)
	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Portfolio Contact: Réunion à Paris", subject)

	_, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	mr := multipart.NewReader(parsed.Body, params["boundary"])

	text, err := mr.NextPart()
	require.NoError(t, err)
	body, err := io.ReadAll(text)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour,\r\n"+longLine, string(body))

	html, err := mr.NextPart()
	require.NoError(t, err)
	body, err = io.ReadAll(html)
	require.NoError(t, err)
	assert.Equal(t, "<p>"+longLine+"</p>", string(body))
}

func TestSMTPSenderWrapsFailures(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "user", Password: "pass"})
	sender.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("535 authentication failed")
	}

	_, err := sender.Send(context.Background(), sampleMessage())

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "smtp", providerErr.Provider)
}

func TestLogSenderRespectsContext(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	id, err := NewLogSender(logger, 0).Send(context.Background(), sampleMessage())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewLogSender(logger, time.Hour).Send(ctx, sampleMessage())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderContactEmailEscapesInput(t *testing.T) {
	html, text, err := RenderContactEmail(ContactEmailData{
		SenderName:  "<script>alert(1)</script>",
		SenderEmail: "a@b.com",
		Subject:     "Hello there",
		Message:     "This is a test message.",
		SiteOwner:   "Hamza CHARAFI",
		Year:        2026,
	})

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "mailto:a@b.com")
	assert.Contains(t, html, "2026 Hamza CHARAFI")
	assert.True(t, strings.Contains(text, "Subject: Hello there"))
}

func TestNewSenderSelection(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, name, err := NewSender(&config.Config{}, logger)
	require.NoError(t, err)
	assert.Equal(t, "log", name)

	_, name, err = NewSender(&config.Config{ResendAPIKey: "re_x", SMTPHost: "h", SMTPUsername: "u", SMTPPassword: "p"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "resend", name)

	_, name, err = NewSender(&config.Config{EmailProvider: "smtp", ResendAPIKey: "re_x", SMTPHost: "h", SMTPUsername: "u", SMTPPassword: "p"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "smtp", name)

	_, _, err = NewSender(&config.Config{EmailProvider: "resend"}, logger)
	assert.Error(t, err)

	_, _, err = NewSender(&config.Config{EmailProvider: "carrier-pigeon"}, logger)
	assert.Error(t, err)
}
