package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured is returned when a provider lacks credentials.
var ErrNotConfigured = errors.New("email: provider is not configured")

// Message is one transactional email.
type Message struct {
	From     string
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender delivers transactional email through an external provider.
type Sender interface {
	// Send delivers msg and returns the provider's message ID when available.
	Send(ctx context.Context, msg *Message) (string, error)
}

// ProviderError describes a failed provider call. Its text is for operators only.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 4)
	parts = append(parts, e.Provider+" provider error")

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		parts = append(parts, msg)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (m *Message) validate() error {
	if m == nil {
		return errors.New("email: message is nil")
	}
	if strings.TrimSpace(m.From) == "" {
		return errors.New("email: sender address is required")
	}
	if len(m.To) == 0 {
		return errors.New("email: at least one recipient is required")
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.New("email: subject is required")
	}
	if m.HTMLBody == "" && m.TextBody == "" {
		return errors.New("email: body is required")
	}
	return nil
}

// sanitizeHeader strips CR and LF so values cannot inject extra headers
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
