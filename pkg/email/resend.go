package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultResendTimeout = 10 * time.Second

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

type resendError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// ResendSender delivers email through the Resend REST API
type ResendSender struct {
	client *resty.Client
	apiKey string
}

// NewResendSender creates a sender for baseURL (https://api.resend.com in production)
func NewResendSender(baseURL, apiKey string) *ResendSender {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(defaultResendTimeout)
	client.SetRetryCount(0)

	return &ResendSender{client: client, apiKey: apiKey}
}

// IsConfigured reports whether an API key is present
func (s *ResendSender) IsConfigured() bool {
	return s.apiKey != ""
}

// Send posts msg to /emails. A single attempt is made.
func (s *ResendSender) Send(ctx context.Context, msg *Message) (string, error) {
	if !s.IsConfigured() {
		return "", ErrNotConfigured
	}
	if err := msg.validate(); err != nil {
		return "", err
	}

	var (
		result  resendResponse
		failure resendError
	)
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(resendRequest{
			From:    msg.From,
			To:      msg.To,
			ReplyTo: msg.ReplyTo,
			Subject: sanitizeHeader(msg.Subject),
			HTML:    msg.HTMLBody,
			Text:    msg.TextBody,
		}).
		SetResult(&result).
		SetError(&failure).
		Post("/emails")
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", &ProviderError{Provider: "resend", Message: "request failed", Cause: err}
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		detail := strings.TrimSpace(failure.Message)
		if detail == "" {
			detail = strings.TrimSpace(resp.String())
		}
		if failure.Name != "" {
			detail = fmt.Sprintf("%s: %s", failure.Name, detail)
		}
		return "", &ProviderError{Provider: "resend", StatusCode: status, Message: detail}
	}

	return result.ID, nil
}
