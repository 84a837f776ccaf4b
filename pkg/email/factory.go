package email

import (
	"fmt"
	"log/slog"
	"time"

	"go-portfolio-site/config"
)

// logSenderDelay mimics provider latency for the log-only sender
const logSenderDelay = 1500 * time.Millisecond

// NewSender picks the email provider from configuration. An explicit
// EMAIL_PROVIDER wins; otherwise Resend, then SMTP, then the log stub.
// The returned name identifies the provider in logs and metrics.
func NewSender(cfg *config.Config, logger *slog.Logger) (Sender, string, error) {
	resend := NewResendSender(cfg.ResendBaseURL, cfg.ResendAPIKey)
	relay := NewSMTPSender(SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	})

	switch cfg.EmailProvider {
	case "resend":
		if !resend.IsConfigured() {
			return nil, "", fmt.Errorf("email: EMAIL_PROVIDER=resend requires RESEND_API_KEY")
		}
		return resend, "resend", nil
	case "smtp":
		if !relay.IsConfigured() {
			return nil, "", fmt.Errorf("email: EMAIL_PROVIDER=smtp requires SMTP_HOST, SMTP_USERNAME and SMTP_PASSWORD")
		}
		return relay, "smtp", nil
	case "log":
		return NewLogSender(logger, logSenderDelay), "log", nil
	case "":
	default:
		return nil, "", fmt.Errorf("email: unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}

	if resend.IsConfigured() {
		return resend, "resend", nil
	}
	if relay.IsConfigured() {
		return relay, "smtp", nil
	}
	return NewLogSender(logger, logSenderDelay), "log", nil
}
