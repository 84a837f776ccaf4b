package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// LogSender is a development stand-in that only logs messages after a short
// delay, so the form's pending state stays observable.
type LogSender struct {
	logger *slog.Logger
	delay  time.Duration
}

// NewLogSender creates a log-only sender
func NewLogSender(logger *slog.Logger, delay time.Duration) *LogSender {
	return &LogSender{logger: logger, delay: delay}
}

func (s *LogSender) Send(ctx context.Context, msg *Message) (string, error) {
	if err := msg.validate(); err != nil {
		return "", err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	id := uuid.NewString()
	s.logger.Info("Email logged instead of sent",
		"message_id", id,
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
	)
	return id, nil
}
