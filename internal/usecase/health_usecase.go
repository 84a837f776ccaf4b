package usecase

import (
	"context"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// Pinger reports whether an optional backing service is reachable
type Pinger func(ctx context.Context) error

type healthUsecase struct {
	emailProvider string
	redisPing     Pinger
}

// NewHealthUsecase reports the email provider in use and, when redisPing is
// set, whether the rate limiter store answers.
func NewHealthUsecase(emailProvider string, redisPing Pinger) HealthUsecase {
	return &healthUsecase{emailProvider: emailProvider, redisPing: redisPing}
}

// Check never fails the whole probe on a degraded dependency; rate limiting
// falls back to memory without Redis.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	out := map[string]string{
		"status":         "ok",
		"email_provider": u.emailProvider,
		"rate_limiter":   "memory",
	}

	if u.redisPing != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := u.redisPing(ctx); err != nil {
			out["rate_limiter"] = "degraded"
		} else {
			out["rate_limiter"] = "redis"
		}
	}

	return out
}
