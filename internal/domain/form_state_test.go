package domain_test

import (
	"testing"
	"time"

	"go-portfolio-site/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledSubmission() domain.ContactSubmission {
	return domain.ContactSubmission{
		Name:    "Al",
		Email:   "a@b.com",
		Subject: "Hello there",
		Message: "This is a test message.",
	}
}

func TestContactFormLifecycle(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("Success clears the tracked values", func(t *testing.T) {
		form := domain.NewContactForm()
		require.NoError(t, form.Begin(filledSubmission()))
		assert.Equal(t, domain.StatusPending, form.Status)

		require.NoError(t, form.Resolve(domain.SubmissionResult{Success: true, Message: "sent"}, now))

		assert.Equal(t, domain.StatusSuccess, form.Status)
		assert.Equal(t, "sent", form.Message)
		assert.Equal(t, domain.ContactSubmission{}, form.Values)
		assert.Empty(t, form.Values.Name)
		assert.Empty(t, form.Values.Email)
		assert.Empty(t, form.Values.Subject)
		assert.Empty(t, form.Values.Message)
	})

	t.Run("Error keeps the values and field errors", func(t *testing.T) {
		form := domain.NewContactForm()
		sub := filledSubmission()
		sub.Email = "not-an-email"
		require.NoError(t, form.Begin(sub))

		result := domain.SubmissionResult{
			Message:     "Please check your form inputs.",
			FieldErrors: domain.FieldErrors{"email": {"Invalid email address"}},
		}
		require.NoError(t, form.Resolve(result, now))

		assert.Equal(t, domain.StatusError, form.Status)
		assert.Equal(t, sub, form.Values)
		assert.Equal(t, "Invalid email address", form.Errors.First("email"))
	})

	t.Run("Only one submission may be pending", func(t *testing.T) {
		form := domain.NewContactForm()
		require.NoError(t, form.Begin(filledSubmission()))
		assert.ErrorIs(t, form.Begin(filledSubmission()), domain.ErrSubmissionInFlight)
	})

	t.Run("Resolve without a pending submission fails", func(t *testing.T) {
		form := domain.NewContactForm()
		assert.ErrorIs(t, form.Resolve(domain.SubmissionResult{Success: true}, now), domain.ErrNotPending)
	})
}

func TestContactFormReturnsToIdle(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	settled := func(success bool) *domain.ContactForm {
		form := domain.NewContactForm()
		_ = form.Begin(filledSubmission())
		_ = form.Resolve(domain.SubmissionResult{Success: success, Message: "done"}, now)
		return form
	}

	t.Run("Banner stays visible before the display duration", func(t *testing.T) {
		form := settled(true)
		form.Tick(now.Add(4 * time.Second))
		assert.Equal(t, domain.StatusSuccess, form.Status)
		assert.Equal(t, time.Second, form.DismissAfter(now.Add(4*time.Second)))
	})

	t.Run("Success returns to idle after five seconds", func(t *testing.T) {
		form := settled(true)
		form.Tick(now.Add(domain.StatusDisplayDuration))
		assert.Equal(t, domain.StatusIdle, form.Status)
		assert.Empty(t, form.Message)
	})

	t.Run("Error returns to idle after five seconds and keeps values", func(t *testing.T) {
		form := settled(false)
		form.Tick(now.Add(6 * time.Second))
		assert.Equal(t, domain.StatusIdle, form.Status)
		assert.Equal(t, filledSubmission(), form.Values)
	})

	t.Run("User interaction dismisses immediately", func(t *testing.T) {
		form := settled(false)
		form.Errors = domain.FieldErrors{"name": {"Name is required"}, "email": {"Invalid email address"}}

		form.Touch("name")

		assert.Equal(t, domain.StatusIdle, form.Status)
		assert.False(t, form.Errors.Has("name"))
		assert.True(t, form.Errors.Has("email"))
	})

	t.Run("Tick leaves a pending form alone", func(t *testing.T) {
		form := domain.NewContactForm()
		_ = form.Begin(filledSubmission())
		form.Tick(now.Add(time.Hour))
		assert.Equal(t, domain.StatusPending, form.Status)
		assert.Zero(t, form.DismissAfter(now))
	})
}
