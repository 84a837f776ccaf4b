package domain_test

import (
	"testing"

	"go-portfolio-site/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestContactSubmissionTrimmed(t *testing.T) {
	sub := domain.ContactSubmission{
		Name:    "  Al ",
		Email:   " a@b.com\n",
		Subject: "\tHello there",
		Message: "This is a test message.  ",
	}

	got := sub.Trimmed()

	assert.Equal(t, "Al", got.Name)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, "Hello there", got.Subject)
	assert.Equal(t, "This is a test message.", got.Message)
	assert.Equal(t, "a@b.com", got.Value(domain.FieldEmail))
	assert.Empty(t, got.Value("phone"))
}

func TestFieldErrors(t *testing.T) {
	fe := domain.FieldErrors{}
	assert.Empty(t, fe.First(domain.FieldName))

	fe.Add(domain.FieldName, "Name is required")
	fe.Add(domain.FieldName, "Name must be at least 2 characters")

	assert.True(t, fe.Has(domain.FieldName))
	assert.False(t, fe.Has(domain.FieldEmail))
	assert.Equal(t, "Name is required", fe.First(domain.FieldName))
	assert.Len(t, fe[domain.FieldName], 2)
}

func TestSubmissionResultValidationFailure(t *testing.T) {
	assert.True(t, domain.SubmissionResult{FieldErrors: domain.FieldErrors{"email": {"x"}}}.IsValidationFailure())
	assert.False(t, domain.SubmissionResult{Message: "Failed to send message."}.IsValidationFailure())
	assert.False(t, domain.SubmissionResult{Success: true}.IsValidationFailure())
}

func TestParseLocale(t *testing.T) {
	l, ok := domain.ParseLocale("FR")
	assert.True(t, ok)
	assert.Equal(t, domain.LocaleFR, l)

	l, ok = domain.ParseLocale("de")
	assert.False(t, ok)
	assert.Equal(t, domain.DefaultLocale, l)
}
