package domain

import (
	"context"
	"strings"
)

// Contact form field names, as used in JSON bodies, form posts and FieldErrors keys.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// ContactFields lists the form fields in validation and display order.
var ContactFields = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

// ContactSubmission is one contact form attempt. It is never persisted.
type ContactSubmission struct {
	Name    string `json:"name" form:"name" validate:"required,min=2"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Subject string `json:"subject" form:"subject" validate:"required,min=5"`
	Message string `json:"message" form:"message" validate:"required,min=10"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (s ContactSubmission) Trimmed() ContactSubmission {
	return ContactSubmission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Subject: strings.TrimSpace(s.Subject),
		Message: strings.TrimSpace(s.Message),
	}
}

// Value returns the raw value of the named field.
func (s ContactSubmission) Value(field string) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldSubject:
		return s.Subject
	case FieldMessage:
		return s.Message
	}
	return ""
}

// FieldErrors maps a field name to its validation messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// First returns the first message for field, or "".
func (fe FieldErrors) First(field string) string {
	if msgs := fe[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Has reports whether field has at least one message.
func (fe FieldErrors) Has(field string) bool {
	return len(fe[field]) > 0
}

// SubmissionResult is the outcome reported back to the visitor.
type SubmissionResult struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	FieldErrors FieldErrors `json:"errors,omitempty"`
}

// IsValidationFailure reports whether the submission was rejected before dispatch.
func (r SubmissionResult) IsValidationFailure() bool {
	return !r.Success && len(r.FieldErrors) > 0
}

// ContactUsecase validates and dispatches contact form submissions
type ContactUsecase interface {
	// Validate trims and checks the submission without sending anything
	Validate(sub ContactSubmission, locale Locale) (ContactSubmission, FieldErrors)
	// Submit validates the submission and, if valid, sends exactly one email
	Submit(ctx context.Context, sub ContactSubmission, locale Locale) SubmissionResult
}
