package domain

import (
	"errors"
	"time"
)

// FormStatus is the visible state of the contact form.
type FormStatus string

const (
	StatusIdle    FormStatus = "idle"
	StatusPending FormStatus = "pending"
	StatusSuccess FormStatus = "success"
	StatusError   FormStatus = "error"
)

// StatusDisplayDuration is how long a success or error banner stays visible.
const StatusDisplayDuration = 5 * time.Second

var (
	ErrSubmissionInFlight = errors.New("a submission is already pending")
	ErrNotPending         = errors.New("no submission is pending")
)

// ContactForm is the presenter state of one contact form instance.
type ContactForm struct {
	Values    ContactSubmission
	Status    FormStatus
	Message   string
	Errors    FieldErrors
	SettledAt time.Time
}

// NewContactForm returns an idle, empty form.
func NewContactForm() *ContactForm {
	return &ContactForm{Status: StatusIdle, Errors: FieldErrors{}}
}

// Terminal reports whether the form shows a success or error outcome.
func (f *ContactForm) Terminal() bool {
	return f.Status == StatusSuccess || f.Status == StatusError
}

// Begin moves the form to pending with the submitted values.
// Only one submission may be pending at a time.
func (f *ContactForm) Begin(values ContactSubmission) error {
	if f.Status == StatusPending {
		return ErrSubmissionInFlight
	}
	f.Values = values
	f.Status = StatusPending
	f.Message = ""
	f.Errors = FieldErrors{}
	f.SettledAt = time.Time{}
	return nil
}

// Resolve applies the outcome of the pending submission. Success clears the
// tracked values; an error keeps them so the visitor can correct and resubmit.
func (f *ContactForm) Resolve(result SubmissionResult, now time.Time) error {
	if f.Status != StatusPending {
		return ErrNotPending
	}
	f.Message = result.Message
	f.SettledAt = now
	if result.Success {
		f.Status = StatusSuccess
		f.Values = ContactSubmission{}
		f.Errors = FieldErrors{}
		return nil
	}
	f.Status = StatusError
	f.Errors = result.FieldErrors
	if f.Errors == nil {
		f.Errors = FieldErrors{}
	}
	return nil
}

// Tick returns a terminal form to idle once the display duration has elapsed.
func (f *ContactForm) Tick(now time.Time) {
	if f.Terminal() && !now.Before(f.SettledAt.Add(StatusDisplayDuration)) {
		f.toIdle()
	}
}

// Touch records a user interaction with field: its error is dropped and a
// terminal status is dismissed immediately. Interactions happen between
// requests, so the HTML site applies this rule in the browser (site.js, on
// input); the server renders the state it starts from.
func (f *ContactForm) Touch(field string) {
	delete(f.Errors, field)
	if f.Terminal() {
		f.toIdle()
	}
}

// DismissAfter is the remaining visible time of the current banner.
func (f *ContactForm) DismissAfter(now time.Time) time.Duration {
	if !f.Terminal() {
		return 0
	}
	if d := f.SettledAt.Add(StatusDisplayDuration).Sub(now); d > 0 {
		return d
	}
	return 0
}

func (f *ContactForm) toIdle() {
	f.Status = StatusIdle
	f.Message = ""
	f.SettledAt = time.Time{}
}
