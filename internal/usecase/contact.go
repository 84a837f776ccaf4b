package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/email"
	"go-portfolio-site/pkg/logger"
	"go-portfolio-site/pkg/metrics"
	"go-portfolio-site/pkg/security"
	"go-portfolio-site/pkg/validation"
)

// ContactConfig describes where contact messages go
type ContactConfig struct {
	From          string
	To            string
	SubjectPrefix string
	SiteOwner     string
	// Provider names the sender in logs and metrics
	Provider string
}

type contactMessages struct {
	Success    string
	Validation string
	Failure    string
}

// Delivery failures and unexpected errors share one message so nothing
// about the cause reaches the visitor.
var contactResultMessages = map[domain.Locale]contactMessages{
	domain.LocaleEN: {
		Success:    "Message sent successfully! I'll get back to you soon.",
		Validation: "Please check your form inputs.",
		Failure:    "Failed to send message. Please try again later.",
	},
	domain.LocaleFR: {
		Success:    "Message envoyé avec succès ! Je vous répondrai rapidement.",
		Validation: "Veuillez vérifier les champs du formulaire.",
		Failure:    "Échec de l'envoi du message. Veuillez réessayer plus tard.",
	},
}

func messagesFor(locale domain.Locale) contactMessages {
	if m, ok := contactResultMessages[locale]; ok {
		return m
	}
	return contactResultMessages[domain.DefaultLocale]
}

type contactUsecase struct {
	sender    email.Sender
	validator *validation.Validator
	secLogger *security.SecurityLogger
	metrics   *metrics.Metrics
	cfg       ContactConfig
	now       func() time.Time
}

// NewContactUsecase creates a new contact usecase. secLogger and m may be nil.
func NewContactUsecase(sender email.Sender, v *validation.Validator, secLogger *security.SecurityLogger, m *metrics.Metrics, cfg ContactConfig) domain.ContactUsecase {
	return &contactUsecase{
		sender:    sender,
		validator: v,
		secLogger: secLogger,
		metrics:   m,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Validate trims every field and runs all field rules
func (uc *contactUsecase) Validate(sub domain.ContactSubmission, locale domain.Locale) (domain.ContactSubmission, domain.FieldErrors) {
	clean := sub.Trimmed()

	err := uc.validator.Struct(clean)
	if err == nil {
		return clean, nil
	}

	fieldErrs := uc.validator.FieldErrors(err, locale.String())
	if fieldErrs == nil {
		// Not a per-field failure; Submit recovers this into the generic error
		panic(fmt.Errorf("contact validation: %w", err))
	}
	return clean, domain.FieldErrors(fieldErrs)
}

// Submit validates and sends one email. It never returns provider details.
func (uc *contactUsecase) Submit(ctx context.Context, sub domain.ContactSubmission, locale domain.Locale) (result domain.SubmissionResult) {
	msgs := messagesFor(locale)
	requestID := requestIDFrom(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("contact submission panicked",
				"request_id", requestID,
				"panic", fmt.Sprint(r),
			)
			uc.metrics.RecordSubmission(metrics.OutcomeFailed)
			result = domain.SubmissionResult{Success: false, Message: msgs.Failure}
		}
	}()

	clean, fieldErrs := uc.Validate(sub, locale)
	if len(fieldErrs) > 0 {
		if uc.secLogger != nil {
			uc.secLogger.LogValidationFailed(ctx, clean.Email, requestID, sortedFields(fieldErrs))
		}
		uc.metrics.RecordSubmission(metrics.OutcomeInvalid)
		return domain.SubmissionResult{
			Success:     false,
			Message:     msgs.Validation,
			FieldErrors: fieldErrs,
		}
	}

	msg, err := uc.buildMessage(clean)
	if err != nil {
		logger.Log.Error("failed to render contact email", "request_id", requestID, "error", err)
		uc.metrics.RecordSubmission(metrics.OutcomeFailed)
		return domain.SubmissionResult{Success: false, Message: msgs.Failure}
	}

	start := uc.now()
	messageID, err := uc.sender.Send(ctx, msg)
	uc.metrics.ObserveSend(uc.cfg.Provider, uc.now().Sub(start))

	if err != nil {
		logger.Log.Error("contact email delivery failed",
			"request_id", requestID,
			"provider", uc.cfg.Provider,
			"error", err,
		)
		if uc.secLogger != nil {
			uc.secLogger.LogDeliveryFailed(ctx, clean.Email, requestID, uc.cfg.Provider, err)
		}
		uc.metrics.RecordSubmission(metrics.OutcomeFailed)
		return domain.SubmissionResult{Success: false, Message: msgs.Failure}
	}

	logger.Log.Info("contact email sent",
		"request_id", requestID,
		"provider", uc.cfg.Provider,
		"message_id", messageID,
	)
	uc.metrics.RecordSubmission(metrics.OutcomeSent)

	return domain.SubmissionResult{Success: true, Message: msgs.Success}
}

func (uc *contactUsecase) buildMessage(sub domain.ContactSubmission) (*email.Message, error) {
	html, text, err := email.RenderContactEmail(email.ContactEmailData{
		SenderName:  sub.Name,
		SenderEmail: sub.Email,
		Subject:     sub.Subject,
		Message:     sub.Message,
		SiteOwner:   uc.cfg.SiteOwner,
		Year:        uc.now().Year(),
	})
	if err != nil {
		return nil, err
	}

	return &email.Message{
		From:     uc.cfg.From,
		To:       []string{uc.cfg.To},
		ReplyTo:  sub.Email,
		Subject:  uc.cfg.SubjectPrefix + sub.Subject,
		HTMLBody: html,
		TextBody: text,
	}, nil
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyRequestID).(string)
	return id
}

func sortedFields(fe domain.FieldErrors) []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
