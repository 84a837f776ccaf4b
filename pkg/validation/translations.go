package validation

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to user-facing labels per locale
var FieldLabels = map[string]map[string]string{
	"en": {
		"name":    "Name",
		"email":   "Email",
		"subject": "Subject",
		"message": "Message",
	},
	"fr": {
		"name":    "Nom",
		"email":   "E-mail",
		"subject": "Sujet",
		"message": "Message",
	},
}

// messages holds the text for each validation tag per locale.
// {0} is the field label, {1} the tag parameter.
var messages = map[string]map[string]string{
	"en": {
		"required": "{0} is required",
		"min":      "{0} must be at least {1} characters",
		"max":      "{0} must be at most {1} characters",
		"email":    "Invalid email address",
		"invalid":  "{0} is invalid",
	},
	"fr": {
		"required": "{0} est requis",
		"min":      "{0} doit contenir au moins {1} caractères",
		"max":      "{0} doit contenir au plus {1} caractères",
		"email":    "Adresse e-mail invalide",
		"invalid":  "{0} est invalide",
	},
}

// parameterized tags take the tag parameter as {1}
var parameterized = map[string]bool{"min": true, "max": true}

// RegisterTranslations registers messages for every supported locale on v
func RegisterTranslations(v *validator.Validate, uni *ut.UniversalTranslator) error {
	for locale, texts := range messages {
		trans, found := uni.GetTranslator(locale)
		if !found {
			return fmt.Errorf("validation: translator for %q not available", locale)
		}
		for tag, text := range texts {
			if tag == "invalid" {
				if err := trans.Add(tag, text, true); err != nil {
					return fmt.Errorf("validation: add %s/%s: %w", locale, tag, err)
				}
				continue
			}
			if err := v.RegisterTranslation(tag, trans, registerText(tag, text), translate(locale)); err != nil {
				return fmt.Errorf("validation: register %s/%s: %w", locale, tag, err)
			}
		}
	}
	return nil
}

func registerText(tag, text string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, text, true)
	}
}

func translate(locale string) validator.TranslationFunc {
	return func(trans ut.Translator, fe validator.FieldError) string {
		label := Label(locale, fe.Field())
		var (
			msg string
			err error
		)
		if parameterized[fe.Tag()] {
			msg, err = trans.T(fe.Tag(), label, fe.Param())
		} else {
			msg, err = trans.T(fe.Tag(), label)
		}
		if err != nil {
			return fe.Error()
		}
		return msg
	}
}

// Label returns the display label of field in locale
func Label(locale, field string) string {
	if labels, ok := FieldLabels[locale]; ok {
		if label, ok := labels[field]; ok {
			return label
		}
	}
	if label, ok := FieldLabels["en"][field]; ok {
		return label
	}
	return formatCamelCase(field)
}
