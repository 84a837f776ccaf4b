package validation

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldErrors converts validator.ValidationErrors into localized messages keyed
// by field name. It returns nil when err is not a validation failure.
func (v *Validator) FieldErrors(err error, locale string) map[string][]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	trans := v.Translator(locale)
	out := make(map[string][]string, len(validationErrors))
	for _, e := range validationErrors {
		msg := e.Translate(trans)
		if msg == "" || msg == e.Error() {
			// Tag without a registered translation
			msg, _ = trans.T("invalid", Label(locale, e.Field()))
		}
		out[e.Field()] = append(out[e.Field()], msg)
	}
	return out
}

// formatCamelCase converts camelCase field names to capitalized, spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i == 0 {
			result.WriteRune(unicode.ToUpper(r))
			continue
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
