package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// Validator runs struct validation and renders failures in the visitor's language.
type Validator struct {
	validate *validator.Validate
	uni      *ut.UniversalTranslator
}

// NewValidator builds a validator that reports fields by their json name
// and has en/fr messages registered.
func NewValidator() (*Validator, error) {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, fr.New())

	if err := RegisterTranslations(v, uni); err != nil {
		return nil, err
	}

	return &Validator{validate: v, uni: uni}, nil
}

// Struct validates s against its `validate` tags.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Translator returns the translator for locale, falling back to English.
func (v *Validator) Translator(locale string) ut.Translator {
	trans, _ := v.uni.GetTranslator(locale)
	return trans
}

// jsonFieldName reports struct fields by their json tag so error keys match the wire format
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
