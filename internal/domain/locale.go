package domain

import "strings"

// Locale is a supported site language.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleFR Locale = "fr"
)

// DefaultLocale is served when nothing else matches.
const DefaultLocale = LocaleEN

// SupportedLocales lists locales in negotiation priority order.
var SupportedLocales = []Locale{LocaleEN, LocaleFR}

// ParseLocale returns the supported locale for s and whether it was recognised.
func ParseLocale(s string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocaleEN:
		return LocaleEN, true
	case LocaleFR:
		return LocaleFR, true
	}
	return DefaultLocale, false
}

func (l Locale) String() string {
	return string(l)
}
