package middleware

import (
	"net/http"

	"go-portfolio-site/internal/domain"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// LocaleCookieName remembers the visitor's last explicit language choice
	LocaleCookieName = "locale"
	localeCookieAge  = 365 * 24 * 60 * 60
)

var localeMatcher = language.NewMatcher([]language.Tag{
	language.English, // first entry is the matcher's fallback
	language.French,
})

// MatchAcceptLanguage picks a supported locale from an Accept-Language header.
func MatchAcceptLanguage(header string, fallback domain.Locale) domain.Locale {
	if header == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return domain.SupportedLocales[idx]
}

// NegotiateLocale resolves the locale for a request without a locale path
// segment: ?locale= first, then the locale cookie, then Accept-Language.
func NegotiateLocale(c *gin.Context, fallback domain.Locale) domain.Locale {
	if loc, ok := domain.ParseLocale(c.Query("locale")); ok {
		return loc
	}
	if cookie, err := c.Cookie(LocaleCookieName); err == nil {
		if loc, ok := domain.ParseLocale(cookie); ok {
			return loc
		}
	}
	return MatchAcceptLanguage(c.GetHeader("Accept-Language"), fallback)
}

// LocaleMiddleware stores the request locale in the gin context. Routes with
// a :locale segment use it verbatim when supported, and persist it in a cookie.
// An unsupported segment is left for the handler to reject.
func LocaleMiddleware(fallback domain.Locale, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc := NegotiateLocale(c, fallback)

		if param := c.Param("locale"); param != "" {
			if parsed, ok := domain.ParseLocale(param); ok {
				loc = parsed
				if cookie, err := c.Cookie(LocaleCookieName); err != nil || cookie != string(parsed) {
					c.SetSameSite(http.SameSiteLaxMode)
					c.SetCookie(LocaleCookieName, string(parsed), localeCookieAge, "/", "", secureCookies, true)
				}
			}
		}

		c.Set(string(domain.KeyLocale), loc)
		c.Next()
	}
}

// LocaleFromContext returns the locale set by LocaleMiddleware.
func LocaleFromContext(c *gin.Context) domain.Locale {
	if v, ok := c.Get(string(domain.KeyLocale)); ok {
		if loc, ok := v.(domain.Locale); ok {
			return loc
		}
	}
	return domain.DefaultLocale
}
