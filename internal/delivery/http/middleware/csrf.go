package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"go-portfolio-site/internal/delivery/http/response"
	"go-portfolio-site/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is checked first on state-changing requests
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenFormField is the hidden input used by server-rendered forms
	CSRFTokenFormField = "csrf_token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour

	csrfContextKey = "csrf_token"
)

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFConfig holds CSRF middleware settings
type CSRFConfig struct {
	SecureCookies bool
	// OnRejected renders the response for a failed check; the request is
	// aborted afterwards. Nil means a JSON 403. CSRFToken(c) already holds a
	// valid token when it runs, so a re-rendered form can be resubmitted.
	OnRejected func(c *gin.Context)
}

// CSRFMiddleware implements the Double-Submit Cookie pattern.
//
// Every response makes sure a csrf_token cookie exists. For POST, PUT, PATCH
// and DELETE the same value must come back either in the X-CSRF-Token header
// or in the csrf_token form field. Handlers read the token with CSRFToken to
// render it into forms.
func CSRFMiddleware(config CSRFConfig) gin.HandlerFunc {
	secureCookies := config.SecureCookies
	return func(c *gin.Context) {
		csrfCookie, err := c.Cookie(CSRFTokenCookieName)

		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				c.Abort()
				return
			}

			// SameSite=Lax allows top-level navigations but not cross-site subrequests
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				CSRFTokenCookieName,
				newToken,
				int(CSRFTokenExpiry.Seconds()),
				"/",
				"",            // Domain (empty = current domain)
				secureCookies, // Secure (HTTPS only)
				false,         // HttpOnly = false so JS can read it
			)
			csrfCookie = newToken
		}
		c.Set(csrfContextKey, csrfCookie)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFTokenHeaderName)
		if submitted == "" {
			submitted = c.PostForm(CSRFTokenFormField)
		}

		if submitted == "" {
			rejectCSRF(c, config.OnRejected, "missing_token", "Missing CSRF token")
			return
		}
		if subtle.ConstantTimeCompare([]byte(submitted), []byte(csrfCookie)) != 1 {
			rejectCSRF(c, config.OnRejected, "token_mismatch", "Invalid CSRF token")
			return
		}

		c.Next()
	}
}

// CSRFToken returns the token for the current request, for embedding in forms
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}

func rejectCSRF(c *gin.Context, onRejected func(*gin.Context), reason, message string) {
	if logger := security.DefaultLogger(); logger != nil {
		logger.LogCSRFRejected(
			c.Request.Context(),
			c.ClientIP(),
			c.GetHeader("User-Agent"),
			response.RequestID(c),
			c.Request.URL.Path,
			reason,
		)
	}
	if onRejected != nil {
		onRejected(c)
		c.Abort()
		return
	}
	response.Error(c, http.StatusForbidden, message, nil)
	c.Abort()
}
