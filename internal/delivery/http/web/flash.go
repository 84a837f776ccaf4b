package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"go-portfolio-site/internal/domain"

	"github.com/gin-gonic/gin"
)

const flashCookieName = "contact_flash"

// flash carries a contact outcome across the post/redirect/get hop. It holds
// no text: the banner is rebuilt from the content strings of the page locale.
type flash struct {
	Success bool  `json:"s"`
	At      int64 `json:"t"`
}

func (h *Handler) writeFlash(c *gin.Context, f flash) {
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, base64.RawURLEncoding.EncodeToString(raw),
		int(domain.StatusDisplayDuration.Seconds())*2, "/", "", h.deps.SecureCookies, true)
}

// readFlash consumes the flash cookie. Malformed values are dropped.
func (h *Handler) readFlash(c *gin.Context) (flash, bool) {
	value, err := c.Cookie(flashCookieName)
	if err != nil || value == "" {
		return flash{}, false
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, "", -1, "/", "", h.deps.SecureCookies, true)

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return flash{}, false
	}
	var f flash
	// Only successes are flashed; failures re-render in place
	if err := json.Unmarshal(raw, &f); err != nil || !f.Success || f.At <= 0 || f.At > h.now().Unix() {
		return flash{}, false
	}
	return f, true
}

// restoreFlash replays the outcome through the form state machine so the
// usual display rules apply.
func restoreFlash(form *domain.ContactForm, f flash, p *domain.Portfolio) {
	if err := form.Begin(domain.ContactSubmission{}); err != nil {
		return
	}
	_ = form.Resolve(domain.SubmissionResult{Success: true, Message: p.T("contact.form.success")}, time.Unix(f.At, 0))
}
