package web

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-portfolio-site/internal/delivery/http/middleware"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"
	"go-portfolio-site/pkg/imageopt"
	"go-portfolio-site/pkg/logger"
	"go-portfolio-site/pkg/metrics"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Deps are the collaborators of the HTML site
type Deps struct {
	ContactUC domain.ContactUsecase
	ContentUC domain.ContentUsecase
	ResumeUC  domain.ResumeUsecase
	Optimizer *imageopt.Optimizer
	Metrics   *metrics.Metrics

	DefaultLocale domain.Locale
	PublicDir     string
	SecureCookies bool

	// PageLimit applies to page, form and image routes, not to static assets
	PageLimit gin.HandlerFunc
	// ContactLimit is the contact budget; its config must render through RateLimited
	ContactLimit func(onLimited func(c *gin.Context, retryAfter int)) gin.HandlerFunc
}

type Handler struct {
	deps Deps
	now  func() time.Time
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

// Register mounts the HTML site on r: pages, the contact form, CV downloads,
// embedded assets, public files and resized images.
func Register(r *gin.Engine, deps Deps) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}

	h := &Handler{deps: deps, now: time.Now}

	pageLimit := deps.PageLimit
	if pageLimit == nil {
		pageLimit = func(c *gin.Context) { c.Next() }
	}

	r.StaticFS("/static", http.FS(static))
	r.Static("/public", deps.PublicDir)
	// Resizing costs a decode per uncached variant, so it shares the page budget
	r.GET("/img", pageLimit, h.Image)
	contactLimit := func(c *gin.Context) { c.Next() }
	if deps.ContactLimit != nil {
		contactLimit = deps.ContactLimit(h.RateLimited)
	}

	r.GET("/", h.Root)

	site := r.Group("/:locale")
	site.Use(
		pageLimit,
		middleware.LocaleMiddleware(deps.DefaultLocale, deps.SecureCookies),
		middleware.CSRFMiddleware(middleware.CSRFConfig{
			SecureCookies: deps.SecureCookies,
			OnRejected:    h.CSRFRejected,
		}),
	)
	{
		site.GET("", h.Page)
		site.POST("/contact", contactLimit, h.SubmitContact)
		site.GET("/cv", h.DownloadCV)
	}

	r.NoRoute(h.NotFound)
	return nil
}

// Root sends the visitor to their negotiated language.
func (h *Handler) Root(c *gin.Context) {
	loc := middleware.NegotiateLocale(c, h.deps.DefaultLocale)
	c.Redirect(http.StatusFound, "/"+loc.String())
}

// Page renders the one-page site. A recent successful submission shows its
// banner until the display duration has elapsed.
func (h *Handler) Page(c *gin.Context) {
	locale, ok := domain.ParseLocale(c.Param("locale"))
	if !ok {
		h.NotFound(c)
		return
	}

	p, err := h.deps.ContentUC.GetPortfolio(c.Request.Context(), locale)
	if err != nil {
		h.renderError(c, err)
		return
	}

	form := domain.NewContactForm()
	if f, ok := h.readFlash(c); ok {
		restoreFlash(form, f, p)
	}
	form.Tick(h.now())

	h.render(c, http.StatusOK, p, form)
}

// SubmitContact handles the urlencoded form. Success redirects (303) so a
// reload cannot resend; failures re-render with the visitor's input kept.
func (h *Handler) SubmitContact(c *gin.Context) {
	locale, ok := domain.ParseLocale(c.Param("locale"))
	if !ok {
		h.NotFound(c)
		return
	}

	p, err := h.deps.ContentUC.GetPortfolio(c.Request.Context(), locale)
	if err != nil {
		h.renderError(c, err)
		return
	}

	var sub domain.ContactSubmission
	// Missing fields stay empty and are reported by validation
	_ = c.ShouldBind(&sub)

	form := domain.NewContactForm()
	if err := form.Begin(sub); err != nil {
		h.renderError(c, err)
		return
	}

	res := h.deps.ContactUC.Submit(c.Request.Context(), sub, locale)
	now := h.now()
	if err := form.Resolve(res, now); err != nil {
		h.renderError(c, err)
		return
	}

	if res.Success {
		h.writeFlash(c, flash{Success: true, At: now.Unix()})
		c.Redirect(http.StatusSeeOther, "/"+locale.String()+"#contact")
		return
	}

	status := http.StatusInternalServerError
	if res.IsValidationFailure() {
		status = http.StatusUnprocessableEntity
	}
	h.render(c, status, p, form)
}

// RateLimited renders the page with the form kept and a localized notice.
func (h *Handler) RateLimited(c *gin.Context, retryAfter int) {
	h.renderRejected(c, http.StatusTooManyRequests, "contact.form.rateLimited")
}

// CSRFRejected re-renders the form with the visitor's input and a fresh
// token, typically after the token cookie expired or was cleared.
func (h *Handler) CSRFRejected(c *gin.Context) {
	h.renderRejected(c, http.StatusForbidden, "contact.form.expired")
}

// renderRejected shows a form that never reached the contact usecase as an
// error outcome, keeping the posted values.
func (h *Handler) renderRejected(c *gin.Context, status int, messageKey string) {
	locale, ok := domain.ParseLocale(c.Param("locale"))
	if !ok {
		locale = h.deps.DefaultLocale
	}
	p, err := h.deps.ContentUC.GetPortfolio(c.Request.Context(), locale)
	if err != nil {
		h.renderError(c, err)
		return
	}

	var sub domain.ContactSubmission
	_ = c.ShouldBind(&sub)

	form := domain.NewContactForm()
	_ = form.Begin(sub)
	_ = form.Resolve(domain.SubmissionResult{Message: p.T(messageKey)}, h.now())

	h.render(c, status, p, form)
}

// DownloadCV redirects to the CV for the locale.
func (h *Handler) DownloadCV(c *gin.Context) {
	locale, ok := domain.ParseLocale(c.Param("locale"))
	if !ok {
		h.NotFound(c)
		return
	}

	target, err := h.deps.ResumeUC.DownloadURL(c.Request.Context(), locale)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// Image serves a resized JPEG of a file under /public.
func (h *Handler) Image(c *gin.Context) {
	opts, err := imageopt.ParseOptions(c.Query("w"), c.Query("q"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	out, hit, err := h.deps.Optimizer.Optimize(c.Query("src"), opts)
	if err != nil {
		switch {
		case errors.Is(err, imageopt.ErrInvalidSource):
			c.String(http.StatusBadRequest, err.Error())
		case errors.Is(err, fs.ErrNotExist):
			c.Status(http.StatusNotFound)
		default:
			logger.Log.Warn("image optimization failed", "src", c.Query("src"), "error", err)
			c.Status(http.StatusUnprocessableEntity)
		}
		return
	}

	h.deps.Metrics.IncImageOptimized(opts.Width, hit)
	if hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, "image/jpeg", out)
}

// NotFound renders the 404 page in the negotiated language.
func (h *Handler) NotFound(c *gin.Context) {
	h.renderErrorPage(c, http.StatusNotFound, "error.notFound")
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == http.StatusNotFound {
		h.NotFound(c)
		return
	}

	logger.Log.Error("page render failed",
		"request_id", c.GetString(string(domain.KeyRequestID)),
		"path", c.Request.URL.Path,
		"error", err,
	)
	h.renderErrorPage(c, http.StatusInternalServerError, "error.generic")
}

func (h *Handler) renderErrorPage(c *gin.Context, status int, key string) {
	loc := middleware.NegotiateLocale(c, h.deps.DefaultLocale)
	p, err := h.deps.ContentUC.GetPortfolio(c.Request.Context(), loc)
	if err != nil {
		c.String(status, http.StatusText(status))
		return
	}

	c.HTML(status, "error.html", errorView{
		Locale:      loc,
		P:           p,
		Title:       p.T(key + ".title"),
		Description: p.T(key + ".description"),
		Year:        h.now().Year(),
	})
}

func (h *Handler) render(c *gin.Context, status int, p *domain.Portfolio, form *domain.ContactForm) {
	c.HTML(status, "index.html", pageView{
		Locale:      p.Locale,
		AltLocale:   alternate(p.Locale),
		P:           p,
		Form:        form,
		CSRFToken:   middleware.CSRFToken(c),
		DismissInMs: form.DismissAfter(h.now()).Milliseconds(),
		Year:        h.now().Year(),
	})
}

type pageView struct {
	Locale      domain.Locale
	AltLocale   domain.Locale
	P           *domain.Portfolio
	Form        *domain.ContactForm
	CSRFToken   string
	DismissInMs int64
	Year        int
}

type errorView struct {
	Locale      domain.Locale
	P           *domain.Portfolio
	Title       string
	Description string
	Year        int
}

func alternate(loc domain.Locale) domain.Locale {
	for _, l := range domain.SupportedLocales {
		if l != loc {
			return l
		}
	}
	return loc
}

var templateFuncs = template.FuncMap{
	"imgURL": func(src string, width int) string {
		return "/img?src=" + url.QueryEscape(src) + "&w=" + strconv.Itoa(width)
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"fields": func() []string { return domain.ContactFields },
}
