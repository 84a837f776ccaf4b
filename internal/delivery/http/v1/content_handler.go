package v1

import (
	"net/http"

	"go-portfolio-site/internal/delivery/http/response"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentUC domain.ContentUsecase
}

func NewContentHandler(r *gin.RouterGroup, contentUC domain.ContentUsecase) {
	handler := &ContentHandler{contentUC: contentUC}

	content := r.Group("/content")
	{
		content.GET("/:locale", handler.GetPortfolio)
		content.GET("/:locale/:section", handler.GetSection)
	}
}

// GetPortfolio godoc
// @Summary      Get portfolio content
// @Description  Full localized content of the site
// @Tags         content
// @Produce      json
// @Param        locale  path      string  true  "Locale (en, fr)"
// @Success      200     {object}  response.Response{data=domain.Portfolio}
// @Failure      404     {object}  response.Response
// @Router       /content/{locale} [get]
func (h *ContentHandler) GetPortfolio(c *gin.Context) {
	locale, ok := domain.ParseLocale(c.Param("locale"))
	if !ok {
		c.Error(apperror.NotFound("Locale not supported"))
		return
	}

	p, err := h.contentUC.GetPortfolio(c.Request.Context(), locale)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Portfolio content", p)
}

// GetSection godoc
// @Summary      Get one content section
// @Tags         content
// @Produce      json
// @Param        locale   path      string  true  "Locale (en, fr)"
// @Param        section  path      string  true  "experience, projects or skills"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /content/{locale}/{section} [get]
func (h *ContentHandler) GetSection(c *gin.Context) {
	locale, ok := domain.ParseLocale(c.Param("locale"))
	if !ok {
		c.Error(apperror.NotFound("Locale not supported"))
		return
	}

	data, err := h.contentUC.GetSection(c.Request.Context(), locale, c.Param("section"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Portfolio section", data)
}
