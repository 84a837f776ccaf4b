package v1

import (
	"net/http"

	"go-portfolio-site/internal/delivery/http/middleware"
	"go-portfolio-site/internal/delivery/http/response"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes. limit guards the POST only.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", limit, handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates the message and forwards it by email. Field errors are returned under "error", keyed by field name.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        locale   query     string                    false  "Message language (en, fr)"
// @Param        contact  body      domain.ContactSubmission  true   "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response{error=domain.FieldErrors}
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	res := h.contactUC.Submit(c.Request.Context(), req, middleware.LocaleFromContext(c))

	switch {
	case res.Success:
		response.Success(c, http.StatusOK, res.Message, nil)
	case res.IsValidationFailure():
		c.Error(apperror.Validation(res.Message, res.FieldErrors))
	default:
		// Message is already generic; nothing about the cause is attached
		c.Error(apperror.New(http.StatusInternalServerError, res.Message, nil))
	}
}
