package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-autopilot/gateway/internal/core/ports"
)

type emailRequest struct {
	To      string `json:"to"      validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type emailResponse struct {
	Message string `json:"message"`
}

// MailHandler relays outbound email for authenticated users.
type MailHandler struct {
	mail ports.MailService
}

func NewMailHandler(mail ports.MailService) *MailHandler {
	return &MailHandler{mail: mail}
}

// Send handles POST /v1/email, a synchronous plain-text relay.
//
// @Summary      Send an email
// @Tags         email
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      emailRequest  true  "Email to send"
// @Success      200   {object}  emailResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/email [post]
func (h *MailHandler) Send(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.mail.Send(c.Request().Context(), identity.UserID, req.To, req.Subject, req.Message); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emailResponse{Message: "email sent"})
}
