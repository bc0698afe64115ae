package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-autopilot/gateway/internal/core/ports"
)

// CommandHandler proxies natural-language commands to the hosted model.
type CommandHandler struct {
	commands ports.CommandService
}

func NewCommandHandler(commands ports.CommandService) *CommandHandler {
	return &CommandHandler{commands: commands}
}

// Run handles POST /v1/commands. The subject is the authenticated identity;
// a user id in the body would be ignored, not trusted.
//
// @Summary      Run a command through the model
// @Tags         commands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      commandRequest  true  "Command to run"
// @Success      200   {object}  commandResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/commands [post]
func (h *CommandHandler) Run(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req commandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	response, err := h.commands.Run(c.Request().Context(), identity.UserID, req.Command)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commandResponse{Response: response})
}
