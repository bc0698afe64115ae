package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-autopilot/gateway/internal/core/ports"
)

// HistoryHandler serves each user's recent command history.
type HistoryHandler struct {
	history ports.HistoryService
}

func NewHistoryHandler(history ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// Recent handles GET /v1/history: the caller's own latest exchanges,
// newest first.
//
// @Summary      List recent command history
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  historyResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/history [get]
func (h *HistoryHandler) Recent(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	records, err := h.history.Recent(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHistoryResponse(identity.UserID, records))
}
