package handler

import (
	"time"

	"github.com/ai-autopilot/gateway/internal/core/domain"
)

type commandRequest struct {
	Command string `json:"command" validate:"required"`
}

type commandResponse struct {
	Response string `json:"response"`
}

type historyItem struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

type historyResponse struct {
	UserID  string        `json:"user_id"`
	History []historyItem `json:"history"`
}

func toHistoryResponse(userID string, records []domain.HistoryRecord) historyResponse {
	items := make([]historyItem, 0, len(records))
	for _, r := range records {
		items = append(items, historyItem{
			ID:        r.ID,
			Command:   r.Command,
			Response:  r.Response,
			CreatedAt: r.CreatedAt,
		})
	}
	return historyResponse{UserID: userID, History: items}
}
