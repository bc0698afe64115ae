package domain

import "time"

// HistoryRecord is one command/response exchange persisted for a user.
type HistoryRecord struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	Command   string    `json:"command"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
