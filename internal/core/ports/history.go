package ports

import (
	"context"

	"github.com/ai-autopilot/gateway/internal/core/domain"
)

// HistoryRepository persists command/response exchanges.
type HistoryRepository interface {
	Insert(ctx context.Context, record *domain.HistoryRecord) error
	FindByUser(ctx context.Context, userID string, limit int) ([]domain.HistoryRecord, error)
}

// HistoryCache is a best-effort read cache over recent history. A miss is
// (nil, nil); cache errors must never fail a read path.
type HistoryCache interface {
	Get(ctx context.Context, userID string) ([]domain.HistoryRecord, error)
	Set(ctx context.Context, userID string, records []domain.HistoryRecord) error
	Invalidate(ctx context.Context, userID string) error
}

// HistoryService records exchanges and serves the per-user recent list.
type HistoryService interface {
	Record(ctx context.Context, record domain.HistoryRecord) error
	Recent(ctx context.Context, userID string) ([]domain.HistoryRecord, error)
}
