package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ai-autopilot/gateway/internal/api/metrics"
	"github.com/ai-autopilot/gateway/internal/core/domain"
	"github.com/ai-autopilot/gateway/internal/core/ports"
)

// recentLimit is how many exchanges the history endpoint returns.
const recentLimit = 10

// HistoryService persists exchanges and serves each user's recent list. The
// cache is best-effort: a Redis failure degrades to a Mongo read, never to a
// request failure.
type HistoryService struct {
	repo  ports.HistoryRepository
	cache ports.HistoryCache
	log   zerolog.Logger
}

func NewHistoryService(repo ports.HistoryRepository, cache ports.HistoryCache, log zerolog.Logger) *HistoryService {
	return &HistoryService{repo: repo, cache: cache, log: log}
}

// Record inserts the exchange and drops the owner's cached list.
func (s *HistoryService) Record(ctx context.Context, record domain.HistoryRecord) error {
	if err := s.repo.Insert(ctx, &record); err != nil {
		metrics.HistoryWritesTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.HistoryWritesTotal.WithLabelValues("ok").Inc()

	if err := s.cache.Invalidate(ctx, record.UserID); err != nil {
		s.log.Warn().Err(err).Str("user_id", record.UserID).Msg("history cache invalidation failed")
	}
	return nil
}

// Recent returns the user's latest exchanges, newest first.
func (s *HistoryService) Recent(ctx context.Context, userID string) ([]domain.HistoryRecord, error) {
	if cached, err := s.cache.Get(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("history cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	records, err := s.repo.FindByUser(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, userID, records); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("history cache write failed")
	}
	return records, nil
}
