package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ai-autopilot/gateway/internal/api/metrics"
	"github.com/ai-autopilot/gateway/internal/core/domain"
	"github.com/ai-autopilot/gateway/internal/core/ports"
)

// RecordQueue is the interface the command service uses to hand finished
// exchanges to the history dispatcher without blocking the request.
type RecordQueue interface {
	Enqueue(record domain.HistoryRecord)
}

// CommandService proxies one natural-language command to the hosted model
// and queues the exchange for history persistence. The response goes back to
// the caller as soon as the completion returns; the history write happens on
// the dispatcher's workers.
type CommandService struct {
	client ports.CompletionClient
	queue  RecordQueue
	log    zerolog.Logger
}

func NewCommandService(client ports.CompletionClient, queue RecordQueue, log zerolog.Logger) *CommandService {
	return &CommandService{client: client, queue: queue, log: log}
}

// Run executes command on behalf of userID. The user id comes from the
// validated identity, never from the request body.
func (s *CommandService) Run(ctx context.Context, userID, command string) (string, error) {
	if command == "" {
		metrics.CommandErrorsTotal.WithLabelValues("empty_command").Inc()
		return "", domain.ErrEmptyCommand
	}

	start := time.Now()
	response, err := s.client.Complete(ctx, command)
	metrics.CommandDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CommandErrorsTotal.WithLabelValues("completion_failed").Inc()
		s.log.Error().Err(err).Str("user_id", userID).Msg("completion failed")
		return "", err
	}
	metrics.CommandsProcessedTotal.Inc()

	s.queue.Enqueue(domain.HistoryRecord{
		UserID:    userID,
		Command:   command,
		Response:  response,
		CreatedAt: time.Now().UTC(),
	})

	return response, nil
}
