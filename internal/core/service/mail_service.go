package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ai-autopilot/gateway/internal/api/metrics"
	"github.com/ai-autopilot/gateway/internal/core/ports"
)

// MailService relays outbound email for an authenticated subject. Recipient
// and subject validation happens at the handler; this layer owns delivery,
// logging and metrics.
type MailService struct {
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewMailService(mailer ports.Mailer, log zerolog.Logger) *MailService {
	return &MailService{mailer: mailer, log: log}
}

func (s *MailService) Send(ctx context.Context, userID, to, subject, body string) error {
	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("user_id", userID).Str("to", to).Msg("email delivery failed")
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("user_id", userID).Str("to", to).Msg("email sent")
	return nil
}
