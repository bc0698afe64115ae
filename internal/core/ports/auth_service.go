package ports

import (
	"context"

	"github.com/ai-autopilot/gateway/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, email, password string) (string, *domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	Profile(ctx context.Context, id string) (*domain.Account, error)
}
