package ports

import (
	"context"

	"github.com/ai-autopilot/gateway/internal/core/domain"
)

// AccountRepository is the contract the auth flows assume of the user store.
// Insert must be atomic on the unique email key: a concurrent duplicate
// signup surfaces as domain.ErrAccountExists to at least one caller.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
