package service

import (
	"context"
	"errors"
	"time"

	"github.com/ai-autopilot/gateway/internal/auth"
	"github.com/ai-autopilot/gateway/internal/core/domain"
	"github.com/ai-autopilot/gateway/internal/core/ports"
)

// AuthService implements signup, login and profile lookup. Hashing and token
// minting are delegated to the auth package; the one TokenService instance
// injected here is the same one the request middleware verifies with, so a
// token minted on login always validates on the next call.
type AuthService struct {
	repo   ports.AccountRepository
	tokens *auth.TokenService
}

func NewAuthService(repo ports.AccountRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Signup registers a new account and returns a freshly issued token with it.
// A taken email fails with domain.ErrAccountExists whether it is caught by
// the pre-check or by the store's unique index during a concurrent race.
func (s *AuthService) Signup(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrAccountExists
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return "", nil, err
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.repo.Insert(ctx, account)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Email, nil)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the identical error; distinguishing them would let callers
// probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.VerifyPassword(password, account.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID, account.Email, nil)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// Profile returns the account for id. Any authenticated caller may look up
// any id; only public fields survive serialization (the hash is json:"-").
func (s *AuthService) Profile(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}
