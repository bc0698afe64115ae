package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/ai-autopilot/gateway/internal/auth"
	"github.com/ai-autopilot/gateway/internal/core/domain"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account // keyed by email
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Insert(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Email]; exists {
		return nil, domain.ErrAccountExists
	}
	r.nextID++
	created := cloneAccount(account)
	created.ID = "acc-" + strconv.Itoa(r.nextID)
	r.accounts[created.Email] = cloneAccount(created)
	return created, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if a, ok := r.accounts[email]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func newTestAuthService(t *testing.T, repo *stubAccountRepo) *AuthService {
	t.Helper()
	tokens, err := auth.NewTokenService(auth.SigningContext{
		Secret:    "test-secret",
		Algorithm: "HS256",
		Expiry:    time.Hour,
	})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return NewAuthService(repo, tokens)
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(t, repo)

	token, account, err := svc.Signup(context.Background(), "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if account == nil || account.ID == "" {
		t.Fatalf("expected a stored account with id, got %+v", account)
	}
	if account.PasswordHash == "secret123" {
		t.Fatalf("expected password to be hashed")
	}
	if !auth.VerifyPassword("secret123", account.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(t, repo)

	if _, _, err := svc.Signup(context.Background(), "a@x.com", "first"); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, _, err := svc.Signup(context.Background(), "a@x.com", "second"); !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
	if len(repo.accounts) != 1 {
		t.Fatalf("duplicate signup must not mutate the store, have %d accounts", len(repo.accounts))
	}
}

func TestAuthService_Signup_EmptyPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(t, repo)

	if _, _, err := svc.Signup(context.Background(), "a@x.com", ""); !errors.Is(err, auth.ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
	if len(repo.accounts) != 0 {
		t.Fatalf("failed signup must not insert")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(t, repo)

	_, created, err := svc.Signup(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	token, account, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if account.ID != created.ID {
		t.Fatalf("login resolved a different account: %s vs %s", account.ID, created.ID)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(t, repo)

	if _, _, err := svc.Signup(context.Background(), "dave@x.com", "goodpass"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, _, wrongPass := svc.Login(context.Background(), "dave@x.com", "badpass")
	_, _, noAccount := svc.Login(context.Background(), "ghost@x.com", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(noAccount, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", noAccount)
	}
	if wrongPass.Error() != noAccount.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPass, noAccount)
	}
}

func TestAuthService_Profile(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(t, repo)

	_, created, err := svc.Signup(context.Background(), "eve@x.com", "pass")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	account, err := svc.Profile(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("profile returned error: %v", err)
	}
	if account.Email != "eve@x.com" {
		t.Fatalf("unexpected account: %+v", account)
	}

	if _, err := svc.Profile(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

// A token minted by signup must validate against the same signing context
// the request gate uses.
func TestAuthService_TokenRoundTrip(t *testing.T) {
	sc := auth.SigningContext{Secret: "shared", Algorithm: "HS256", Expiry: time.Hour}
	tokens, err := auth.NewTokenService(sc)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	svc := NewAuthService(newStubAccountRepo(), tokens)

	token, created, err := svc.Signup(context.Background(), "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	claims, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != created.ID {
		t.Fatalf("subject mismatch: %s vs %s", claims.Subject, created.ID)
	}

	// Login issues a fresh token for the same subject.
	token2, _, err := svc.Login(context.Background(), "a@x.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims2, err := tokens.Validate(token2)
	if err != nil {
		t.Fatalf("validate second token: %v", err)
	}
	if claims2.Subject != created.ID {
		t.Fatalf("second token resolves a different subject")
	}
}
