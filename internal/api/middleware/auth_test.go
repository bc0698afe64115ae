package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ai-autopilot/gateway/internal/auth"
)

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService(auth.SigningContext{
		Secret:    "gate-secret",
		Algorithm: "HS256",
		Expiry:    time.Hour,
	})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return tokens
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := newTestTokens(t)

	signed, err := tokens.Issue("user-42", "a@x.com", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(tokens, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "user-42" {
			t.Fatalf("user id not set, got %v", c.Get(CtxUserID))
		}
		if c.Get(CtxEmail) != "a@x.com" {
			t.Fatalf("email not set, got %v", c.Get(CtxEmail))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	mw := Auth(newTestTokens(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error {
		t.Fatalf("next must not be called")
		return nil
	})(c)

	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_NotBearerScheme(t *testing.T) {
	e := echo.New()
	mw := Auth(newTestTokens(t), zerolog.Nop())

	for _, header := range []string{"Basic abc123", "Bearer", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := mw(func(c echo.Context) error { return nil })(c)
		assertHTTPError(t, err, http.StatusUnauthorized)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	e := echo.New()
	tokens := newTestTokens(t)

	// Sign an already-expired token with the gate's own secret.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	signed, err := expired.SignedString([]byte("gate-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = Auth(tokens, zerolog.Nop())(func(c echo.Context) error { return nil })(c)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuth_ForeignToken(t *testing.T) {
	e := echo.New()
	tokens := newTestTokens(t)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := foreign.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = Auth(tokens, zerolog.Nop())(func(c echo.Context) error { return nil })(c)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

// Expired and invalid tokens must yield the same external message.
func TestAuth_UniformRejectionMessage(t *testing.T) {
	e := echo.New()
	tokens := newTestTokens(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	expiredSigned, _ := expired.SignedString([]byte("gate-secret"))

	messages := make(map[string]bool)
	for _, raw := range []string{expiredSigned, "garbage-token"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		c := e.NewContext(req, httptest.NewRecorder())

		err := Auth(tokens, zerolog.Nop())(func(c echo.Context) error { return nil })(c)
		he, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("expected HTTPError, got %v", err)
		}
		messages[he.Message.(string)] = true
	}
	if len(messages) != 1 {
		t.Fatalf("rejection messages must be uniform, got %v", messages)
	}
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d", code, he.Code)
	}
}
