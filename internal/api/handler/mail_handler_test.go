package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubMailService struct {
	sends []string
	err   error
}

func (s *stubMailService) Send(_ context.Context, userID, to, subject, body string) error {
	s.sends = append(s.sends, userID+"|"+to+"|"+subject+"|"+body)
	return s.err
}

func TestMailHandler_Send(t *testing.T) {
	stub := &stubMailService{}
	h := NewMailHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/email",
		`{"to":"friend@example.com","subject":"hello","message":"hi there"}`)
	setIdentity(c, "user-1", "me@x.com")

	if err := h.Send(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.sends) != 1 || stub.sends[0] != "user-1|friend@example.com|hello|hi there" {
		t.Fatalf("unexpected send: %v", stub.sends)
	}
}

func TestMailHandler_Send_Validation(t *testing.T) {
	stub := &stubMailService{}
	h := NewMailHandler(stub)

	cases := []string{
		`{"subject":"s","message":"m"}`,
		`{"to":"not-an-email","subject":"s","message":"m"}`,
		`{"to":"a@x.com","message":"m"}`,
		`{"to":"a@x.com","subject":"s"}`,
	}
	for _, body := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/v1/email", body)
		setIdentity(c, "user-1", "")

		err := h.Send(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %s: expected 422, got %v", body, err)
		}
	}
	if len(stub.sends) != 0 {
		t.Fatalf("invalid requests must not send: %v", stub.sends)
	}
}

func TestMailHandler_Send_Unauthenticated(t *testing.T) {
	h := NewMailHandler(&stubMailService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/email",
		`{"to":"a@x.com","subject":"s","message":"m"}`)
	err := h.Send(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %v", err)
	}
}
