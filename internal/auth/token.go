package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired means the token was well-formed and correctly signed but
	// its expiry instant has passed. Kept distinct from ErrTokenInvalid so
	// callers can log (not expose) the difference.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers everything else: bad signature, malformed
	// structure, wrong algorithm, or missing required claims.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrReservedClaim is returned when extra claims collide with the fixed
	// claim schema at issuance time.
	ErrReservedClaim = errors.New("extra claim uses a reserved name")
)

// reservedClaims are owned by the token service and may not appear in the
// caller-supplied extension mapping.
var reservedClaims = map[string]bool{"sub": true, "exp": true, "iat": true, "nbf": true}

// Claims is the fixed claim schema: a subject id and expiry from
// RegisteredClaims, an optional email, plus a typed extension mapping.
type Claims struct {
	Email string            `json:"email,omitempty"`
	Extra map[string]string `json:"extra,omitempty"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies bearer tokens against one SigningContext.
// The clock is injectable so expiry behaviour is testable without sleeping.
type TokenService struct {
	sc  SigningContext
	now func() time.Time
}

// NewTokenService builds a TokenService. The context must already be
// resolved and valid; an unusable context is a startup defect, reported as
// ErrConfig rather than deferred to the first request.
func NewTokenService(sc SigningContext) (*TokenService, error) {
	if !sc.Valid() {
		return nil, fmt.Errorf("%w: token service requires a resolved signing context", ErrConfig)
	}
	return &TokenService{sc: sc, now: time.Now}, nil
}

// Issue signs a token asserting subjectID until now + expiry. Extra claims
// ride along under "extra"; email, when non-empty, becomes its own claim.
func (s *TokenService) Issue(subjectID, email string, extra map[string]string) (string, error) {
	if subjectID == "" {
		return "", fmt.Errorf("%w: subject id is empty", ErrTokenInvalid)
	}
	for name := range extra {
		if reservedClaims[name] || name == "email" {
			return "", fmt.Errorf("%w: %q", ErrReservedClaim, name)
		}
	}

	now := s.now().UTC()
	claims := Claims{
		Email: email,
		Extra: extra,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sc.Expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.GetSigningMethod(s.sc.Algorithm), claims)
	return token.SignedString([]byte(s.sc.Secret))
}

// Validate parses and verifies a compact token string. On success the
// returned claims carry a non-empty subject. On failure the error is exactly
// one of ErrTokenExpired or ErrTokenInvalid, and no claims are returned:
// partially-trusted claim sets do not leave this function.
func (s *TokenService) Validate(raw string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.sc.Algorithm}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.sc.Secret), nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	case !token.Valid:
		return nil, ErrTokenInvalid
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrTokenInvalid)
	}
	return claims, nil
}
