// Package auth holds the credential primitives: signing-context resolution,
// password hashing, and JWT issuance/validation. Every component that signs
// or verifies tokens receives the same resolved SigningContext by injection;
// nothing in this package (or anywhere else) re-reads the environment.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ai-autopilot/gateway/internal/infrastructure/config"
)

// devSecret is the fallback signing secret for non-production environments.
const devSecret = "dev-secret"

const defaultExpireMinutes = 60

// ErrConfig marks a signing configuration that must prevent the process from
// serving traffic.
var ErrConfig = errors.New("invalid signing configuration")

// allowedAlgorithms is the HMAC allow-list. Asymmetric methods would need a
// key-pair configuration surface this service does not have.
var allowedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// SigningContext is the single process-wide source of truth for minting and
// verifying tokens. It is resolved once in main and immutable afterwards, so
// it is safe to share across concurrent requests without locking.
type SigningContext struct {
	Secret    string
	Algorithm string
	Expiry    time.Duration
}

// ResolveSigningContext normalizes the JWT settings out of the loaded
// configuration. Precedence per key, all values trimmed:
//
//	secret:    JWT_SECRET, then SECRET_KEY, then a fixed dev value
//	algorithm: JWT_ALGORITHM, then ALGORITHM, then HS256
//	expiry:    JWT_EXPIRE_MINUTES, then ACCESS_TOKEN_EXPIRE_MINUTES, then 60
//
// In production the secret must be explicit: falling back to the dev value
// would mint tokens any copy of this repository could forge.
func ResolveSigningContext(cfg config.JWTConfig, env string) (SigningContext, error) {
	secret := firstNonEmpty(cfg.Secret, cfg.LegacySecret)
	if secret == "" {
		if strings.EqualFold(strings.TrimSpace(env), config.EnvProduction) {
			return SigningContext{}, fmt.Errorf("%w: JWT_SECRET is required in production", ErrConfig)
		}
		secret = devSecret
	}

	algorithm := firstNonEmpty(cfg.Algorithm, cfg.LegacyAlgorithm)
	if algorithm == "" {
		algorithm = "HS256"
	}
	algorithm = strings.ToUpper(algorithm)
	if !allowedAlgorithms[algorithm] {
		return SigningContext{}, fmt.Errorf("%w: unsupported algorithm %q", ErrConfig, algorithm)
	}

	minutes := cfg.ExpireMinutes
	if minutes == 0 {
		minutes = cfg.LegacyExpireMinutes
	}
	if minutes == 0 {
		minutes = defaultExpireMinutes
	}
	if minutes < 0 {
		return SigningContext{}, fmt.Errorf("%w: token expiry must be positive, got %d minutes", ErrConfig, minutes)
	}

	return SigningContext{
		Secret:    secret,
		Algorithm: algorithm,
		Expiry:    time.Duration(minutes) * time.Minute,
	}, nil
}

// Valid reports whether the context is usable for signing.
func (sc SigningContext) Valid() bool {
	return sc.Secret != "" && allowedAlgorithms[sc.Algorithm] && sc.Expiry > 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
