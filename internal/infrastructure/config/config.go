// Package config loads process configuration from the environment exactly
// once at startup. All components receive their settings from the loaded
// struct; none of them read environment variables on their own.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// EnvProduction is the value of ENV that hardens configuration validation.
const EnvProduction = "production"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AllowedOrigins is the comma-separated CORS allow-list for the frontend.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=http://localhost:3000,http://localhost:5173"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
	Mail  MailConfig
	Groq  GroqConfig
}

// JWTConfig carries the raw signing settings plus the legacy aliases earlier
// deployments used. Precedence between them is resolved in one place
// (auth.ResolveSigningContext), never here and never per-component.
type JWTConfig struct {
	Secret              string `env:"JWT_SECRET"`
	LegacySecret        string `env:"SECRET_KEY"`
	Algorithm           string `env:"JWT_ALGORITHM"`
	LegacyAlgorithm     string `env:"ALGORITHM"`
	ExpireMinutes       int    `env:"JWT_EXPIRE_MINUTES"`
	LegacyExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ai_autopilot"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// MailConfig mirrors the transactional-mail settings: an SMTP relay
// authenticated with an app password.
type MailConfig struct {
	Server     string `env:"MAIL_SERVER,     default=smtp.gmail.com"`
	Port       int    `env:"MAIL_PORT,       default=587"`
	Username   string `env:"MAIL_USERNAME"`
	Password   string `env:"MAIL_PASSWORD"`
	From       string `env:"MAIL_FROM"`
	FromName   string `env:"MAIL_FROM_NAME,  default=AI Autopilot"`
	Encryption string `env:"MAIL_ENCRYPTION, default=starttls"`
}

// GroqConfig points the completion proxy at Groq's OpenAI-compatible API.
type GroqConfig struct {
	APIKey  string `env:"GROQ_API_KEY"`
	BaseURL string `env:"GROQ_BASE_URL, default=https://api.groq.com/openai/v1"`
	Model   string `env:"GROQ_MODEL,    default=llama-3.1-8b-instant"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
