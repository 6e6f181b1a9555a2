// Package config reads process configuration from the environment once at
// startup. The Mongo connection string is required on purpose: there is no
// embedded default to fall back to, so a missing value is a startup error
// rather than a silently degraded deployment.
package config

import (
	"fmt"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI    string `env:"MONGODB_URI" validate:"required"`
	Port        string `env:"PORT" envDefault:"8080"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173" validate:"url"`
	GroqAPIKey  string `env:"GROQ_API_KEY"`
	GroqModel   string `env:"GROQ_MODEL" envDefault:"llama-3.1-8b-instant"`
	RedisAddr   string `env:"REDIS_ADDR"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// Values holds the parsed configuration. Populated by Init.
var Values Config

// Init loads .env if present, parses the environment into Values and
// validates it. Returns an error when MONGODB_URI is absent.
func Init() error {
	// .env is optional; system environment wins either way
	_ = godotenv.Load()

	Values = Config{}
	if err := env.Parse(&Values); err != nil {
		return fmt.Errorf("config: parse environment: %w", err)
	}

	if err := validator.New().Struct(Values); err != nil {
		return fmt.Errorf("config: MONGODB_URI and a valid FRONTEND_URL must be set: %w", err)
	}

	return nil
}

// Addr returns the listen address with a leading colon.
func (c Config) Addr() string {
	if c.Port == "" {
		return ":8080"
	}
	if c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}
