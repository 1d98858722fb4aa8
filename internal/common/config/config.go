package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Totenem/Time-Tracker-App/internal/common/constants"
	commonerrors "github.com/Totenem/Time-Tracker-App/internal/common/errors"
)

type Config struct {
	HTTPPort       string
	DatabaseURL    string
	TokenSecret    string
	TokenTTL       time.Duration
	RequestTimeout time.Duration
	HashWorkers    int
}

func Load() (Config, error) {
	// Best effort: a missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	tokenSecret, err := mustEnv("TOKEN_SECRET")
	if err != nil {
		return Config{}, err
	}

	if err := validateTokenSecret(tokenSecret); err != nil {
		return Config{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:    databaseURL,
		TokenSecret:    tokenSecret,
		TokenTTL:       getDurationEnv("TOKEN_TTL", constants.DefaultTokenTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		HashWorkers:    getIntEnv("HASH_WORKERS", constants.DefaultHashWorkers),
	}, nil
}

func validateTokenSecret(secret string) error {
	if len(secret) < constants.TokenSecretMinLength {
		return commonerrors.ErrInvalidTokenSecret.WithCause(
			fmt.Errorf("got %d bytes", len(secret)),
		)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s", key))
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
