package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AlibekovAA/microblog/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
	ErrInvalidStoreDriver = errors.New("STORE_DRIVER must be postgres or memory")
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	UsePathStyle    bool
}

// Enabled reports whether an image bucket is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type AppConfig struct {
	HTTPPort           string
	StoreDriver        string
	DatabaseURL        string
	RunMigrations      bool
	JWTSecret          string
	TokenTTL           time.Duration
	BcryptCost         int
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
	LogDir             string
	LogLevel           string
	S3                 S3Config
}

func Load() (AppConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return AppConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return AppConfig{}, err
	}

	driver := strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres))
	if driver != StoreDriverPostgres && driver != StoreDriverMemory {
		return AppConfig{}, fmt.Errorf("%w: got %q", ErrInvalidStoreDriver, driver)
	}

	var databaseURL string
	if driver == StoreDriverPostgres {
		databaseURL, err = mustEnv("DATABASE_URL")
		if err != nil {
			return AppConfig{}, err
		}
	}

	return AppConfig{
		HTTPPort:           getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		StoreDriver:        driver,
		DatabaseURL:        databaseURL,
		RunMigrations:      getBoolEnv("RUN_MIGRATIONS", true),
		JWTSecret:          jwtSecret,
		TokenTTL:           constants.DefaultTokenTTL,
		BcryptCost:         getIntEnv("BCRYPT_COST", constants.DefaultBcryptCost),
		RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		CORSAllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogDir:             getEnv("LOG_DIR", ""),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		S3: S3Config{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", constants.DefaultS3Region),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
			UsePathStyle:    getBoolEnv("S3_USE_PATH_STYLE", false),
		},
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
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

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getListEnv(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
