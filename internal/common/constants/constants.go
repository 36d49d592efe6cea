package constants

import "time"

const (
	UsernameMinLength  = 1
	UsernameMaxLength  = 32
	PasswordMinLength  = 6
	PasswordMaxLength  = 72
	EmailMaxLength     = 254
	JWTSecretMinLength = 32
	TweetMaxLength     = 280

	DefaultBcryptCost     = 10
	DefaultMaxRequestSize = 1 << 20
	MaxImageUploadSize    = 5 << 20
	ImageKeyPrefix        = "tweets"

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBMigrationTimeout    = time.Minute

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second
	ServerMaxHeaderBytes    = 16 << 10

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "5000"
	DefaultRequestTimeout = 5 * time.Second
	DefaultTokenTTL       = time.Hour
	DefaultS3Region       = "us-east-1"

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
