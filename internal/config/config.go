package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Mail     MailConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	FrontendURL           string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters. Access and refresh
// secrets must differ so a leaked access secret cannot forge refresh
// tokens and vice versa.
type AuthConfig struct {
	AccessTokenSecret   string
	RefreshTokenSecret  string
	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration
	ResetTokenTTL       time.Duration
	VerifyTokenTTL      time.Duration
	ClockSkewLeeway     time.Duration
	BcryptCost          int
	HashWorkers         int
	PasswordMinLength   int
	PasswordNeedsUpper  bool
	PasswordNeedsLower  bool
	PasswordNeedsDigit  bool
	PasswordNeedsSymbol bool
	CookieSecure        bool
	CookieDomain        string
}

// MailConfig holds outbound email settings.
type MailConfig struct {
	From string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "shop-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			FrontendURL:           getEnv("FRONTEND_URL", "http://localhost:5167"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			AccessTokenSecret:   getEnv("AUTH_ACCESS_TOKEN_SECRET", "dev-access-secret"),
			RefreshTokenSecret:  getEnv("AUTH_REFRESH_TOKEN_SECRET", "dev-refresh-secret"),
			AccessTokenTTL:      time.Duration(getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 15)) * time.Minute,
			RefreshTokenTTL:     time.Duration(getEnvAsInt("AUTH_REFRESH_TOKEN_TTL_HOURS", 168)) * time.Hour,
			ResetTokenTTL:       time.Duration(getEnvAsInt("AUTH_RESET_TOKEN_TTL_MINUTES", 60)) * time.Minute,
			VerifyTokenTTL:      time.Duration(getEnvAsInt("AUTH_VERIFY_TOKEN_TTL_HOURS", 24)) * time.Hour,
			ClockSkewLeeway:     time.Duration(getEnvAsInt("AUTH_CLOCK_SKEW_LEEWAY_SECONDS", 0)) * time.Second,
			BcryptCost:          getEnvAsInt("AUTH_BCRYPT_COST", 12),
			HashWorkers:         getEnvAsInt("AUTH_HASH_WORKERS", 4),
			PasswordMinLength:   getEnvAsInt("AUTH_PASSWORD_MIN_LENGTH", 8),
			PasswordNeedsUpper:  getEnvAsBool("AUTH_PASSWORD_NEEDS_UPPER", true),
			PasswordNeedsLower:  getEnvAsBool("AUTH_PASSWORD_NEEDS_LOWER", true),
			PasswordNeedsDigit:  getEnvAsBool("AUTH_PASSWORD_NEEDS_DIGIT", true),
			PasswordNeedsSymbol: getEnvAsBool("AUTH_PASSWORD_NEEDS_SYMBOL", true),
			CookieSecure:        getEnvAsBool("AUTH_COOKIE_SECURE", true),
			CookieDomain:        getEnv("AUTH_COOKIE_DOMAIN", ""),
		},
		Mail: MailConfig{
			From: getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
		},
	}

	if cfg.Auth.AccessTokenSecret == cfg.Auth.RefreshTokenSecret {
		return nil, fmt.Errorf("AUTH_ACCESS_TOKEN_SECRET and AUTH_REFRESH_TOKEN_SECRET must differ")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
