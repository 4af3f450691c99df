package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer  string // Required: issuer claim for session tokens
	NumKeys int    // Optional: number of signing keys to generate (default: 3, min: 1, max: 10)

	DatabaseFile string // Optional: path to SQLite database file (default: ./feedback.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	PendingRetention     time.Duration // How long stale unverified accounts are kept (default: 7d)

	SessionTTL time.Duration // Session token lifetime (default: 24h)
	CodeTTL    time.Duration // Verification code lifetime (default: 1h)

	CookieSecure bool // Mark the session cookie Secure (default: true outside dev)

	MailDriver   string // log or ses (default: log)
	MailFrom     string // From address for verification emails
	AWSRegion    string // SES region
	AWSAccessKey string // Optional: static credentials; default AWS chain if empty
	AWSSecretKey string
}

func LoadConfig() Config {
	// Load .env if present; real env vars win.
	_ = godotenv.Load()

	cfg := Config{
		Issuer:               getEnvOrDefault("APP_ISSUER", "truefeedback"),
		DatabaseFile:         getEnvOrDefault("APP_DATABASE_FILE", "feedback.db"),
		PepperFile:           getEnvOrDefault("APP_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		PendingRetention:     getEnvDurationOrDefault("PENDING_RETENTION", 7*24*time.Hour),
		SessionTTL:           getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),
		CodeTTL:              getEnvDurationOrDefault("CODE_TTL", 1*time.Hour),
		MailDriver:           getEnvOrDefault("MAIL_DRIVER", "log"),
		MailFrom:             os.Getenv("MAIL_FROM"),
		AWSRegion:            getEnvOrDefault("AWS_REGION", "us-east-1"),
		AWSAccessKey:         os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:         os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}

	if numKeysStr := os.Getenv("APP_NUM_KEYS"); numKeysStr != "" {
		if numKeys, err := strconv.Atoi(numKeysStr); err == nil {
			cfg.NumKeys = numKeys
		}
	}

	// The browser can't set Secure cookies over plain http in local dev.
	cfg.CookieSecure = cfg.Env != "dev"
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		cfg.CookieSecure = v == "true" || v == "1"
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
