package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"

	NotifierBrevo = "brevo"
	NotifierLog   = "log"
)

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // OTP purge interval (default: 1h)
	CORSOrigins          []string      // Comma separated browser origins (default: local dev servers)

	StoreDriver   string // sqlite or mongo (default: sqlite)
	DatabaseFile  string // SQLite database path (default: planner.db)
	MongoURI      string // Required when StoreDriver is mongo
	MongoDatabase string // (default: travelplanner)
	RedisURL      string // Optional: shares rate limit counters across replicas

	PepperFile     string        // Password hashing pepper (default: pepper)
	Issuer         string        // Session token issuer (default: tripplan)
	SigningKeyFile string        // Sealed signing key; empty means tokens die with the process
	MasterKeyPath  string        // Optional: key used to seal SigningKeyFile
	SessionTTL     time.Duration // (default: 720h)
	OTPTTL         time.Duration // (default: 5m)
	OTPSendTimeout time.Duration // (default: 7s)

	Notifier     string // brevo or log (default: brevo when BREVO_API_KEY is set)
	BrevoAPIKey  string
	EmailFrom    string
	EmailAppName string // (default: Travel Planner)

	GeminiAPIKey      string
	GeminiModel       string        // (default: gemini-flash-latest)
	GeminiBaseURL     string        // Optional: override for proxies and tests
	GenerationTimeout time.Duration // (default: 60s)
}

// LoadConfig reads the environment, after loading a .env file when one is
// present. Variables already set win over the file.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		CORSOrigins: splitList(getEnvOrDefault("CORS_ORIGINS",
			"http://localhost:5173,http://localhost:5174",
		)),

		StoreDriver:   strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverSQLite)),
		DatabaseFile:  getEnvOrDefault("DATABASE_FILE", "planner.db"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "travelplanner"),
		RedisURL:      os.Getenv("REDIS_URL"),

		PepperFile:     getEnvOrDefault("PEPPER_FILE", "pepper"),
		Issuer:         getEnvOrDefault("AUTH_ISSUER", "tripplan"),
		SigningKeyFile: getEnvOrDefault("AUTH_SIGNING_KEY_FILE", "signing.key"),
		MasterKeyPath:  os.Getenv("AUTH_MASTER_KEY_PATH"),
		SessionTTL:     getEnvDurationOrDefault("SESSION_TTL", 30*24*time.Hour),
		OTPTTL:         getEnvDurationOrDefault("OTP_TTL", 5*time.Minute),
		OTPSendTimeout: getEnvDurationOrDefault("OTP_SEND_TIMEOUT", 7*time.Second),

		Notifier:     strings.ToLower(os.Getenv("NOTIFIER")),
		BrevoAPIKey:  os.Getenv("BREVO_API_KEY"),
		EmailFrom:    os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailAppName: getEnvOrDefault("EMAIL_APP_NAME", "Travel Planner"),

		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnvOrDefault("GEMINI_MODEL", "gemini-flash-latest"),
		GeminiBaseURL:     os.Getenv("GEMINI_BASE_URL"),
		GenerationTimeout: getEnvDurationOrDefault("GENERATION_TIMEOUT", 60*time.Second),
	}

	if cfg.Notifier == "" {
		cfg.Notifier = NotifierLog
		if cfg.BrevoAPIKey != "" {
			cfg.Notifier = NotifierBrevo
		}
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

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
