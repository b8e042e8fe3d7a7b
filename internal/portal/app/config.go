package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/familyportal/pkg/httpx"
	"github.com/joho/godotenv"
)

// DevJWTSecret is the fallback signing secret. Anyone who knows it can mint
// sessions, so startup warns loudly when it is in use.
const DevJWTSecret = "dev-secret"

type Config struct {
	Port                int           // HTTP server port (default: 3000)
	DatabaseFile        string        // Path to SQLite database file (default: data.db)
	PepperFile          string        // Path to the password pepper file, created on first use (default: pepper)
	StaticDir           string        // Directory served at / (default: public)
	JWTSecret           string        // HS256 session signing secret (default: DevJWTSecret)
	SecureCookies       bool          // Mark the session cookie Secure (default: false)
	AllowRegistration   bool          // Self sign-up for non-first users (default: true)
	MaxRequestsPerDay   int64         // Daily chat turns per user, <=0 unlimited (default: 200)
	MaxTokensPerDay     int64         // Daily tokens per user, <=0 unlimited (default: 50000)
	OpenAIAPIKey        string        // Empty leaves the chat backend unconfigured
	OpenAIBaseURL       string        // Optional OpenAI-compatible endpoint
	OpenAIModel         string        // Default model (default: gpt-4o-mini)
	SystemPrompt        string        // Preamble prepended to every conversation
	ChatTimeout         time.Duration // Upper bound on one completion call (default: 60s)
	Env                 string        // Environment (dev, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	TrustedProxies      string        // Comma-separated IPs/CIDRs allowed to set X-Forwarded-For (default: none)

	GlobalLimit httpx.RateLimitConfig // RATELIMIT_GLOBAL_*
	AuthLimit   httpx.RateLimitConfig // RATELIMIT_STRICT_*
	ChatLimit   httpx.RateLimitConfig // RATELIMIT_CHAT_*
}

const defaultSystemPrompt = "You are a warm, patient family assistant. Answer clearly and briefly, " +
	"and reply in the language the user writes in."

// LoadConfig reads the environment, after loading .env from the working
// directory if there is one. Variables already set win over .env.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Port:                getEnvIntOrDefault("PORT", 3000),
		DatabaseFile:        getEnvOrDefault("PORTAL_DATABASE_FILE", "data.db"),
		PepperFile:          getEnvOrDefault("PORTAL_PEPPER_FILE", "pepper"),
		StaticDir:           getEnvOrDefault("STATIC_DIR", "public"),
		JWTSecret:           getEnvOrDefault("JWT_SECRET", DevJWTSecret),
		SecureCookies:       getEnvBoolOrDefault("SECURE_COOKIES", false),
		AllowRegistration:   getEnvBoolOrDefault("ALLOW_REGISTRATION", true),
		MaxRequestsPerDay:   int64(getEnvIntOrDefault("MAX_REQUESTS_PER_DAY", 200)),
		MaxTokensPerDay:     int64(getEnvIntOrDefault("MAX_TOKENS_PER_DAY", 50000)),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:       os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:         getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		SystemPrompt:        getEnvOrDefault("SYSTEM_PROMPT", defaultSystemPrompt),
		ChatTimeout:         getEnvDurationOrDefault("CHAT_TIMEOUT", 60*time.Second),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		TrustedProxies:      os.Getenv("TRUSTED_PROXIES"),

		// Re-read here so values from .env apply too.
		GlobalLimit: httpx.ParseRateLimitFromEnv("GLOBAL", httpx.GlobalLimit),
		AuthLimit:   httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
		ChatLimit:   httpx.ParseRateLimitFromEnv("CHAT", httpx.ChatLimit),
	}
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

// getEnvBoolOrDefault also accepts the original deployment's "1"/"0" style.
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
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

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
