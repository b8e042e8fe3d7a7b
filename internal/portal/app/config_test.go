package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "JWT_SECRET", "MAX_REQUESTS_PER_DAY", "ALLOW_REGISTRATION", "CHAT_TIMEOUT", "OPENAI_API_KEY", "TRUSTED_PROXIES"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, DevJWTSecret, cfg.JWTSecret)
	require.EqualValues(t, 200, cfg.MaxRequestsPerDay)
	require.EqualValues(t, 50000, cfg.MaxTokensPerDay)
	require.True(t, cfg.AllowRegistration)
	require.False(t, cfg.SecureCookies)
	require.Equal(t, 60*time.Second, cfg.ChatTimeout)
	require.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	require.Empty(t, cfg.OpenAIAPIKey)
	require.Empty(t, cfg.TrustedProxies)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("ALLOW_REGISTRATION", "0")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("MAX_TOKENS_PER_DAY", "0")
	t.Setenv("CHAT_TIMEOUT", "15")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "2m")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")
	t.Setenv("RATELIMIT_CHAT_REQUESTS", "3")

	cfg := LoadConfig()
	require.Equal(t, 8081, cfg.Port)
	require.False(t, cfg.AllowRegistration)
	require.True(t, cfg.SecureCookies)
	require.Zero(t, cfg.MaxTokensPerDay)
	require.Equal(t, 15*time.Second, cfg.ChatTimeout)
	require.Equal(t, 2*time.Minute, cfg.ShutdownGracePeriod)
	require.Equal(t, "10.0.0.0/8", cfg.TrustedProxies)
	require.Equal(t, 3, cfg.ChatLimit.RequestsPerWindow)
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENAI_MODEL=family-large\nRATELIMIT_GLOBAL_REQUESTS=7\n"), 0o600))

	// godotenv sets variables for the whole process; register cleanup first.
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("RATELIMIT_GLOBAL_REQUESTS", "")
	require.NoError(t, os.Unsetenv("OPENAI_MODEL"))
	require.NoError(t, os.Unsetenv("RATELIMIT_GLOBAL_REQUESTS"))

	cfg := LoadConfig()
	require.Equal(t, "family-large", cfg.OpenAIModel)
	require.Equal(t, 7, cfg.GlobalLimit.RequestsPerWindow)
}

func TestEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "many")
	t.Setenv("X_BOOL", "perhaps")
	t.Setenv("X_DUR", "soon")

	require.Equal(t, 5, getEnvIntOrDefault("X_INT", 5))
	require.True(t, getEnvBoolOrDefault("X_BOOL", true))
	require.Equal(t, time.Second, getEnvDurationOrDefault("X_DUR", time.Second))
}
