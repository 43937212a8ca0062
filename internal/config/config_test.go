package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/stories")
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.HTTPPort)
	require.True(t, cfg.RunMigrations)
	require.Equal(t, "session_token", cfg.SessionCookieName)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL())
	require.Equal(t, 10, cfg.BcryptCost)
	require.Equal(t, 0, cfg.LoginMaxAttempts)
	require.Equal(t, "anthropic", cfg.LLMProvider)
	require.Equal(t, "claude-3-haiku-20240307", cfg.LLMModel)
	require.Equal(t, 1000, cfg.LLMMaxTokens)
	require.Equal(t, int32(10), cfg.DBMaxConns)
	require.Equal(t, int32(1), cfg.DBMinConns)
	require.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime())
	require.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime())
}

func TestLoadConfig_RejectsInvalidPoolSize(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/stories")
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrInvalidPoolSize)
}

func TestLoadConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_SECRET", testSecret)

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_RejectsShortSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/stories")
	t.Setenv("SESSION_SECRET", "short")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrWeakSessionSecret)
}

func TestLoadConfig_NormalizesProvider(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/stories")
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("LLM_PROVIDER", " OpenAI ")
	t.Setenv("LOGIN_WINDOW_MINUTES", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.LLMProvider)
	require.Equal(t, 5*time.Minute, cfg.LoginWindow())
}

func TestLoadConfig_UnknownProvider(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/stories")
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("LLM_PROVIDER", "parrot")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrUnknownLLMProvider)
}

func TestLoadLLMConfig_IgnoresServerSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")

	cfg, err := LoadLLMConfig()
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.LLMProvider)
	require.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	require.Equal(t, 1000, cfg.LLMMaxTokens)
}
