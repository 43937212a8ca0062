package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"30"`
	DBMaxConnIdleMins     int   `env:"DB_MAX_CONN_IDLE_MINUTES" envDefault:"5"`

	SessionSecret       string `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTLMinutes   int    `env:"SESSION_TTL_MINUTES" envDefault:"1440"`
	SessionCookieName   string `env:"SESSION_COOKIE_NAME" envDefault:"session_token"`
	SessionCookieSecure bool   `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	BcryptCost          int    `env:"BCRYPT_COST" envDefault:"10"`

	LoginMaxAttempts   int `env:"LOGIN_MAX_ATTEMPTS" envDefault:"0"`
	LoginWindowMinutes int `env:"LOGIN_WINDOW_MINUTES" envDefault:"15"`

	LLMConfig

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LLMConfig agrupa lo necesario para hablar con el proveedor del LLM.
// El CLI de reescritura solo carga esta parte.
type LLMConfig struct {
	LLMProvider  string `env:"LLM_PROVIDER" envDefault:"anthropic"`
	LLMAPIKey    string `env:"LLM_API_KEY"`
	LLMBaseURL   string `env:"LLM_BASE_URL"`
	LLMModel     string `env:"LLM_MODEL" envDefault:"claude-3-haiku-20240307"`
	LLMMaxTokens int    `env:"LLM_MAX_TOKENS" envDefault:"1000"`
}

var (
	ErrInvalidPoolSize    = errors.New("db pool: min conns must be between 0 and max conns")
	ErrUnknownLLMProvider = errors.New("unknown llm provider")
	ErrWeakSessionSecret  = errors.New("session secret must be at least 32 bytes")
)

const minSessionSecretLen = 32

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa combinaciones que env no puede expresar con tags.
func (c *Config) Validate() error {
	if len(c.SessionSecret) < minSessionSecretLen {
		return ErrWeakSessionSecret
	}
	if c.DBMaxConns < 1 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return ErrInvalidPoolSize
	}
	return c.LLMConfig.Validate()
}

// LoadLLMConfig carga solo la configuración del LLM.
func LoadLLMConfig() (*LLMConfig, error) {
	var cfg LLMConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *LLMConfig) Validate() error {
	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	switch c.LLMProvider {
	case "anthropic", "openai":
		return nil
	default:
		return ErrUnknownLLMProvider
	}
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c *Config) DBMaxConnLifetime() time.Duration {
	return time.Duration(c.DBMaxConnLifetimeMins) * time.Minute
}

func (c *Config) DBMaxConnIdleTime() time.Duration {
	return time.Duration(c.DBMaxConnIdleMins) * time.Minute
}

func (c *Config) LoginWindow() time.Duration {
	return time.Duration(c.LoginWindowMinutes) * time.Minute
}
