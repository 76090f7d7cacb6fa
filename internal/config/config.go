package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	Env  string
	Port string

	DatabaseURL       string
	DBMaxOpenConns    int
	DBConnMaxLifetime time.Duration

	JWTSecret     []byte
	TokenTTL      time.Duration
	ResetTokenKey []byte
	ResetTokenTTL time.Duration

	ClientURL      string
	AllowedOrigins []string
	FeedbackInbox  string

	ShutdownTimeout time.Duration
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 2*time.Hour)
	v.SetDefault("TOKEN_TTL", time.Hour)
	v.SetDefault("RESET_TOKEN_TTL", 15*time.Minute)
	v.SetDefault("CLIENT_URL", "http://localhost:5173")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", 5*time.Second)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	resetKey := v.GetString("RESET_TOKEN_KEY")
	if resetKey == "" {
		resetKey = secret
	}

	cfg := &Config{
		Env:               strings.ToLower(v.GetString("APP_ENV")),
		Port:              v.GetString("PORT"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		DBMaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		DBConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		JWTSecret:         []byte(secret),
		TokenTTL:          v.GetDuration("TOKEN_TTL"),
		ResetTokenKey:     []byte(resetKey),
		ResetTokenTTL:     v.GetDuration("RESET_TOKEN_TTL"),
		ClientURL:         strings.TrimRight(v.GetString("CLIENT_URL"), "/"),
		AllowedOrigins:    splitList(v.GetString("ALLOWED_ORIGINS")),
		FeedbackInbox:     v.GetString("FEEDBACK_INBOX"),
		ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("TOKEN_TTL must be positive")
	}
	if cfg.ResetTokenTTL <= 0 {
		return nil, errors.New("RESET_TOKEN_TTL must be positive")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
