package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("PORT", "8080")
	v.SetDefault("TOKEN_TTL", time.Hour)
	v.SetDefault("RESET_TOKEN_TTL", 15*time.Minute)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViperRequiresSecret(t *testing.T) {
	_, err := fromViper(newViper(nil))
	require.Error(t, err)
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"JWT_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Equal(t, []byte("s3cret"), cfg.ResetTokenKey)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 15*time.Minute, cfg.ResetTokenTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsDevelopment())
}

func TestFromViperOverrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"JWT_SECRET":      "s3cret",
		"RESET_TOKEN_KEY": "other",
		"APP_ENV":         "Development",
		"ALLOWED_ORIGINS": "https://a.example, https://b.example ,",
		"CLIENT_URL":      "https://app.example/",
		"TOKEN_TTL":       "30m",
	}))
	require.NoError(t, err)

	assert.Equal(t, []byte("other"), cfg.ResetTokenKey)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "https://app.example", cfg.ClientURL)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}
