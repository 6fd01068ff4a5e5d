package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "INV", cfg.Billing.BillPrefix)
	assert.Equal(t, 24*time.Hour, cfg.Billing.IdempotencyTTL)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiryHours)
	assert.Contains(t, cfg.Database.DSN, "mode=memory")
	assert.True(t, cfg.Database.Seed)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.CORS.AllowedMethods)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("BILL_PREFIX", "pos")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, "POS", cfg.Billing.BillPrefix)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}
