package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	t.Parallel()

	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("JWT_REFRESH_TTL", "not-a-duration")
	t.Setenv("AUTH_COOKIE_SECURE", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("SERVER_PORT", "abc")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTTL)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.False(t, cfg.Auth.RotateRefresh)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 8080, cfg.ServerPort)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
	t.Setenv("JWT_ACCESS_TTL", "1m")
	t.Setenv("AUTH_ROTATE_REFRESH", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("APP_ENV", "Development")

	cfg := Load()

	assert.Equal(t, []byte("access"), cfg.Auth.AccessSecret)
	assert.Equal(t, []byte("refresh"), cfg.Auth.RefreshSecret)
	assert.Equal(t, time.Minute, cfg.Auth.AccessTTL)
	assert.True(t, cfg.Auth.RotateRefresh)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.IsDevelopment())
}
