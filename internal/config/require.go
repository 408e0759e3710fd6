package config

import (
	"bytes"
	"log"
)

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

// MustValid stops the process on settings that would leave auth misconfigured.
func (c Config) MustValid() {
	MustNonEmpty(c.DatabaseURL, "DATABASE_URL")
	MustNonEmptyBytes(c.Auth.AccessSecret, "JWT_ACCESS_SECRET")
	MustNonEmptyBytes(c.Auth.RefreshSecret, "JWT_REFRESH_SECRET")

	if bytes.Equal(c.Auth.AccessSecret, c.Auth.RefreshSecret) {
		log.Fatalf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if !c.Auth.CookieSecure && !c.IsDevelopment() {
		log.Fatalf("AUTH_COOKIE_SECURE=false is only allowed with APP_ENV=development")
	}
}
