package httpserver

import (
	"net/http"
	"time"
)

type CookieConfig struct {
	Secure bool
	Path   string
}

func (cc CookieConfig) path() string {
	if cc.Path == "" {
		return "/"
	}
	return cc.Path
}

func (cc CookieConfig) CreateCookie(name, value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     cc.path(),
		Expires:  exp,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteNoneMode,
	}
}

func (cc CookieConfig) DeleteCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     cc.path(),
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteNoneMode,
	}
}
