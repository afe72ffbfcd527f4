// Package theme resolves the light/dark preference of a visitor.
package theme

import (
	"net/http"
	"strings"
	"time"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	CookieName = "theme"
	// HintHeader carries the operating system color scheme
	HintHeader = "Sec-CH-Prefers-Color-Scheme"

	cookieMaxAge = 365 * 24 * time.Hour
)

// Parse returns the theme named by value
func Parse(value string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Resolve picks the persisted choice when present, then the client hint,
// then light.
func Resolve(cookie, hint string) Theme {
	if t, ok := Parse(cookie); ok {
		return t
	}
	if t, ok := Parse(strings.Trim(hint, `"`)); ok {
		return t
	}
	return Light
}

// FromRequest resolves the theme of r
func FromRequest(r *http.Request) Theme {
	var cookie string
	if c, err := r.Cookie(CookieName); err == nil {
		cookie = c.Value
	}
	return Resolve(cookie, r.Header.Get(HintHeader))
}

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Cookie persists t for a year
func Cookie(t Theme, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    string(t),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Advertise asks the browser for the color scheme hint. While no cookie is
// set the page follows the operating system preference.
func Advertise(h http.Header) {
	h.Set("Accept-CH", HintHeader)
	h.Add("Vary", HintHeader)
	h.Add("Vary", "Cookie")
}
