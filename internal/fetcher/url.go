package fetcher

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ResolveURL turns a configured source into a fetchable URL. Plain paths
// become absolute file:// URLs.
func ResolveURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	if u, err := url.Parse(raw); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return raw, nil
		}
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", raw, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
