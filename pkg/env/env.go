package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// ListenAddr resolves a listen address from key. A bare port ("8080") gets
// a leading colon; values that already carry a host or colon are kept.
func ListenAddr(key, fallbackPort string) string {
	v := Get(key, fallbackPort)
	if strings.Contains(v, ":") {
		return v
	}
	return ":" + v
}
