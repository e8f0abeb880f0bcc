// Package env reads raw process environment values. Structured configuration
// lives in pkg/config; this is for the few knobs read before config loads.
package env

import "os"

// Get returns the variable's value, or fallback when unset or empty.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
