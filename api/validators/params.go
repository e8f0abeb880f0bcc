package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/atelierhq/storefront-backend/pkg/errors"
)

// ParseIDParam reads a positive integer URL parameter. A malformed ID is a
// not-found, not a validation error: the URL simply names nothing.
func ParseIDParam(r *http.Request, key string) (uint, error) {
	raw := chi.URLParam(r, key)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
	}
	return uint(value), nil
}

// ParseQueryUint reads an optional positive integer query parameter,
// returning nil when absent.
func ParseQueryUint(r *http.Request, key string) (*uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
			WithDetails(map[string]any{"field": key})
	}
	out := uint(value)
	return &out, nil
}

// ParseQueryBool reads an optional boolean query parameter; absent or
// unparseable values default to false.
func ParseQueryBool(r *http.Request, key string) bool {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}
