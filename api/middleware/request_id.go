package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/atelierhq/storefront-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with an ID, honoring a caller-supplied one
// when it is a well-formed UUID so IDs can be traced across services.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if _, err := uuid.Parse(reqID); err != nil {
				reqID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, reqID)

			ctx := logg.WithRequestID(r.Context(), reqID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
