package middleware

import (
	"fmt"
	"net/http"

	"github.com/atelierhq/storefront-backend/api/responses"
	pkgerrors "github.com/atelierhq/storefront-backend/pkg/errors"
	"github.com/atelierhq/storefront-backend/pkg/logger"
)

// Recoverer turns a handler panic into a logged 500 instead of a dropped
// connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				err := fmt.Errorf("panic: %v", rec)
				ctx := logg.WithField(r.Context(), "panic", rec)
				logg.Error(ctx, "panic recovered", err)
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
