package middleware

import (
	"net/http"
	"strconv"

	"github.com/atelierhq/storefront-backend/api/responses"
	"github.com/atelierhq/storefront-backend/pkg/config"
	pkgerrors "github.com/atelierhq/storefront-backend/pkg/errors"
	"github.com/atelierhq/storefront-backend/pkg/logger"
	"github.com/atelierhq/storefront-backend/pkg/session"
)

// ResolveSession reads the session cookie and attaches the resolved identity
// to the request context. Anonymous requests pass through untouched; a stale
// or unknown token is treated the same as no cookie at all.
func ResolveSession(cfg config.SessionConfig, store session.Store, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithToken(r.Context(), cookie.Value)

			sess, err := store.Get(ctx, cookie.Value)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving session"))
				return
			}
			if sess != nil {
				ctx = WithSession(ctx, sess)
				if logg != nil {
					ctx = logg.WithUserID(ctx, strconv.FormatUint(uint64(sess.UserID), 10))
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionFromContext(r.Context()) == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
