package middleware

import (
	"context"

	"github.com/atelierhq/storefront-backend/pkg/session"
)

type contextKey string

const (
	ctxSession contextKey = "session"
	ctxToken   contextKey = "session_token"
)

// SessionFromContext returns the resolved session, or nil for anonymous
// requests.
func SessionFromContext(ctx context.Context) *session.Session {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxSession).(*session.Session); ok {
		return v
	}
	return nil
}

// TokenFromContext returns the raw session token from the request cookie,
// empty when none was presented.
func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxToken).(string); ok {
		return v
	}
	return ""
}

// UserIDFromContext is a shortcut for the authenticated user's ID; zero for
// anonymous requests.
func UserIDFromContext(ctx context.Context) uint {
	if sess := SessionFromContext(ctx); sess != nil {
		return sess.UserID
	}
	return 0
}

func WithSession(ctx context.Context, sess *session.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sess)
}

func WithToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxToken, token)
}
