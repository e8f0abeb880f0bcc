// Package session maps opaque tokens to authenticated identities. The token
// travels in an HttpOnly cookie; everything else stays server-side so a
// stolen token reveals nothing and logout is immediate.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

const tokenBytes = 32

// Session is the identity bound to a token.
type Session struct {
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
	IsAdmin  bool   `json:"is_admin"`
}

// Store is the pluggable token-to-identity binding. Get returns (nil, nil)
// for unknown or expired tokens: anonymous is a normal state, not an error.
type Store interface {
	Create(ctx context.Context, sess Session) (string, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// NewToken produces an opaque URL-safe session token.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Options configures a store backend.
type Options struct {
	TTL time.Duration
}
