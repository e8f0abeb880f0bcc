package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/atelierhq/storefront-backend/pkg/redis"
)

// RedisStore persists session bindings in Redis so multiple instances can
// share one login. Sessions are JSON blobs under a namespaced key with the
// configured TTL.
type RedisStore struct {
	client *redisclient.Client
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed session store.
func NewRedisStore(client *redisclient.Client, opts Options) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &RedisStore{client: client, ttl: opts.TTL}, nil
}

func (s *RedisStore) Create(ctx context.Context, sess Session) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("encoding session: %w", err)
	}
	if err := s.client.Set(ctx, s.client.SessionKey(token), payload, s.ttl); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := s.client.Get(ctx, s.client.SessionKey(token))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, s.client.SessionKey(token))
}
