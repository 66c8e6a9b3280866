package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/yogimardilah/klinik-api/cache"
)

// SessionStore tracks which accounts hold live tokens. Tokens themselves are
// stateless (PASETO), so revocation works by dropping the session key: a
// token for an account with no session is rejected at the middleware.
type SessionStore interface {
	Store(ctx context.Context, userID int64, ttl time.Duration) error
	Has(ctx context.Context, userID int64) (bool, error)
	Revoke(ctx context.Context, userID int64) error
}

type redisSessionStore struct {
	cache *cache.Cache
}

// NewSessionStore returns the Redis-backed session store.
func NewSessionStore() (SessionStore, error) {
	c, err := cache.NewCache()
	if err != nil {
		return nil, err
	}
	return &redisSessionStore{cache: c}, nil
}

func (s *redisSessionStore) Store(ctx context.Context, userID int64, ttl time.Duration) error {
	return s.cache.Set(ctx, sessionKey(userID), "1", ttl)
}

func (s *redisSessionStore) Has(ctx context.Context, userID int64) (bool, error) {
	val, err := s.cache.Get(ctx, sessionKey(userID))
	if err != nil {
		return false, err
	}
	return val != "", nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, userID int64) error {
	return s.cache.Delete(ctx, sessionKey(userID))
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}
