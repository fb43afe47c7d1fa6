// Package session keeps admin web sessions in Redis. The cookie carries an
// opaque id; the user is resolved from the store on every request.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "session:"

var ErrNoSession = errors.New("session not found or expired")

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) TTL() time.Duration { return s.ttl }

// Create starts a session for userID and returns its id.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	id := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+id, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return id, nil
}

// Resolve returns the user id behind a session and slides its expiry.
func (s *Store) Resolve(ctx context.Context, id string) (uint, error) {
	if id == "" {
		return 0, ErrNoSession
	}
	raw, err := s.rdb.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read session: %w", err)
	}
	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	s.rdb.Expire(ctx, keyPrefix+id, s.ttl)
	return uint(userID), nil
}

func (s *Store) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.rdb.Del(ctx, keyPrefix+id).Err()
}
