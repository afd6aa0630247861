package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when the sid is unknown, expired or destroyed.
var ErrNoSession = errors.New("session not found")

const keyPrefix = "session:"

// Store keeps sessions server-side in redis. The cookie only ever carries
// the opaque sid, never identity.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Store{
		rdb: rdb,
		ttl: ttl,
	}
}

// Create issues a fresh sid bound to userID.
func (s *Store) Create(ctx context.Context, userID string) (string, error) {
	sid := uuid.NewString()

	err := s.rdb.Set(ctx, keyPrefix+sid, userID, s.ttl).Err()

	if err != nil {
		return "", err
	}

	return sid, nil
}

// UserID resolves a sid back to the user it was issued for.
func (s *Store) UserID(ctx context.Context, sid string) (string, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+sid).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}

		return "", err
	}

	return val, nil
}

// Destroy drops the session. Destroying an unknown sid is not an error.
func (s *Store) Destroy(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, keyPrefix+sid).Err()
}

// TTL reports the configured session lifetime, used to size the cookie.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
