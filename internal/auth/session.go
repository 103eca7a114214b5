package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound signals an unknown or expired voice session key.
var ErrSessionNotFound = errors.New("voice session not found")

const sessionKeyPrefix = "voice_session:"

// SessionStore maps opaque voice-session keys to resident IDs in Redis.
// Telephony glue requests a key before a call and the webhook presents it
// with each call report.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore constructs the store.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Issue creates a fresh session key for the resident.
func (s *SessionStore) Issue(ctx context.Context, residentID string) (string, error) {
	key := strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := s.client.Set(ctx, sessionKeyPrefix+key, residentID, s.ttl).Err(); err != nil {
		return "", err
	}
	return key, nil
}

// Resolve returns the resident ID behind a session key.
func (s *SessionStore) Resolve(ctx context.Context, sessionKey string) (string, error) {
	residentID, err := s.client.Get(ctx, sessionKeyPrefix+sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return residentID, nil
}

// Revoke removes a session key.
func (s *SessionStore) Revoke(ctx context.Context, sessionKey string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionKey).Err()
}
