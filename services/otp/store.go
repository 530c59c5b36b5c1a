package otp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoCode is returned when no live code exists for an email: never issued,
// already consumed, or expired by TTL. Callers cannot distinguish the three.
var ErrNoCode = errors.New("no live otp for email")

// Store keeps at most one live code per email with a TTL. Set is an upsert:
// the last writer wins and the TTL restarts.
type Store interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)

	// Delete removes the live code and reports whether this caller removed
	// it, so concurrent verifiers can race with exactly one winner.
	Delete(ctx context.Context, email string) (bool, error)
}

// RedisStore keeps OTP codes in Redis; expiry rides on the key TTL, so stale
// codes vanish without any cleanup job.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func otpKey(email string) string {
	return "otp:" + email
}

func (s *RedisStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKey(email), code, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, otpKey(email)).Result()
	if err == redis.Nil {
		return "", ErrNoCode
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) (bool, error) {
	deleted, err := s.client.Del(ctx, otpKey(email)).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// MemoryStore is the in-process Store used by tests and as a fallback when
// Redis is not configured. Expiry is checked lazily on read.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Set(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[email] = memoryEntry{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return "", ErrNoCode
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, email)
		return "", ErrNoCode
	}
	return entry.code, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[email]; !ok {
		return false, nil
	}
	delete(s.entries, email)
	return true, nil
}
