// Package session holds the server-side auth session records. A record lives
// in Redis for the configured TTL; the JWT a client presents is only honored
// while its record is still there, so logout takes effect immediately.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
)

type Record struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RedisStore struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewRedisStore(client *redisv9.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Create(ctx context.Context, userID uint) (*Record, error) {
	record := &Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal session record failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key(record.ID), payload, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("redis set session failed: %w", err)
	}
	return record, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Record, bool, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get session failed: %w", err)
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, false, fmt.Errorf("unmarshal session record failed: %w", err)
	}
	return &record, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session failed: %w", err)
	}
	return nil
}

func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("auth:session:%s", id)
}
