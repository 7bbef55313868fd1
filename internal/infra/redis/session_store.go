package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quizzer/internal/domain"
)

// SessionStore keeps attempt sessions as JSON blobs in Redis with a TTL.
// Useful when several client instances on the same host should share one
// attempt cache.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, token string) (domain.AttemptSession, bool, error) {
	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.AttemptSession{}, false, nil
	}
	if err != nil {
		return domain.AttemptSession{}, false, fmt.Errorf("redis get: %w", err)
	}
	var session domain.AttemptSession
	if err := json.Unmarshal(data, &session); err != nil {
		return domain.AttemptSession{}, false, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, true, nil
}

func (s *SessionStore) Put(ctx context.Context, session domain.AttemptSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.Token), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return "attempt:session:" + token
}
