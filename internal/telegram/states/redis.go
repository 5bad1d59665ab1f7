package states

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

type redisClient interface {
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RedisStore keeps conversations in Redis so they survive restarts.
// With a positive ttl, abandoned conversations expire; zero keeps them.
type RedisStore struct {
	client redisClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redisClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(userID int64) string {
	return s.prefix + strconv.FormatInt(userID, 10)
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (Conversation, error) {
	var conv Conversation
	found, err := s.client.GetJSON(ctx, s.key(userID), &conv)
	if err != nil {
		return Conversation{}, fmt.Errorf("load conversation: %w", err)
	}
	if !found {
		return Conversation{}, nil
	}
	return conv, nil
}

func (s *RedisStore) Set(ctx context.Context, userID int64, conv Conversation) error {
	if conv.Step == StepNone {
		return s.Delete(ctx, userID)
	}
	if err := s.client.SetJSON(ctx, s.key(userID), conv, s.ttl); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	return s.client.Delete(ctx, s.key(userID))
}

func (s *RedisStore) Exists(ctx context.Context, userID int64) (bool, error) {
	return s.client.Exists(ctx, s.key(userID))
}
