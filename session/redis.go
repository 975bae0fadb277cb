package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	ai "github.com/brandkit/brandkit"
	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces session keys so the store can share a
// database with other applications.
const redisKeyPrefix = "brandkit:session:"

// Redis is a Store backed by one Redis list per session. A session's
// history expires after the configured TTL of inactivity.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the given address and verifies the connection with
// a ping before returning the store. A zero ttl disables expiry.
func NewRedis(ctx context.Context, addr, password string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func redisKey(id string) string { return redisKeyPrefix + id }

// History returns the session's messages in order.
func (r *Redis) History(ctx context.Context, id string) ([]ai.Message, error) {
	raw, err := r.client.LRange(ctx, redisKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	msgs := make([]ai.Message, 0, len(raw))
	for _, item := range raw {
		var msg ai.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("decode session %s: %w", id, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// Append adds messages to the session's history and refreshes its TTL.
func (r *Redis) Append(ctx context.Context, id string, msgs ...ai.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	values := make([]any, 0, len(msgs))
	for _, msg := range msgs {
		raw, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", id, err)
		}
		values = append(values, raw)
	}

	pipe := r.client.Pipeline()
	pipe.RPush(ctx, redisKey(id), values...)
	if r.ttl > 0 {
		pipe.Expire(ctx, redisKey(id), r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append to session %s: %w", id, err)
	}
	return nil
}

// Reset removes the session's history.
func (r *Redis) Reset(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("reset session %s: %w", id, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

var _ Store = (*Redis)(nil)
