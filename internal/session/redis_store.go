package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edivorce/edivorce-api/internal/domain"
)

const keyPrefix = "session:"

// RedisStore keeps sessions as JSON strings with a sliding TTL: every Load
// pushes the expiry out by ttl again.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	raw, err := s.client.GetEx(ctx, keyPrefix+id, s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	sess.ID = id
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	sess.isNew = false
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// compile-time check that RedisStore implements Store
var _ Store = (*RedisStore)(nil)
