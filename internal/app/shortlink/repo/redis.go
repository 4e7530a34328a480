package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"shorturl.local/internal/app/shortlink"
)

const redisKeyPrefix = "sl:"

// RedisStore 用 SETNX 实现 put-if-absent。
// 读写都走主节点；若读副本，read-after-write 不成立。
type RedisStore struct {
	client  *redis.Client
	timeout time.Duration
}

var _ shortlink.Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, timeout time.Duration) *RedisStore {
	return &RedisStore{
		client:  client,
		timeout: orDefault(timeout),
	}
}

func (s *RedisStore) PutIfAbsent(ctx context.Context, m shortlink.Mapping) error {
	data, err := json.Marshal(toRecord(m))
	if err != nil {
		return err
	}
	rctx, cancel := writeContext(ctx, s.timeout)
	defer cancel()

	ok, err := s.client.SetNX(rctx, redisKeyPrefix+m.ID, data, 0).Result()
	if err != nil {
		slog.Error("redis put failed", "id", m.ID, "err", err)
		return err
	}
	if !ok {
		return shortlink.ErrAlreadyExists
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (shortlink.Mapping, error) {
	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.client.Get(rctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return shortlink.Mapping{}, shortlink.ErrNotFound
	}
	if err != nil {
		slog.Error("redis get failed", "id", id, "err", err)
		return shortlink.Mapping{}, err
	}
	var r record
	if err := json.Unmarshal(res, &r); err != nil {
		return shortlink.Mapping{}, fmt.Errorf("decode mapping %s: %w", id, err)
	}
	r.ID = id
	return r.mapping(), nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
