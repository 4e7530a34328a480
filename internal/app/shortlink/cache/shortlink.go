package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"shorturl.local/internal/platform/metrics"
)

// 与 repo.RedisStore 的 "sl:" 前缀区分，避免同一个 Redis 上缓存覆盖主数据。
const keyPrefix = "slc:"

// ShortlinkCache 两级读缓存：L1 进程内 ristretto，L2 Redis。
//
// 只缓存命中结果，不做负缓存：映射创建后不可变，正向缓存永远不会过期失真；
// 负缓存会让其他实例刚写入的短链在 TTL 内不可见。
type ShortlinkCache struct {
	client *redis.Client // 可为 nil，仅用 L1
	local  *LocalCache   // 可为 nil，仅用 L2
	ttl    time.Duration
}

func NewShortlinkCache(client *redis.Client, local *LocalCache) *ShortlinkCache {
	return &ShortlinkCache{
		client: client,
		local:  local,
		ttl:    24 * time.Hour,
	}
}

// Get 返回 (value, 是否命中, err)。L2 出错时 err 非空，调用方应回源。
func (c *ShortlinkCache) Get(ctx context.Context, key string) (string, bool, error) {
	if c.local != nil {
		if v, ok := c.local.Get(key); ok {
			metrics.CacheOperations.WithLabelValues("l1", "hit").Inc()
			return v, true, nil
		}
		metrics.CacheOperations.WithLabelValues("l1", "miss").Inc()
	}
	if c.client == nil {
		return "", false, nil
	}

	res, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		metrics.CacheOperations.WithLabelValues("l2", "miss").Inc()
		return "", false, nil
	}
	if err != nil {
		metrics.CacheOperations.WithLabelValues("l2", "error").Inc()
		return "", false, err
	}
	metrics.CacheOperations.WithLabelValues("l2", "hit").Inc()

	// 回填本地缓存
	if c.local != nil {
		c.local.Set(key, res)
	}
	return res, true, nil
}

func (c *ShortlinkCache) Set(ctx context.Context, key, value string) error {
	if c.local != nil {
		c.local.Set(key, value)
	}
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err()
}

func (c *ShortlinkCache) Close() {
	if c.local != nil {
		c.local.Close()
		slog.Info("本地缓存已关闭")
	}
}
