package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"
)

// LocalCache 基于 ristretto 的进程内 L1 缓存
type LocalCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewLocalCache 创建本地缓存
// maxItems: 最大缓存条目数（建议 10000-100000）
// maxCost: 最大内存占用（字节，建议 16MB-64MB）
func NewLocalCache(maxItems int64, maxCost int64) (*LocalCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxItems * 10, // 建议为 maxItems 的 10 倍
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &LocalCache{
		cache: cache,
		ttl:   10 * time.Minute,
	}, nil
}

func (l *LocalCache) Get(key string) (string, bool) {
	if v, ok := l.cache.Get(key); ok {
		s, ok := v.(string)
		return s, ok
	}
	return "", false
}

// Set 按字节数计 cost，和 maxCost 的单位保持一致。
func (l *LocalCache) Set(key, value string) {
	l.cache.SetWithTTL(key, value, int64(len(key)+len(value)), l.ttl)
}

func (l *LocalCache) Del(key string) {
	l.cache.Del(key)
}

// Wait 阻塞到缓冲区中的写全部生效。
func (l *LocalCache) Wait() {
	l.cache.Wait()
}

func (l *LocalCache) Close() {
	l.cache.Close()
}
