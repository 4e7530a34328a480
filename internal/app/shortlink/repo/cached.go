package repo

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"shorturl.local/internal/app/shortlink"
	"shorturl.local/internal/app/shortlink/cache"
)

const cacheTimeout = 50 * time.Millisecond

// CachedStore 给任意 Store 加一层读缓存。写仍然直达底层存储，唯一性由底层保证。
type CachedStore struct {
	next  shortlink.Store
	cache *cache.ShortlinkCache
}

var _ shortlink.Store = (*CachedStore)(nil)

func NewCachedStore(next shortlink.Store, c *cache.ShortlinkCache) *CachedStore {
	return &CachedStore{next: next, cache: c}
}

func (s *CachedStore) PutIfAbsent(ctx context.Context, m shortlink.Mapping) error {
	if err := s.next.PutIfAbsent(ctx, m); err != nil {
		return err
	}
	// 创建后立即预热，刚生成的短链通常马上就会被访问
	s.fill(ctx, m)
	return nil
}

func (s *CachedStore) Get(ctx context.Context, id string) (shortlink.Mapping, error) {
	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	v, ok, err := s.cache.Get(cctx, id)
	cancel()
	if err != nil {
		slog.Warn("shortlink cache get failed", "id", id, "err", err)
	}
	if ok {
		var r record
		if err := json.Unmarshal([]byte(v), &r); err == nil && r.LongURL != "" {
			r.ID = id
			return r.mapping(), nil
		}
	}

	m, err := s.next.Get(ctx, id)
	if err != nil {
		return shortlink.Mapping{}, err
	}
	s.fill(ctx, m)
	return m, nil
}

// Ping 透传给底层存储（若支持）。
func (s *CachedStore) Ping(ctx context.Context) error {
	if p, ok := s.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *CachedStore) fill(ctx context.Context, m shortlink.Mapping) {
	data, err := json.Marshal(toRecord(m))
	if err != nil {
		return
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheTimeout)
	defer cancel()
	if err := s.cache.Set(cctx, m.ID, string(data)); err != nil {
		slog.Warn("shortlink cache set failed", "id", m.ID, "err", err)
	}
}
