package repo_test

import (
	"context"
	"errors"
	"testing"

	"shorturl.local/internal/app/shortlink"
	"shorturl.local/internal/app/shortlink/cache"
	"shorturl.local/internal/app/shortlink/repo"
)

type getCounter struct {
	*repo.MemoryStore
	gets int
}

func (s *getCounter) Get(ctx context.Context, id string) (shortlink.Mapping, error) {
	s.gets++
	return s.MemoryStore.Get(ctx, id)
}

func newLocalOnlyCache(t *testing.T) (*cache.ShortlinkCache, *cache.LocalCache) {
	t.Helper()
	local, err := cache.NewLocalCache(1000, 1<<20)
	if err != nil {
		t.Fatalf("NewLocalCache: %v", err)
	}
	c := cache.NewShortlinkCache(nil, local)
	t.Cleanup(c.Close)
	return c, local
}

func TestCachedStore_Contract(t *testing.T) {
	c, _ := newLocalOnlyCache(t)
	storeContract(t, repo.NewCachedStore(repo.NewMemoryStore(), c), "abcd1234")
}

func TestCachedStore_ServesFromCacheAfterPut(t *testing.T) {
	c, local := newLocalOnlyCache(t)
	next := &getCounter{MemoryStore: repo.NewMemoryStore()}
	s := repo.NewCachedStore(next, c)
	ctx := context.Background()

	if err := s.PutIfAbsent(ctx, shortlink.Mapping{ID: "abc", LongURL: "https://example.com"}); err != nil {
		t.Fatalf("PutIfAbsent: %v", err)
	}
	local.Wait()

	m, err := s.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if m.LongURL != "https://example.com" || m.ID != "abc" {
		t.Fatalf("Get: got %+v", m)
	}
	if next.gets != 0 {
		t.Fatalf("backing store gets: got %d, want 0", next.gets)
	}
}

func TestCachedStore_NoNegativeCaching(t *testing.T) {
	c, local := newLocalOnlyCache(t)
	next := &getCounter{MemoryStore: repo.NewMemoryStore()}
	s := repo.NewCachedStore(next, c)
	ctx := context.Background()

	if _, err := s.Get(ctx, "abc"); !errors.Is(err, shortlink.ErrNotFound) {
		t.Fatalf("Get: got %v, want ErrNotFound", err)
	}
	local.Wait()

	// 绕过装饰器直接写入底层，模拟另一个实例创建了同一个 id
	if err := next.PutIfAbsent(ctx, shortlink.Mapping{ID: "abc", LongURL: "https://example.com"}); err != nil {
		t.Fatalf("PutIfAbsent: %v", err)
	}
	m, err := s.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get after external put: %v", err)
	}
	if m.LongURL != "https://example.com" {
		t.Fatalf("Get: got %+v", m)
	}
	if next.gets != 2 {
		t.Fatalf("backing store gets: got %d, want 2", next.gets)
	}
}

func TestCachedStore_CollisionNotCached(t *testing.T) {
	c, local := newLocalOnlyCache(t)
	s := repo.NewCachedStore(repo.NewMemoryStore(), c)
	ctx := context.Background()

	if err := s.PutIfAbsent(ctx, shortlink.Mapping{ID: "abc", LongURL: "https://first.example.com"}); err != nil {
		t.Fatalf("PutIfAbsent: %v", err)
	}
	if err := s.PutIfAbsent(ctx, shortlink.Mapping{ID: "abc", LongURL: "https://second.example.com"}); !errors.Is(err, shortlink.ErrAlreadyExists) {
		t.Fatalf("second PutIfAbsent: got %v, want ErrAlreadyExists", err)
	}
	local.Wait()

	m, err := s.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if m.LongURL != "https://first.example.com" {
		t.Fatalf("Get: got %q, want first write", m.LongURL)
	}
}

func TestCachedStore_PingDelegates(t *testing.T) {
	c, _ := newLocalOnlyCache(t)
	if err := repo.NewCachedStore(repo.NewMemoryStore(), c).Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
