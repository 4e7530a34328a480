package shortlink

import (
	"context"
	"errors"
	"time"
)

// Mapping 是短链的唯一持久化实体：token -> 原始长链接。
//
// LongURL 按用户提交的原样保存（不做 trim，也不补 scheme），规范化只在跳转时进行。
type Mapping struct {
	ID        string
	LongURL   string
	ShortURL  string
	CreatedAt time.Time
}

var (
	// ErrAlreadyExists 由 Store.PutIfAbsent 在 id 已被占用时返回。
	ErrAlreadyExists = errors.New("shortlink id already exists")
	// ErrNotFound 表示 token 没有对应的映射。
	ErrNotFound = errors.New("shortlink not found")
	// ErrStore 包装所有与存储通信失败的错误（超时、连接断开、序列化失败等）。
	ErrStore = errors.New("shortlink store error")
	// ErrCollisionExhausted 表示连续碰撞超过重试上限。
	ErrCollisionExhausted = errors.New("shortlink id collisions exhausted")
	// ErrInvalidTarget 表示存储的 URL 规范化后仍无法作为 Location 使用。
	ErrInvalidTarget = errors.New("stored url is not a valid redirect target")
)

// Store 是核心所依赖的存储契约。
//
// PutIfAbsent 必须原子：并发写同一个 id 时只有一个成功，其余得到 ErrAlreadyExists。
// Get 必须读到此前所有成功的写（read-after-write）。
type Store interface {
	PutIfAbsent(ctx context.Context, m Mapping) error
	Get(ctx context.Context, id string) (Mapping, error)
}

// Creator 表示“创建短链”的用例能力。
type Creator interface {
	Create(ctx context.Context, rawURL string) (Mapping, error)
}

// Resolver 表示“解析 token 并返回跳转目标”的用例能力。
type Resolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// ShortURL 拼接 base + "/" + id，base 末尾多余的 "/" 会被去掉。
func ShortURL(base, id string) string {
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/" + id
}
