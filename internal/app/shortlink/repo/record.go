package repo

import (
	"context"
	"time"

	"shorturl.local/internal/app/shortlink"
)

// DefaultTimeout 单次存储调用的上限，超时按存储错误处理。
const DefaultTimeout = 3 * time.Second

// record 是 redis / dynamodb / 缓存共用的序列化形状。
type record struct {
	ID        string    `json:"id" dynamodbav:"id"`
	LongURL   string    `json:"longUrl" dynamodbav:"longUrl"`
	ShortURL  string    `json:"shortUrl,omitempty" dynamodbav:"shortUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
}

func toRecord(m shortlink.Mapping) record {
	return record{ID: m.ID, LongURL: m.LongURL, ShortURL: m.ShortURL, CreatedAt: m.CreatedAt}
}

func (r record) mapping() shortlink.Mapping {
	return shortlink.Mapping{ID: r.ID, LongURL: r.LongURL, ShortURL: r.ShortURL, CreatedAt: r.CreatedAt}
}

// writeContext 写操作不跟随调用方取消：客户端断开时已经发出的写仍然要完成。
func writeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

func orDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}

// Pinger 由支持健康检查的存储实现，用于 /readyz。
type Pinger interface {
	Ping(ctx context.Context) error
}
