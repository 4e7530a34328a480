package shortlink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"shorturl.local/internal/platform/metrics"
)

// DefaultMaxAttempts 碰撞重试上限。
const DefaultMaxAttempts = 5

const tracerName = "shorturl.local/internal/app/shortlink"

// CreateService 校验长链接、申请新 token 并通过 PutIfAbsent 落库。
//
// 服务本身不持有任何可变共享状态，多实例之间的唯一性完全依赖存储的原子写。
type CreateService struct {
	store       Store
	gen         Generator
	baseURL     string
	maxAttempts int
	now         func() time.Time
}

var _ Creator = (*CreateService)(nil)

func NewCreateService(store Store, gen Generator, baseURL string, maxAttempts int) *CreateService {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &CreateService{
		store:       store,
		gen:         gen,
		baseURL:     baseURL,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Create 不做按内容去重：同一个长链接提交两次会得到两个不同的短链。
func (s *CreateService) Create(ctx context.Context, rawURL string) (Mapping, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "shortlink.create")
	defer span.End()

	if err := ValidateURL(rawURL); err != nil {
		span.SetStatus(codes.Error, "validation")
		return Mapping{}, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		id := s.gen.Generate()
		m := Mapping{
			ID:        id,
			LongURL:   rawURL,
			ShortURL:  ShortURL(s.baseURL, id),
			CreatedAt: s.now().UTC(),
		}
		err := s.store.PutIfAbsent(ctx, m)
		if err == nil {
			metrics.ShortlinksCreated.Inc()
			span.SetAttributes(attribute.String("shortlink.id", id), attribute.Int("shortlink.attempts", attempt))
			return m, nil
		}
		if errors.Is(err, ErrAlreadyExists) {
			metrics.ShortlinkCollisions.Inc()
			slog.Warn("shortlink id collision", "id", id, "attempt", attempt)
			continue
		}
		metrics.StoreErrors.WithLabelValues("put").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "store")
		return Mapping{}, fmt.Errorf("%w: %w", ErrStore, err)
	}

	span.SetStatus(codes.Error, "collisions exhausted")
	slog.Error("shortlink id collisions exhausted", "attempts", s.maxAttempts)
	return Mapping{}, ErrCollisionExhausted
}
