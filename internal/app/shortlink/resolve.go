package shortlink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"shorturl.local/internal/platform/metrics"
)

// ResolveService 查询映射并返回规范化后的跳转目标。不做任何重试。
type ResolveService struct {
	store Store
}

var _ Resolver = (*ResolveService)(nil)

func NewResolveService(store Store) *ResolveService {
	return &ResolveService{store: store}
}

func (s *ResolveService) Resolve(ctx context.Context, token string) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "shortlink.resolve")
	defer span.End()
	span.SetAttributes(attribute.String("shortlink.id", token))

	// 形状不对的 token 一定不存在，不必打到存储
	if !ValidToken(token) {
		return "", ErrNotFound
	}

	m, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		metrics.StoreErrors.WithLabelValues("get").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "store")
		return "", fmt.Errorf("%w: %w", ErrStore, err)
	}

	target, err := Normalize(m.LongURL)
	if err != nil {
		slog.Error("stored url cannot be normalized", "id", token, "err", err)
		span.SetStatus(codes.Error, "invalid target")
		return "", err
	}
	return target, nil
}
