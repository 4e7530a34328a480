package httpmiddleware

import (
	"strconv"
	"time"

	"shorturl.local/gee"
	"shorturl.local/internal/platform/metrics"
)

// Metrics 按路由模板记录请求数、耗时和在途请求。未匹配的路径统一归到 UNMATCHED，避免 label 爆炸。
func Metrics() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		start := time.Now()
		metrics.HTTPInflightRequests.Inc()
		defer metrics.HTTPInflightRequests.Dec()

		ctx.Next()

		route := ctx.RoutePattern
		if route == "" {
			route = "UNMATCHED"
		}
		status := strconv.Itoa(ctx.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(ctx.Method, route, status).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(ctx.Method, route).Observe(time.Since(start).Seconds())
	}
}
