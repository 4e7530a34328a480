package httpmiddleware

import (
	"go.opentelemetry.io/otel/trace"
	"shorturl.local/gee"
)

// TraceName 把 otelhttp 创建的 span 重命名为 "METHOD /route"。
// 路由在进入中间件链之前就已匹配，RoutePattern 此时可用。
func TraceName() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		route := ctx.RoutePattern
		if route == "" {
			route = "UNMATCHED"
		}
		trace.SpanFromContext(ctx.Req.Context()).SetName(ctx.Method + " " + route)
		ctx.Next()
	}
}
