package httpapi

import (
	"shorturl.local/gee"
	"shorturl.local/internal/app/shortlink"
)

// RegisterPublicRoutes 挂载创建与跳转入口。
//
// 本包只做传输层：请求解析、错误到状态码的映射、响应格式；领域逻辑在 internal/app/shortlink。
// POST / 与浏览器表单约定保持一致，/api/v1/shortlinks 是同一个处理器的版本化别名。
// 静态路由优先于 /:token，所以 /healthz 这类路由不会被当成 token。
func RegisterPublicRoutes(engine *gee.Engine, creator shortlink.Creator, resolver shortlink.Resolver) {
	create := NewCreateHandler(creator)
	engine.POST("/", create)
	engine.POST("/api/v1/shortlinks", create)
	engine.GET("/:token", NewRedirectHandler(resolver))
}
