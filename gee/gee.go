package gee

import (
	"log/slog"
	"net/http"
	"strings"
)

// Engine 实现 http.Handler。自身也是根分组，前缀为空。
type Engine struct {
	*RouterGroup
	router   *router
	groups   []*RouterGroup
	noMethod []HandlerFunc
	noRoute  []HandlerFunc
}

// RouterGroup 共享前缀和中间件的一组路由。
type RouterGroup struct {
	prefix      string
	middlewares []HandlerFunc
	parent      *RouterGroup
	engine      *Engine
}

func New() *Engine {
	engine := &Engine{router: newRouter()}
	engine.noRoute = []HandlerFunc{func(ctx *Context) { ctx.AbortWithError(http.StatusNotFound, "not found") }}
	engine.noMethod = []HandlerFunc{func(ctx *Context) { ctx.AbortWithError(http.StatusMethodNotAllowed, "method not allowed") }}
	engine.RouterGroup = &RouterGroup{engine: engine}
	engine.groups = []*RouterGroup{engine.RouterGroup}
	return engine
}

// NoRoute 替换默认的 404 处理；分组中间件照常执行。
func (e *Engine) NoRoute(handlers ...HandlerFunc) {
	e.noRoute = handlers
}

// NoMethod 替换默认的 405 处理，Allow 头在调用前已写好。
func (e *Engine) NoMethod(handlers ...HandlerFunc) {
	e.noMethod = handlers
}

func (group *RouterGroup) Group(prefix string) *RouterGroup {
	if p := strings.Trim(prefix, "/"); p != "" {
		prefix = group.prefix + "/" + p
	} else {
		prefix = group.prefix
	}
	g := &RouterGroup{
		prefix: prefix,
		parent: group,
		engine: group.engine,
	}
	group.engine.groups = append(group.engine.groups, g)
	return g
}

// Use 添加中间件
func (group *RouterGroup) Use(middlewares ...HandlerFunc) {
	group.middlewares = append(group.middlewares, middlewares...)
}

// Handle 注册任意方法的路由，pattern 相对于分组前缀。
func (group *RouterGroup) Handle(method, pattern string, handlers ...HandlerFunc) {
	full := group.prefix + pattern
	if full == "" {
		full = "/"
	}
	slog.Debug("route registered", "method", method, "pattern", full)
	group.engine.router.addRoute(method, full, handlers...)
}

func (group *RouterGroup) GET(pattern string, handlers ...HandlerFunc) {
	group.Handle(http.MethodGet, pattern, handlers...)
}

func (group *RouterGroup) POST(pattern string, handlers ...HandlerFunc) {
	group.Handle(http.MethodPost, pattern, handlers...)
}

// owns 按路径段匹配前缀：/api 覆盖 /api 和 /api/x，不覆盖 /apix。
func (group *RouterGroup) owns(path string) bool {
	if group.prefix == "" {
		return true
	}
	if !strings.HasPrefix(path, group.prefix) {
		return false
	}
	return len(path) == len(group.prefix) || path[len(group.prefix)] == '/'
}

// chain 从根分组到 group 依次拼接中间件。
func (group *RouterGroup) chain() []HandlerFunc {
	if group.parent == nil {
		return append([]HandlerFunc(nil), group.middlewares...)
	}
	return append(group.parent.chain(), group.middlewares...)
}

// ServeHTTP 使用最深的匹配分组的中间件链。
func (e *Engine) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var best *RouterGroup
	for _, g := range e.groups {
		if g.owns(req.URL.Path) && (best == nil || len(g.prefix) >= len(best.prefix)) {
			best = g
		}
	}
	ctx := newContext(w, req)
	ctx.handlers = best.chain()
	ctx.engine = e
	e.router.handle(ctx)
}
