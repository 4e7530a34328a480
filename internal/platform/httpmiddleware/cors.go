package httpmiddleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS 包在 gee 引擎外层：预检请求在进入路由之前就被应答（204），不会落到 405。
// origins 含 "*" 时放行所有来源。
func CORS(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return c.Handler
}
