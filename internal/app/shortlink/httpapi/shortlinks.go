package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"shorturl.local/gee"
	"shorturl.local/internal/app/shortlink"
	"shorturl.local/internal/platform/metrics"
)

// 对外的错误文案，后端错误细节只进日志。
const (
	msgURLRequired    = "URL is required"
	msgURLInvalid     = "URL is invalid"
	msgInvalidJSON    = "invalid json"
	msgCreateFailed   = "Error occurred while attempting to shorten URL"
	msgNotFound       = "short URL not found"
	msgRedirectFailed = "An error occurred while attempting to redirect you to your URL. Please try again later."
)

type CreateRequest struct {
	URL string `json:"url"`
}

type CreateResponse struct {
	ShortURL string `json:"shortUrl"`
}

func NewCreateHandler(creator shortlink.Creator) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		var req CreateRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			// 没有 body 等同于没有 url
			if errors.Is(err, gee.ErrEmptyBody) {
				ctx.AbortWithError(http.StatusBadRequest, msgURLRequired)
				return
			}
			ctx.AbortWithError(http.StatusBadRequest, msgInvalidJSON)
			return
		}

		m, err := creator.Create(ctx.Req.Context(), req.URL)
		if err != nil {
			if errors.Is(err, shortlink.ErrInvalidURL) {
				ctx.AbortWithError(http.StatusBadRequest, msgURLRequired)
				return
			}
			if errors.Is(err, shortlink.ErrMalformedURL) {
				ctx.AbortWithError(http.StatusBadRequest, msgURLInvalid)
				return
			}
			slog.ErrorContext(ctx.Req.Context(), "shortlink create failed",
				"request_id", ctx.Req.Header.Get("X-Request-ID"),
				"err", err)
			ctx.AbortWithError(http.StatusInternalServerError, msgCreateFailed)
			return
		}

		ctx.JSON(http.StatusOK, CreateResponse{ShortURL: m.ShortURL})
	}
}

// NewRedirectHandler 301 永久跳转；映射不可变，允许浏览器缓存。
func NewRedirectHandler(resolver shortlink.Resolver) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		token := ctx.Param("token")
		target, err := resolver.Resolve(ctx.Req.Context(), token)
		if err != nil {
			if errors.Is(err, shortlink.ErrNotFound) {
				ctx.AbortWithError(http.StatusNotFound, msgNotFound)
				return
			}
			slog.ErrorContext(ctx.Req.Context(), "shortlink resolve failed",
				"request_id", ctx.Req.Header.Get("X-Request-ID"),
				"token", token,
				"err", err)
			ctx.AbortWithError(http.StatusInternalServerError, msgRedirectFailed)
			return
		}
		metrics.ShortlinkRedirects.Inc()
		ctx.Redirect(http.StatusMovedPermanently, target)
	}
}
