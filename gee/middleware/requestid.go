package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"shorturl.local/gee"
)

const requestIDHeader = "X-Request-ID"

// ReqID 沿用上游传入的 X-Request-ID，没有就生成一个，并回写到响应头。
func ReqID() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		id := ctx.Req.Header.Get(requestIDHeader)
		if id == "" {
			id = GenerateReqID()
			ctx.Req.Header.Set(requestIDHeader, id)
		}
		ctx.SetHeader(requestIDHeader, id)
		ctx.Next()
	}
}

// GenerateReqID 32 个十六进制字符；随机源不可用时退化为纳秒时间戳。
func GenerateReqID() string {
	src := make([]byte, 16)
	if _, err := rand.Read(src); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(src)
}
