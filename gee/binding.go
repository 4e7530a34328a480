package gee

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

var (
	ErrEmptyBody    = errors.New("empty body")
	ErrMultipleJSON = errors.New("body must contain only one JSON value")
)

const maxJSONBodyBytes = 1 << 20

// ShouldBindJSON 只解析 json，body 上限 1MB。空 body 返回 ErrEmptyBody。
func (c *Context) ShouldBindJSON(dst any) error {
	body := http.MaxBytesReader(c.Writer, c.Req.Body, maxJSONBodyBytes)
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return ErrMultipleJSON
	}
	return nil
}

// BindJSON 解析json+处理失败
func (c *Context) BindJSON(dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithError(http.StatusBadRequest, "invalid json")
		return err
	}
	return nil
}
