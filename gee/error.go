package gee

// ErrorResponse 统一错误响应体：{"error": "...", "request_id": "..."}
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func NewErrorResponse(c *Context, message string) ErrorResponse {
	return ErrorResponse{
		Error:     message,
		RequestID: c.Req.Header.Get("X-Request-ID"), //没有就空
	}
}
