package shortlink

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidURL 是领域层对“URL 缺失”的统一错误，HTTP 层映射为 400。
	ErrInvalidURL = errors.New("URL is required")
	// ErrMalformedURL 表示 URL 非空，但跳转时无法得到可用的 Location（例如只有路径 /a/b）。
	ErrMalformedURL = errors.New("URL is invalid")
)

// ValidateURL 要求 URL 非空、不是纯空白，并且 Normalize 能把它变成跳转目标。
// 内容本身原样保存，scheme 缺失的情况交给 Normalize 在跳转时处理。
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrInvalidURL
	}
	if _, err := Normalize(raw); err != nil {
		return ErrMalformedURL
	}
	return nil
}

var tokenRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidToken 判断 token 是否可能由本服务生成（URL 安全字符，长度 1~64）。
func ValidToken(token string) bool {
	return tokenRe.MatchString(token)
}

// RFC 3986: scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
var schemeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// Normalize 把存储的长链接转换成可以直接放进 Location 的地址。
//
// 只看 scheme 前缀，不做完整解析：https://example.com/50%off 这类 net/url 拒绝的地址原样返回。
// 带 scheme 的值只去掉首尾空白，其余不变；没有 scheme 的（例如 example.com/page）补上 http://，
// 否则浏览器会把它当成相对路径。补完后 host 为空或含非法字符时返回 ErrInvalidTarget。
func Normalize(stored string) (string, error) {
	if schemeRe.MatchString(stored) {
		return stored, nil
	}
	s := strings.TrimSpace(stored)
	if s == "" {
		return "", ErrInvalidTarget
	}
	if schemeRe.MatchString(s) {
		return s, nil
	}
	if !validHost(hostOf(s)) {
		return "", ErrInvalidTarget
	}
	return "http://" + s, nil
}

// hostOf 取 authority 部分：第一个 / ? # 之前的内容。
func hostOf(s string) string {
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		return s[:i]
	}
	return s
}

func validHost(host string) bool {
	if host == "" {
		return false
	}
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(".-_~:[]@", r):
		case r > 0x7f: // IDN
		default:
			return false
		}
	}
	return true
}
