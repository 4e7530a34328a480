package shortlink

const base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// EncodeBase62 将正整数编码为 Base62 字符串，0 编码为 "0"。
func EncodeBase62(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [11]byte // 62^11 > 2^64
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = base62Alphabet[n%62]
		n /= 62
	}
	return string(buf[i:])
}

// Base62Generator 把 Bytes*8 位随机数编码为定长 base62（高位补 '0'）。
type Base62Generator struct {
	Bytes  int
	length int
}

func NewBase62Generator(n int) *Base62Generator {
	if n <= 0 {
		n = DefaultTokenBytes
	}
	if n > 8 {
		n = 8
	}
	top := ^uint64(0)
	if n < 8 {
		top = uint64(1)<<(uint(n)*8) - 1
	}
	return &Base62Generator{Bytes: n, length: len(EncodeBase62(top))}
}

func (g *Base62Generator) Generate() string {
	s := EncodeBase62(randomUint64(g.Bytes * 8))
	for len(s) < g.length {
		s = "0" + s
	}
	return s
}
