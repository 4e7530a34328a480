package shortlink

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// Generator 产生固定长度、URL 安全的随机 token。
//
// 随机源耗尽属于环境级致命错误，实现直接 panic，不作为普通错误返回。
type Generator interface {
	Generate() string
}

// DefaultTokenBytes 4 字节随机数 -> 8 位十六进制，共 2^32 种取值。
const DefaultTokenBytes = 4

// HexGenerator 把 Bytes 个 crypto/rand 字节编码成十六进制。
type HexGenerator struct {
	Bytes int
}

func NewHexGenerator(n int) *HexGenerator {
	if n <= 0 {
		n = DefaultTokenBytes
	}
	return &HexGenerator{Bytes: n}
}

func (g *HexGenerator) Generate() string {
	buf := make([]byte, g.Bytes)
	readRandom(buf)
	return hex.EncodeToString(buf)
}

// randomUint64 取 bits 位（1~64）随机数。
func randomUint64(bits int) uint64 {
	var buf [8]byte
	readRandom(buf[:])
	n := binary.BigEndian.Uint64(buf[:])
	if bits > 0 && bits < 64 {
		n &= (1 << uint(bits)) - 1
	}
	return n
}

func readRandom(buf []byte) {
	if _, err := rand.Read(buf); err != nil {
		panic("shortlink: crypto/rand unavailable: " + err.Error())
	}
}

// NewGenerator 按编码名构造生成器：hex | base62 | sqids | nanoid。
// nbytes 用于 hex/base62/sqids 的随机熵，length 只用于 nanoid。
func NewGenerator(encoding string, nbytes, length int) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "hex":
		return NewHexGenerator(nbytes), nil
	case "base62":
		return NewBase62Generator(nbytes), nil
	case "sqids":
		return NewSqidsGenerator(nbytes)
	case "nanoid":
		return NewNanoidGenerator(length)
	default:
		return nil, fmt.Errorf("unknown token encoding %q", encoding)
	}
}
