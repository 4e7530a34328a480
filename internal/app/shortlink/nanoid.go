package shortlink

import (
	nanoid "github.com/jaevor/go-nanoid"
)

const nanoidAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultNanoidLength 62^8 ≈ 2.2e14，远大于 hex 默认的 2^32。
const DefaultNanoidLength = 8

type NanoidGenerator struct {
	gen func() string
}

func NewNanoidGenerator(length int) (*NanoidGenerator, error) {
	if length <= 0 {
		length = DefaultNanoidLength
	}
	gen, err := nanoid.CustomASCII(nanoidAlphabet, length)
	if err != nil {
		return nil, err
	}
	return &NanoidGenerator{gen: gen}, nil
}

func (g *NanoidGenerator) Generate() string {
	return g.gen()
}
