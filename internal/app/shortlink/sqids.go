package shortlink

import (
	"github.com/sqids/sqids-go"
)

// 打乱过的字母表，避免编码结果看起来是连续的。
const sqidsAlphabet = "k3G7QAe51FCsiWrNOYBUwM6XzZvdLT4j9JhyHKg2cVbxfERq0mSoI8lDpunPat"

// SqidsGenerator 把随机整数编码为 sqids（自带脏词屏蔽）。
type SqidsGenerator struct {
	sq   *sqids.Sqids
	bits int
}

func NewSqidsGenerator(nbytes int) (*SqidsGenerator, error) {
	if nbytes <= 0 {
		nbytes = DefaultTokenBytes
	}
	if nbytes > 8 {
		nbytes = 8
	}
	sq, err := sqids.New(sqids.Options{
		Alphabet:  sqidsAlphabet,
		MinLength: 6,
	})
	if err != nil {
		return nil, err
	}
	return &SqidsGenerator{sq: sq, bits: nbytes * 8}, nil
}

func (g *SqidsGenerator) Generate() string {
	code, err := g.sq.Encode([]uint64{randomUint64(g.bits)})
	if err != nil {
		// 字母表在构造时已校验，这里只可能是屏蔽词重试耗尽
		panic("sqids encode failed: " + err.Error())
	}
	return code
}
