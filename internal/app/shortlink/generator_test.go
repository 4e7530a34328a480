package shortlink_test

import (
	"errors"
	"regexp"
	"testing"

	"shorturl.local/internal/app/shortlink"
)

func TestGenerators(t *testing.T) {
	tests := []struct {
		encoding string
		nbytes   int
		length   int
		pattern  string
	}{
		{"hex", 4, 0, `^[0-9a-f]{8}$`},
		{"", 0, 0, `^[0-9a-f]{8}$`},
		{"hex", 6, 0, `^[0-9a-f]{12}$`},
		{"base62", 4, 0, `^[0-9A-Za-z]{6}$`},
		{"base62", 8, 0, `^[0-9A-Za-z]{11}$`},
		{"sqids", 4, 0, `^[0-9A-Za-z]{6,}$`},
		{"nanoid", 0, 8, `^[0-9A-Za-z]{8}$`},
		{"NanoID", 0, 12, `^[0-9A-Za-z]{12}$`},
	}
	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			gen, err := shortlink.NewGenerator(tt.encoding, tt.nbytes, tt.length)
			if err != nil {
				t.Fatalf("NewGenerator: %v", err)
			}
			re := regexp.MustCompile(tt.pattern)
			seen := make(map[string]bool)
			for i := 0; i < 200; i++ {
				tok := gen.Generate()
				if !re.MatchString(tok) {
					t.Fatalf("token %q does not match %s", tok, tt.pattern)
				}
				if !shortlink.ValidToken(tok) {
					t.Fatalf("token %q rejected by ValidToken", tok)
				}
				seen[tok] = true
			}
			// 4 字节以上的空间里 200 次抽样几乎不可能大量重复
			if len(seen) < 190 {
				t.Fatalf("distinct tokens: got %d of 200", len(seen))
			}
		})
	}
}

func TestNewGenerator_Unknown(t *testing.T) {
	if _, err := shortlink.NewGenerator("uuid", 4, 8); err == nil {
		t.Fatal("NewGenerator(uuid): want error")
	}
}

func TestEncodeBase62(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{61, "Z"},
		{62, "10"},
		{^uint64(0), "lYGhA16ahyf"},
	}
	for _, tt := range tests {
		if got := shortlink.EncodeBase62(tt.in); got != tt.want {
			t.Fatalf("EncodeBase62(%d): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateURL(t *testing.T) {
	for _, in := range []string{"https://example.com", "example.com", " x ", "https://example.com/50%off", "mailto:a@example.com"} {
		if err := shortlink.ValidateURL(in); err != nil {
			t.Fatalf("ValidateURL(%q): %v", in, err)
		}
	}
	if err := shortlink.ValidateURL("  "); !errors.Is(err, shortlink.ErrInvalidURL) {
		t.Fatalf("ValidateURL(blank): got %v, want ErrInvalidURL", err)
	}
	if err := shortlink.ValidateURL("/path/only"); !errors.Is(err, shortlink.ErrMalformedURL) {
		t.Fatalf("ValidateURL(/path/only): got %v, want ErrMalformedURL", err)
	}
}

func TestShortURL(t *testing.T) {
	for _, b := range []string{"https://s.example.com", "https://s.example.com/", "https://s.example.com//"} {
		if got := shortlink.ShortURL(b, "abc"); got != "https://s.example.com/abc" {
			t.Fatalf("ShortURL(%q): got %q", b, got)
		}
	}
}
