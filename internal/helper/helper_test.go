package helper

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"did-a-crypto-hedge-fund-blow-up", "did-a-crypto-hedge-fund-blow-up"},
		{"event-slug/did-a-crypto-hedge-fund-blow-up", "did-a-crypto-hedge-fund-blow-up"},
		{"https://polymarket.com/event/foo/bar-market", "bar-market"},
		{"https://polymarket.com/event/foo/bar-market/", "bar-market"},
		{"  spaced-slug  ", "spaced-slug"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeSlug(c.in); got != c.want {
			t.Fatalf("NormalizeSlug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 10); got != "abcdef" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("abcdefghij", 8); got != "abcde..." {
		t.Fatalf("unexpected %q", got)
	}
}

// Cuts count runes, not bytes, so multi-byte text stays valid UTF-8.
func TestTruncateMultibyte(t *testing.T) {
	s := strings.Repeat("é", 10)
	got := Truncate(s, 8)
	if got != strings.Repeat("é", 5)+"..." {
		t.Fatalf("unexpected %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("invalid UTF-8: %q", got)
	}
	if got := Truncate("日本語のテスト", 20); got != "日本語のテスト" {
		t.Fatalf("short multibyte string must pass through, got %q", got)
	}
}

func TestCommaUSD(t *testing.T) {
	cases := map[float64]string{
		0:         "0.00",
		999:       "999.00",
		1234.5:    "1,234.50",
		1234567.8: "1,234,567.80",
		-9876.543: "-9,876.54",
	}
	for in, want := range cases {
		if got := CommaUSD(in); got != want {
			t.Errorf("CommaUSD(%v) = %q, want %q", in, got, want)
		}
	}
}
