package helper

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeSlug reduces operator input to a bare market slug. Accepts a
// raw slug, an event/market path, or a full polymarket.com URL; always
// returns the last non-empty path segment.
func NormalizeSlug(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	path := s
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		if u, err := url.Parse(s); err == nil {
			path = u.Path
		}
	}
	last := s
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			last = part
		}
	}
	return last
}

// Truncate shortens s to max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// CommaUSD renders 1234567.8 as "1,234,567.80".
func CommaUSD(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}
