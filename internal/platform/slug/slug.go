package slug

import (
	"strings"
	"unicode"
)

// MaxLen bounds a slug so exported file names stay short.
const MaxLen = 60

// Make lowercases input and joins its letter and digit runs with dashes.
func Make(input string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	s := b.String()
	if len(s) > MaxLen {
		s = strings.TrimRight(truncate(s, MaxLen), "-")
	}
	if s == "" {
		return "untitled"
	}
	return s
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut]
}
