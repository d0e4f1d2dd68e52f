// Package slug converts titles into filesystem and id safe hyphen slugs.
package slug

import (
	"strings"
	"unicode"
)

// Make converts a title into a lowercase hyphen slug.
// Allowed output characters are [a-z0-9-]; whitespace and underscores become
// hyphens, everything else is dropped, runs of hyphens collapse, and the
// result is trimmed and truncated to maxLen. An empty result or a
// non-positive maxLen yields "untitled".
func Make(title string, maxLen int) string {
	if maxLen <= 0 {
		return "untitled"
	}

	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '_' || r == '-':
			b.WriteRune('-')
		}
	}

	out := collapseHyphens(b.String())
	out = strings.Trim(out, "-")

	if len(out) > maxLen {
		out = out[:maxLen]
	}

	out = collapseHyphens(out)
	out = strings.Trim(out, "-")

	if out == "" {
		return "untitled"
	}
	return out
}

func collapseHyphens(s string) string {
	var b strings.Builder
	prev := false
	for _, r := range s {
		if r == '-' {
			if !prev {
				b.WriteRune(r)
				prev = true
			}
		} else {
			b.WriteRune(r)
			prev = false
		}
	}
	return b.String()
}
