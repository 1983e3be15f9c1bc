// Package slug maps free-text labels (tags, author names) to canonical
// URL-safe identifiers.
package slug

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Slug lowercases the label and collapses every run of
// non-letter/non-digit runes into a single hyphen. Distinct labels may
// collide; callers that care merge counts or use a Slugger.
func Slug(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var out []rune
	lastDash := false

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			out = append(out, unicode.ToLower(r))
			lastDash = false
		default:
			if !lastDash && len(out) > 0 {
				out = append(out, '-')
				lastDash = true
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}

// Slugger dedupes repeated slugs within one document the way heading
// slug generators do: the second occurrence of "part" becomes "part-1",
// the third "part-2".
type Slugger struct {
	seen map[string]int
}

func New() *Slugger {
	return &Slugger{seen: make(map[string]int)}
}

func (sl *Slugger) Slug(label string) string {
	base := Slug(label)
	if base == "" {
		return ""
	}
	n := sl.seen[base]
	sl.seen[base] = n + 1
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

// Reset forgets previously issued slugs.
func (sl *Slugger) Reset() {
	sl.seen = make(map[string]int)
}
