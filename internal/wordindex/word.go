package wordindex

import "strings"

// Normalize trims and uppercases raw, and reports whether the result is a
// usable catalogue word: every rune is an unaccented ASCII letter and its
// length is within [minLen, maxLen].
//
// Grounded on the teacher's own loadFromFile (cmd/xwcli/main.go), which
// lower-cased, trimmed, and rejected non-letter words one rune at a time;
// this repository's catalogue is upper-case instead, since grid letters are
// rendered upper-case in CSV output (§6).
func Normalize(raw string, minLen, maxLen int) (string, bool) {
	w := strings.ToUpper(strings.TrimSpace(raw))
	if len(w) < minLen || len(w) > maxLen {
		return "", false
	}
	for _, r := range w {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return w, true
}
