// Package format turns stored identifiers and timestamps into display text.
package format

import "strings"

// Label converts an underscore separated identifier into a display label,
// e.g. "personal_info" becomes "Personal Info". Only the first byte of each
// word is upper-cased (ASCII); the rest of the word is kept as is.
func Label(identifier string) string {
	words := strings.Split(identifier, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		if c := w[0]; c >= 'a' && c <= 'z' {
			words[i] = string(c-'a'+'A') + w[1:]
		}
	}
	return strings.Join(words, " ")
}
