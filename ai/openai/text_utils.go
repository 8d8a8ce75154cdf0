package openai

import "strings"

// scrubString removes punctuation that tends to confuse prompt boundaries
// and trims whitespace.
func scrubString(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune("\"'`{}[]", r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
