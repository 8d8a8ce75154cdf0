package openai

import "regexp"

// Models sometimes drop the opening quote of an object key, e.g. `, score": 0.8`.
var missingOpenQuote = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)":`)

// Trailing commas before a closing brace or bracket are also common.
var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// repairJSON attempts to fix common JSON formatting issues in LLM responses
// before unmarshaling. It is deliberately conservative: anything it does not
// recognize is passed through untouched.
func repairJSON(s string) string {
	s = missingOpenQuote.ReplaceAllString(s, `$1"$2":`)
	s = trailingComma.ReplaceAllString(s, `$1`)
	return s
}
