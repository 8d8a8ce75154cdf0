package openai

import (
	"fmt"
	"strings"
)

const classifierSystemPrompt = `You are a zero-shot text classifier.
You will be given a passage of text and a list of candidate topic labels.
Score how well the passage matches each candidate and pick the single best one.

Respond with JSON only, using exactly this shape:
{"label": "<best candidate, copied verbatim from the list>", "score": <number between 0 and 1>}

Rules:
- The label MUST be one of the provided candidates, copied exactly.
- The score reflects your confidence that the label describes the passage.
- Do not invent labels that are not in the candidate list.`

func buildClassifierPrompt(text string, candidates []string) string {
	var b strings.Builder
	b.WriteString("Candidate labels:\n")
	for _, c := range candidates {
		b.WriteString("- ")
		b.WriteString(c)
		b.WriteString("\n")
	}
	b.WriteString("\nPassage:\n")
	b.WriteString(text)
	return b.String()
}

func buildSummarizerSystemPrompt(maxChars int) string {
	return fmt.Sprintf(`You are a text summarizer.
Condense the passage you are given into at most %d characters while keeping
its key meaning. Prefer a noun phrase over a full sentence.

Respond with JSON only, using exactly this shape:
{"summary": "<condensed text>"}`, maxChars)
}

const nerSystemPrompt = `You are a named-entity recognizer.
Identify the named entities in the passage: people, organizations, places,
products and similar proper nouns.

Respond with JSON only, using exactly this shape:
{"entities": [{"text": "<entity as written>", "kind": "<PER|ORG|LOC|MISC>"}]}

List each entity once, in the order it first appears. If there are no
entities, respond {"entities": []}.`
