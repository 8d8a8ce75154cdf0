// Package openai provides production implementations of the ai interfaces
// backed by OpenAI-compatible HTTP APIs (Ollama, LocalAI, vLLM, OpenAI).
//
// Embeddings use the embeddings endpoint directly. Classification,
// summarization and entity extraction are expressed as chat completions in
// JSON mode at temperature zero; responses are repaired and re-parsed when
// the model emits slightly malformed JSON.
//
// Resilience (retries, timeouts, fallbacks) is NOT this package's concern:
// callers are expected to route every call through the resilience package.
package openai
