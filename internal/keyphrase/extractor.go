// Package keyphrase extracts the key phrases of a text with an LLM,
// with provider fallback from Gemini to Groq.
package keyphrase

import "context"

// MaxKeyphrases is how many phrases one extraction returns at most.
const MaxKeyphrases = 5

// Provider names an LLM provider.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderGroq   Provider = "groq"
)

// Default models per provider. The extraction task is small, so the fast
// cost-efficient tiers are enough.
const (
	DefaultGeminiModel = "gemini-2.5-flash-lite"
	DefaultGroqModel   = "llama-3.1-8b-instant"
)

// groqBaseURL is the OpenAI-compatible Groq endpoint.
const groqBaseURL = "https://api.groq.com/openai/v1/"

// Extractor extracts ranked key phrases from a text.
type Extractor interface {
	// Extract returns up to MaxKeyphrases lowercase phrases of one or two
	// words each, most relevant first.
	Extract(ctx context.Context, text string) ([]string, error)

	// Provider identifies the backing LLM provider.
	Provider() Provider
}
