package config

import "time"

// Timeout constants for HTTP serving and outbound collaborator calls.
//
// The analyze pipeline issues several blocking upstream calls per request
// (keyphrase extraction, up to 3 synonym resolutions each with one batch
// embedding call, one literature search, two classifier calls). The server
// write timeout must cover the worst case of the sequential path.
const (
	// ServerHTTPRead limits reading the inbound request (small JSON bodies).
	ServerHTTPRead = 10 * time.Second

	// ServerHTTPWrite covers the full analyze pipeline plus response write.
	ServerHTTPWrite = 90 * time.Second

	// ServerHTTPIdle is the keep-alive idle timeout.
	ServerHTTPIdle = 120 * time.Second

	// AnalyzeProcessing bounds one analyze request end to end. Slightly
	// below ServerHTTPWrite so the pipeline times out before the socket.
	AnalyzeProcessing = 80 * time.Second

	// InferenceRequest bounds one Hugging Face classifier call. Cold models
	// can take tens of seconds to load server-side.
	InferenceRequest = 30 * time.Second

	// EmbeddingRequest bounds one Gemini embedding batch call.
	EmbeddingRequest = 15 * time.Second

	// KeyphraseRequest bounds one LLM keyphrase extraction call.
	KeyphraseRequest = 15 * time.Second

	// LexiconRequest bounds one Datamuse dictionary lookup.
	LexiconRequest = 5 * time.Second

	// ScholarRequest bounds one Semantic Scholar search call.
	ScholarRequest = 15 * time.Second

	// CacheCleanupInterval is how often expired cache rows are purged.
	CacheCleanupInterval = 12 * time.Hour
)
