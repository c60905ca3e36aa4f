// Package synonym resolves a term into semantically close synonyms by
// filtering dictionary candidates through embedding similarity.
package synonym

import (
	"context"

	"github.com/lukawang/emoscope-go/internal/embedding"
	"github.com/lukawang/emoscope-go/internal/logger"
	"github.com/lukawang/emoscope-go/internal/metrics"
)

// SimilarityThreshold is the minimum cosine similarity between a term and a
// candidate for the candidate to count as a synonym. Strictly greater-than.
const SimilarityThreshold = 0.6

// Dictionary supplies raw synonym candidates for a term.
type Dictionary interface {
	Synonyms(ctx context.Context, term string) ([]string, error)
}

// Embedder turns texts into embedding vectors, index-aligned with the input.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Cache stores resolved synonym lists per term.
type Cache interface {
	GetSynonyms(ctx context.Context, term string) ([]string, bool, error)
	PutSynonyms(ctx context.Context, term string, synonyms []string) error
}

// Resolver filters dictionary candidates by embedding similarity to the
// source term. Resolved lists are cached per term.
type Resolver struct {
	dict     Dictionary
	embedder Embedder
	cache    Cache
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewResolver creates a resolver. cache may be nil to disable caching.
func NewResolver(dict Dictionary, embedder Embedder, cache Cache, log *logger.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{
		dict:     dict,
		embedder: embedder,
		cache:    cache,
		log:      log.WithComponent("synonym"),
		metrics:  m,
	}
}

// Resolve returns the synonyms of term whose embedding similarity to the
// term exceeds the threshold, in dictionary relevance order. A term with no
// dictionary candidates resolves to an empty list without an embedding call.
func (r *Resolver) Resolve(ctx context.Context, term string) ([]string, error) {
	if r.cache != nil {
		cached, ok, err := r.cache.GetSynonyms(ctx, term)
		if err != nil {
			r.log.WithError(err).WithField("term", term).Warn("Synonym cache read failed")
		} else if ok {
			r.metrics.RecordCacheHit("synonym")
			return cached, nil
		} else {
			r.metrics.RecordCacheMiss("synonym")
		}
	}

	candidates, err := r.dict.Synonyms(ctx, term)
	if err != nil {
		r.metrics.RecordSynonymLookup("error")
		return nil, err
	}

	if len(candidates) == 0 {
		r.metrics.RecordSynonymLookup("empty")
		r.store(ctx, term, []string{})
		return []string{}, nil
	}

	accepted, err := r.filter(ctx, term, candidates)
	if err != nil {
		r.metrics.RecordSynonymLookup("error")
		return nil, err
	}

	r.metrics.RecordSynonymLookup("resolved")
	r.store(ctx, term, accepted)
	return accepted, nil
}

// filter embeds the term and its candidates in one batch and keeps the
// candidates whose cosine similarity to the term exceeds the threshold.
func (r *Resolver) filter(ctx context.Context, term string, candidates []string) ([]string, error) {
	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, term)
	texts = append(texts, candidates...)

	vectors, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		r.metrics.RecordEmbeddingRequest("error")
		return nil, err
	}
	r.metrics.RecordEmbeddingRequest("success")

	termVec := vectors[0]
	accepted := make([]string, 0, len(candidates))
	for i, candidate := range candidates {
		if embedding.CosineSimilarity(termVec, vectors[i+1]) > SimilarityThreshold {
			accepted = append(accepted, candidate)
		}
	}

	r.metrics.RecordSynonymFilter(len(accepted), len(candidates)-len(accepted))
	return accepted, nil
}

func (r *Resolver) store(ctx context.Context, term string, synonyms []string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.PutSynonyms(ctx, term, synonyms); err != nil {
		r.log.WithError(err).WithField("term", term).Warn("Synonym cache write failed")
	}
}
