// Package query builds literature search queries from extracted keywords,
// widened with embedding-filtered synonyms.
package query

import (
	"context"
	"strings"

	"github.com/lukawang/emoscope-go/internal/logger"
)

const (
	// MaxPrimaryTerms is how many leading keywords seed the query.
	MaxPrimaryTerms = 3

	// MaxQueryLength caps the final query string, in characters.
	MaxQueryLength = 300
)

// SynonymResolver supplies filtered synonyms for a term.
type SynonymResolver interface {
	Resolve(ctx context.Context, term string) ([]string, error)
}

// Formulator assembles search queries: primary terms first, then their
// synonyms, deduplicated in first-occurrence order.
type Formulator struct {
	resolver SynonymResolver
	log      *logger.Logger
}

// NewFormulator creates a formulator.
func NewFormulator(resolver SynonymResolver, log *logger.Logger) *Formulator {
	return &Formulator{
		resolver: resolver,
		log:      log.WithComponent("query"),
	}
}

// Formulate builds a space-joined query from the leading keywords and their
// synonyms. A failed synonym resolution narrows the query rather than
// failing it. An empty keyword list yields an empty query.
func (f *Formulator) Formulate(ctx context.Context, keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}

	primary := keywords
	if len(primary) > MaxPrimaryTerms {
		primary = primary[:MaxPrimaryTerms]
	}

	terms := NewOrderedSet()
	for _, term := range primary {
		terms.Add(term)
	}

	for _, term := range primary {
		synonyms, err := f.resolver.Resolve(ctx, term)
		if err != nil {
			f.log.WithError(err).WithField("term", term).Warn("Synonym resolution failed, narrowing query")
			continue
		}
		for _, syn := range synonyms {
			terms.Add(syn)
		}
	}

	return truncate(strings.Join(terms.Values(), " "), MaxQueryLength)
}

// truncate cuts s to at most max characters, counting runes so a multibyte
// character is never split.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
