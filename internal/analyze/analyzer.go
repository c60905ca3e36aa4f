// Package analyze orchestrates the analysis pipeline: keyword extraction,
// emotion and sentiment classification, literature retrieval, and report
// composition.
package analyze

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lukawang/emoscope-go/internal/config"
	"github.com/lukawang/emoscope-go/internal/emotion"
	"github.com/lukawang/emoscope-go/internal/logger"
	"github.com/lukawang/emoscope-go/internal/scholar"
)

// KeyphraseExtractor extracts ranked key phrases from text.
type KeyphraseExtractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// Classifier produces emotion and sentiment scores for text.
type Classifier interface {
	EmotionScores(ctx context.Context, text string) ([]emotion.Score, error)
	Sentiment(ctx context.Context, text string) (emotion.Score, error)
}

// QueryFormulator builds a literature search query from keywords.
type QueryFormulator interface {
	Formulate(ctx context.Context, keywords []string) string
}

// SourceFetcher retrieves academic papers for a query.
type SourceFetcher interface {
	Search(ctx context.Context, query string) ([]scholar.Paper, error)
}

// Analyzer runs the full pipeline. Classification and literature retrieval
// run concurrently once the keywords are extracted.
type Analyzer struct {
	extractor  KeyphraseExtractor
	classifier Classifier
	formulator QueryFormulator
	fetcher    SourceFetcher
	log        *logger.Logger
}

// New creates an analyzer.
func New(extractor KeyphraseExtractor, classifier Classifier, formulator QueryFormulator, fetcher SourceFetcher, log *logger.Logger) *Analyzer {
	return &Analyzer{
		extractor:  extractor,
		classifier: classifier,
		formulator: formulator,
		fetcher:    fetcher,
		log:        log.WithComponent("analyze"),
	}
}

// Analyze produces a report for text. Classifier and keyword extraction
// failures abort the request; literature retrieval failures degrade to an
// empty source list.
func (a *Analyzer) Analyze(ctx context.Context, text string, findSources bool) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, config.AnalyzeProcessing)
	defer cancel()

	keywords, err := a.extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}

	var (
		emotions  []emotion.Score
		sentiment emotion.Score
		sources   []scholar.Paper
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		emotions, err = a.classifier.EmotionScores(gctx, text)
		return err
	})

	g.Go(func() error {
		var err error
		sentiment, err = a.classifier.Sentiment(gctx, text)
		return err
	})

	g.Go(func() error {
		sources = a.fetchSources(gctx, keywords, findSources)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg, err := emotion.Aggregate(emotions)
	if err != nil {
		return nil, err
	}

	return compose(sentiment, agg, keywords, sources), nil
}

// fetchSources runs the literature branch. Keywords gate the whole branch:
// with none there is nothing to search for, and the fetcher is not invoked.
// Fetch failures produce an empty list, never an error.
func (a *Analyzer) fetchSources(ctx context.Context, keywords []string, findSources bool) []scholar.Paper {
	if !findSources || len(keywords) == 0 {
		return []scholar.Paper{}
	}

	query := a.formulator.Formulate(ctx, keywords)
	if query == "" {
		return []scholar.Paper{}
	}

	papers, err := a.fetcher.Search(ctx, query)
	if err != nil {
		a.log.WithError(err).Warn("Literature search failed, continuing without sources")
		return []scholar.Paper{}
	}
	if papers == nil {
		return []scholar.Paper{}
	}
	return papers
}

// compose assembles the final report. All scores are rounded here, at the
// serialization boundary, so internal math keeps full precision.
func compose(sentiment emotion.Score, agg emotion.Aggregation, keywords []string, sources []scholar.Paper) *Report {
	ranked := agg.Ranked()

	secondary := make([]emotion.Score, 0, len(agg.Secondary))
	for _, s := range agg.Secondary {
		secondary = append(secondary, emotion.Score{Label: s.Label, Score: emotion.Round3(s.Score)})
	}

	breakdown := make(map[string]float64, len(ranked))
	for _, s := range ranked {
		breakdown[s.Label] = emotion.Round3(s.Score)
	}

	if keywords == nil {
		keywords = []string{}
	}

	for i := range sources {
		sources[i].Similarity = emotion.Round2(sources[i].Similarity)
	}

	return &Report{
		Sentiment: Sentiment{
			Label: sentiment.Label,
			Score: emotion.Round3(sentiment.Score),
		},
		PrimaryEmotion: PrimaryEmotion{
			Label:     agg.Primary.Label,
			Score:     emotion.Round3(agg.Primary.Score),
			Intensity: emotion.Intensity(agg.Primary.Score),
		},
		Secondary: secondary,
		Complexity: Complexity{
			IsMixed:        agg.IsMixed,
			DiversityScore: agg.DiversityScore,
		},
		KeywordInsights: KeywordInsights{
			KeyPhrases:        keywords,
			EmotionalTriggers: emotion.Triggers(keywords, ranked),
		},
		AcademicSources: sources,
		FullBreakdown:   breakdown,
	}
}
