// Package enrich computes per-item heuristic annotations: sentiment,
// entities, quality score and reading time. Enrichment is a pure function
// over an immutable RawItem, so callers may run it in parallel.
package enrich

import (
	"fmt"
	"strings"
	"time"

	"tradewire/config"
	"tradewire/types"
)

// neutralRelevance is the placeholder relevance before ranking runs.
const neutralRelevance = 50

// wordsPerMinute is the assumed reading speed.
const wordsPerMinute = 200

// Enricher applies the configured heuristic tables to raw items.
type Enricher struct {
	sentiment config.SentimentConfig
	entities  config.EntityConfig
	quality   config.QualityConfig

	// Clock is injectable for deterministic recency tests.
	Clock func() time.Time

	tickerSet map[string]struct{}
}

// New creates an Enricher from the heuristic tables.
func New(h config.Heuristics) *Enricher {
	tickers := make(map[string]struct{}, len(h.Entities.Tickers))
	for _, t := range h.Entities.Tickers {
		tickers[t] = struct{}{}
	}
	return &Enricher{
		sentiment: h.Sentiment,
		entities:  h.Entities,
		quality:   h.Quality,
		Clock:     time.Now,
		tickerSet: tickers,
	}
}

// Enrich builds an EnrichedItem from a RawItem. A missing title is the one
// per-item data error: the pipeline drops such items with a warning.
func (e *Enricher) Enrich(raw types.RawItem) (*types.EnrichedItem, error) {
	if strings.TrimSpace(raw.Title) == "" {
		return nil, fmt.Errorf("%w: item %s has no title", types.ErrEnrichmentItem, raw.ID)
	}

	text := raw.Title + " " + raw.Content
	now := e.Clock()

	label, score := e.scoreSentiment(text)

	item := &types.EnrichedItem{
		RawItem:            raw,
		Sentiment:          label,
		SentimentScore:     score,
		RelevanceScore:     neutralRelevance,
		QualityScore:       e.scoreQuality(raw, now),
		ReadingTimeMinutes: readingTime(text),
		Entities:           e.extractEntities(text),
	}
	return item, nil
}

// readingTime is ceil(wordCount/200), minimum one minute.
func readingTime(text string) int {
	words := len(strings.Fields(text))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
