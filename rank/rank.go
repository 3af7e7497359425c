// Package rank computes query relevance and the final composite ordering of
// the working set.
package rank

import (
	"sort"
	"strings"
	"time"

	"tradewire/config"
	"tradewire/types"
)

// Ranker scores items against a query and sorts them by composite score.
type Ranker struct {
	cfg config.RankConfig

	// Clock is injectable for deterministic recency tests.
	Clock func() time.Time
}

// New creates a Ranker from the configured bonuses and weights.
func New(cfg config.RankConfig) *Ranker {
	return &Ranker{cfg: cfg, Clock: time.Now}
}

// Rank overwrites every item's RelevanceScore, then sorts the slice in place
// by descending composite score. The sort is stable: ties keep their prior
// relative order, which makes output reproducible for identical inputs.
func (r *Ranker) Rank(items []*types.EnrichedItem, query string) []*types.EnrichedItem {
	now := r.Clock()

	composites := make([]float64, len(items))
	for i, item := range items {
		item.RelevanceScore = r.relevance(item, query)
		composites[i] = r.composite(item, now)
	}

	type indexed struct {
		item  *types.EnrichedItem
		score float64
	}
	scored := make([]indexed, len(items))
	for i := range items {
		scored[i] = indexed{items[i], composites[i]}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	for i := range scored {
		items[i] = scored[i].item
	}
	return items
}

// relevance scores how well one item answers the query, clamped to [0,100]:
// a flat bonus for the whole query phrase, per-word bonuses weighted by how
// early the word appears in the title, and entity bonuses when an extracted
// ticker or company appears in the query.
func (r *Ranker) relevance(item *types.EnrichedItem, query string) float64 {
	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	if lowerQuery == "" {
		return 0
	}

	lowerTitle := strings.ToLower(item.Title)
	lowerContent := strings.ToLower(item.Content)

	score := 0.0

	if strings.Contains(lowerTitle, lowerQuery) || strings.Contains(lowerContent, lowerQuery) {
		score += r.cfg.PhraseBonus
	}

	for _, word := range strings.Fields(lowerQuery) {
		if pos := strings.Index(lowerTitle, word); pos >= 0 {
			score += r.cfg.TitleWordBonus
			// Earlier mentions earn a larger bonus, fading to zero at
			// character position 100.
			positionBonus := 10 - float64(pos)/10
			if positionBonus > 0 {
				score += positionBonus
			}
		}
		if strings.Contains(lowerContent, word) {
			score += r.cfg.ContentWordBonus
		}
	}

	for _, ticker := range item.Entities.Tickers {
		if strings.Contains(lowerQuery, strings.ToLower(ticker)) {
			score += r.cfg.TickerBonus
			break
		}
	}
	for _, company := range item.Entities.Companies {
		if strings.Contains(lowerQuery, strings.ToLower(company)) {
			score += r.cfg.CompanyBonus
			break
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// composite blends relevance, quality, sentiment magnitude and recency.
// The recency factor decays ten points per hundred minutes of age, floored at
// zero and deliberately not capped above 100 for future-dated items.
func (r *Ranker) composite(item *types.EnrichedItem, now time.Time) float64 {
	ageMinutes := now.Sub(item.Time()).Minutes()
	recency := 100 - ageMinutes/10
	if recency < 0 {
		recency = 0
	}

	return r.cfg.RelevanceWeight*item.RelevanceScore +
		r.cfg.QualityWeight*item.QualityScore +
		r.cfg.SentimentWeight*(item.SentimentScore*20) +
		r.cfg.RecencyWeight*recency
}
