package enrich

import (
	"strings"

	"tradewire/types"
)

// scoreSentiment counts bullish and bearish cue words in the lowercased text.
// A label is assigned only when one side's count beats the other by more than
// the configured margin; the +1 in the denominator smooths tiny counts.
func (e *Enricher) scoreSentiment(text string) (types.Sentiment, float64) {
	lower := strings.ToLower(text)

	bullish := countOccurrences(lower, e.sentiment.BullishWords)
	bearish := countOccurrences(lower, e.sentiment.BearishWords)

	switch {
	case bullish > bearish+e.sentiment.Margin:
		return types.SentimentBullish, float64(bullish) / float64(bullish+bearish+1)
	case bearish > bullish+e.sentiment.Margin:
		return types.SentimentBearish, float64(bearish) / float64(bullish+bearish+1)
	default:
		return types.SentimentNeutral, 0.5
	}
}

// countOccurrences sums plain substring occurrences of each cue word. This is
// deliberately not tokenization-aware: "surges" counts for "surge".
func countOccurrences(text string, words []string) int {
	total := 0
	for _, w := range words {
		total += strings.Count(text, w)
	}
	return total
}
