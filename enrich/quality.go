package enrich

import (
	"math"
	"strings"
	"time"

	"tradewire/types"
)

// scoreQuality applies the additive quality model: a base of 50, bonuses for
// reputable outlets, long content, heavy upvotes and recency, and a penalty
// for clickbait titles. The result is clamped to [0,100].
func (e *Enricher) scoreQuality(raw types.RawItem, now time.Time) float64 {
	score := e.quality.Base

	if e.isReputable(raw) {
		score += e.quality.ReputableBonus
	}

	lowerTitle := strings.ToLower(raw.Title)
	for _, phrase := range e.quality.ClickbaitPhrases {
		if strings.Contains(lowerTitle, phrase) {
			score -= e.quality.ClickbaitPenalty
			break
		}
	}

	if len(raw.Content) > e.quality.LongContentMinChars {
		score += e.quality.LongContentBonus
	}

	if raw.Upvotes > e.quality.UpvoteThreshold {
		bonus := math.Log10(float64(raw.Upvotes)) * e.quality.UpvoteLogMultiplier
		if bonus > e.quality.UpvoteBonusCap {
			bonus = e.quality.UpvoteBonusCap
		}
		score += bonus
	}

	switch age := now.Sub(raw.Time()); {
	case age < time.Hour:
		score += e.quality.RecencyHourBonus
	case age < 6*time.Hour:
		score += e.quality.RecencySixHourBonus
	case age < 24*time.Hour:
		score += e.quality.RecencyDayBonus
	}

	return clamp(score, 0, 100)
}

func (e *Enricher) isReputable(raw types.RawItem) bool {
	source := strings.ToLower(raw.SourceName)
	author := strings.ToLower(raw.Author)
	for _, outlet := range e.quality.ReputableSources {
		if source != "" && strings.Contains(source, outlet) {
			return true
		}
		if author != "" && strings.Contains(author, outlet) {
			return true
		}
	}
	return false
}
