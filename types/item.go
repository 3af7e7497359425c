package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SourceKind identifies the family of content source an item came from.
type SourceKind string

const (
	SourceReddit SourceKind = "reddit"
	SourceSocial SourceKind = "social"
	SourceRSS    SourceKind = "rss"
	SourceAPI    SourceKind = "api"
	SourceCrypto SourceKind = "crypto"
)

// AllSourceKinds lists every supported source kind in a stable order.
var AllSourceKinds = []SourceKind{SourceReddit, SourceSocial, SourceRSS, SourceAPI, SourceCrypto}

// ParseSourceKind validates a source kind string.
func ParseSourceKind(s string) (SourceKind, bool) {
	for _, k := range AllSourceKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Sentiment is the heuristic sentiment label attached during enrichment.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// RawItem is a single piece of content as delivered by a source adapter.
// IDs are globally unique and prefixed by the producing source.
// Immutable once created.
type RawItem struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	URL             string     `json:"url,omitempty"`
	SourceKind      SourceKind `json:"source_kind"`
	SourceName      string     `json:"source_name,omitempty"`
	Content         string     `json:"content,omitempty"`
	Author          string     `json:"author,omitempty"`
	Timestamp       int64      `json:"timestamp"` // epoch milliseconds
	EngagementScore int        `json:"engagement_score"`
	Upvotes         int        `json:"upvotes,omitempty"`
	Comments        int        `json:"comments,omitempty"`
	Category        string     `json:"category,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
}

// Time converts the epoch-millisecond timestamp to a time.Time.
func (r *RawItem) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Entities holds the whitelisted entity mentions extracted from an item.
// Each list is deduplicated; order carries no meaning.
type Entities struct {
	Tickers   []string `json:"tickers"`
	Companies []string `json:"companies"`
	People    []string `json:"people"`
	Locations []string `json:"locations"`
}

// EnrichedItem is a RawItem plus everything the pipeline computes for it.
// Only the clusterer (ClusterID, SimilarItemIDs) and translator (translated
// fields) mutate an item after enrichment; the ranker overwrites
// RelevanceScore and nothing else.
type EnrichedItem struct {
	RawItem

	Sentiment          Sentiment `json:"sentiment"`
	SentimentScore     float64   `json:"sentiment_score"` // [0,1]
	RelevanceScore     float64   `json:"relevance_score"` // [0,100]
	QualityScore       float64   `json:"quality_score"`   // [0,100]
	ReadingTimeMinutes int       `json:"reading_time_minutes"`
	Entities           Entities  `json:"entities"`
	ClusterID          string    `json:"cluster_id,omitempty"`
	SimilarItemIDs     []string  `json:"similar_item_ids,omitempty"`
	TranslatedTitle    string    `json:"translated_title,omitempty"`
	TranslatedContent  string    `json:"translated_content,omitempty"`
	IsTranslated       bool      `json:"is_translated"`
}

// AggregateResult is the top-level wrapper returned by the HTTP API.
type AggregateResult struct {
	Query     string          `json:"query"`
	FetchedAt time.Time       `json:"fetched_at"`
	ItemCount int             `json:"item_count"`
	Items     []*EnrichedItem `json:"items"`
}

// GenerateID creates a short, stable ID by hashing the provided string input.
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
