// Package dedup removes near-duplicate items using truncated text signatures
// and word-set Jaccard similarity.
package dedup

import (
	"context"
	"log"
	"strings"

	"tradewire/config"
	"tradewire/types"
)

// Deduplicator filters near-duplicates out of a working set. Comparison is
// O(n²) over the accepted set, which is fine for per-query batches of tens to
// low hundreds of items; it is the documented scaling limit of this design.
type Deduplicator struct {
	threshold float64
	sigLength int

	// store is an optional cross-run signature set. Items whose exact
	// signature was seen in an earlier run are dropped up front. Store errors
	// are logged and treated as not-seen.
	store SignatureStore
}

// New creates a Deduplicator. store may be nil to disable cross-run checks.
func New(cfg config.DedupConfig, store SignatureStore) *Deduplicator {
	return &Deduplicator{
		threshold: cfg.SimilarityThreshold,
		sigLength: cfg.SignatureLength,
		store:     store,
	}
}

// Deduplicate processes items in arrival order and returns the survivors.
// First seen wins: an earlier accepted item is never replaced by a later
// near-duplicate, even a higher-quality one.
func (d *Deduplicator) Deduplicate(ctx context.Context, items []*types.EnrichedItem) []*types.EnrichedItem {
	accepted := make([]*types.EnrichedItem, 0, len(items))
	signatures := make([]string, 0, len(items))

	for _, item := range items {
		sig := Signature(item.Title, item.Content, d.sigLength)

		if d.seenBefore(ctx, sig) {
			log.Printf("Dropping %s: signature seen in a previous run", item.ID)
			continue
		}

		duplicate := false
		for i, acceptedSig := range signatures {
			if Jaccard(sig, acceptedSig) > d.threshold {
				log.Printf("Dropping %s as duplicate of %s", item.ID, accepted[i].ID)
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		accepted = append(accepted, item)
		signatures = append(signatures, sig)
		d.register(ctx, sig)
	}

	return accepted
}

func (d *Deduplicator) seenBefore(ctx context.Context, sig string) bool {
	if d.store == nil {
		return false
	}
	seen, err := d.store.Seen(ctx, HashSignature(sig))
	if err != nil {
		log.Printf("Warning: signature store check failed: %v", err)
		return false
	}
	return seen
}

func (d *Deduplicator) register(ctx context.Context, sig string) {
	if d.store == nil {
		return
	}
	if err := d.store.Add(ctx, HashSignature(sig)); err != nil {
		log.Printf("Warning: signature store add failed: %v", err)
	}
}

// Signature is the cheap content proxy used for similarity comparison:
// lowercased title+content with non-alphanumeric, non-space characters
// stripped, truncated to the first length characters.
func Signature(title, content string, length int) string {
	var b strings.Builder
	b.Grow(length)

	text := strings.ToLower(title + " " + content)
	for _, r := range text {
		if b.Len() >= length {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Jaccard computes word-set Jaccard similarity of two signatures:
// |intersection| / |union| over whitespace-split word sets. An empty union
// yields 0.
func Jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	union := len(setB)
	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}
