// Package cluster groups topically related items with single-pass greedy
// clustering. The first item assigned to a cluster becomes its representative
// and is the sole comparison point for later candidates.
package cluster

import (
	"fmt"
	"strings"

	"tradewire/config"
	"tradewire/types"
)

// Clusterer assigns cluster ids and similar-item links to a deduplicated
// working set. Cluster ids are ephemeral and carry no meaning across runs.
type Clusterer struct {
	threshold     float64
	tickerWeight  float64
	companyWeight float64
	titleWeight   float64
	maxSimilar    int
}

// New creates a Clusterer from the configured weights.
func New(cfg config.ClusterConfig) *Clusterer {
	return &Clusterer{
		threshold:     cfg.SimilarityThreshold,
		tickerWeight:  cfg.TickerWeight,
		companyWeight: cfg.CompanyWeight,
		titleWeight:   cfg.TitleWeight,
		maxSimilar:    cfg.MaxSimilarItems,
	}
}

type clusterState struct {
	id             string
	representative *types.EnrichedItem
	members        []*types.EnrichedItem
}

// Cluster processes items in order, assigning each to the best existing
// cluster when its topic similarity to that cluster's representative exceeds
// the threshold, and creating a singleton cluster otherwise. Afterwards every
// item has a non-empty ClusterID and up to maxSimilar SimilarItemIDs, never
// including itself. Clusters are not merged or split once created.
func (c *Clusterer) Cluster(items []*types.EnrichedItem) {
	var clusters []*clusterState

	for _, item := range items {
		best := -1
		bestScore := 0.0
		for i, cl := range clusters {
			score := c.topicSimilarity(item, cl.representative)
			if score > bestScore {
				bestScore = score
				best = i
			}
		}

		if best >= 0 && bestScore > c.threshold {
			clusters[best].members = append(clusters[best].members, item)
			item.ClusterID = clusters[best].id
			continue
		}

		cl := &clusterState{
			id:             fmt.Sprintf("cluster-%d", len(clusters)+1),
			representative: item,
			members:        []*types.EnrichedItem{item},
		}
		clusters = append(clusters, cl)
		item.ClusterID = cl.id
	}

	for _, cl := range clusters {
		for _, item := range cl.members {
			item.SimilarItemIDs = similarIDs(item, cl.members, c.maxSimilar)
		}
	}
}

// topicSimilarity combines raw entity overlap counts with title word-set
// Jaccard. Overlap counts are intersection sizes, not normalized ratios.
func (c *Clusterer) topicSimilarity(a, b *types.EnrichedItem) float64 {
	tickerOverlap := overlapCount(a.Entities.Tickers, b.Entities.Tickers)
	companyOverlap := overlapCount(a.Entities.Companies, b.Entities.Companies)
	titleSim := titleJaccard(a.Title, b.Title)

	return c.tickerWeight*float64(tickerOverlap) +
		c.companyWeight*float64(companyOverlap) +
		c.titleWeight*titleSim
}

func overlapCount(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	count := 0
	for _, v := range b {
		if _, ok := set[v]; ok {
			count++
		}
	}
	return count
}

func titleJaccard(a, b string) float64 {
	setA := wordSet(strings.ToLower(a))
	setB := wordSet(strings.ToLower(b))

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

func similarIDs(self *types.EnrichedItem, members []*types.EnrichedItem, limit int) []string {
	var ids []string
	for _, m := range members {
		if m.ID == self.ID {
			continue
		}
		ids = append(ids, m.ID)
		if len(ids) == limit {
			break
		}
	}
	return ids
}
