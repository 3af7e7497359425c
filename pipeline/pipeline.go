// Package pipeline orchestrates the aggregation flow: concurrent source
// fan-out, per-item enrichment, deduplication, clustering and ranking.
package pipeline

import (
	"context"
	"log"
	"strings"
	"time"

	"tradewire/cluster"
	"tradewire/config"
	"tradewire/dedup"
	"tradewire/enrich"
	"tradewire/rank"
	"tradewire/sources"
	"tradewire/translate"
	"tradewire/types"
)

const (
	defaultFetchTimeout = 15 * time.Second
	enrichWorkerCount   = 5
)

// Publisher receives every item that survives deduplication. Optional.
type Publisher interface {
	PublishItems(ctx context.Context, items []*types.EnrichedItem) error
}

// Archiver stores the final ranked result set of a run. Optional.
type Archiver interface {
	Archive(ctx context.Context, query string, items []*types.EnrichedItem) error
}

// Options wires a Pipeline. Cache, Signatures, Publisher, Archiver and
// MachineTranslator are all optional; a zero Options still yields a working
// in-memory pipeline (with no adapters).
type Options struct {
	Adapters   []sources.Adapter
	Heuristics config.Heuristics

	// FetchTimeout bounds the whole adapter fan-out. The upstream design had
	// no aggregate deadline, which let one slow source stall every query;
	// here a timed-out adapter simply contributes zero items.
	FetchTimeout time.Duration

	Cache             ResultCache
	Signatures        dedup.SignatureStore
	Publisher         Publisher
	Archiver          Archiver
	MachineTranslator translate.MachineTranslator
}

// Pipeline owns all per-instance state: the adapters, the heuristic stages
// and the optional caches. Nothing is process-global, so separate instances
// are fully isolated and tests stay deterministic.
type Pipeline struct {
	adapters     []sources.Adapter
	enricher     *enrich.Enricher
	deduplicator *dedup.Deduplicator
	clusterer    *cluster.Clusterer
	ranker       *rank.Ranker
	translator   *translate.Translator

	fetchTimeout time.Duration
	cache        ResultCache
	publisher    Publisher
	archiver     Archiver
}

// New creates a Pipeline from Options.
func New(opts Options) *Pipeline {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	return &Pipeline{
		adapters:     opts.Adapters,
		enricher:     enrich.New(opts.Heuristics),
		deduplicator: dedup.New(opts.Heuristics.Dedup, opts.Signatures),
		clusterer:    cluster.New(opts.Heuristics.Cluster),
		ranker:       rank.New(opts.Heuristics.Rank),
		translator:   translate.New(opts.Heuristics.Glossary, opts.MachineTranslator),
		fetchTimeout: opts.FetchTimeout,
		cache:        opts.Cache,
		publisher:    opts.Publisher,
		archiver:     opts.Archiver,
	}
}

// Aggregate runs the full pipeline for one query. Individual source failures
// are logged and skipped; the call fails only for an invalid query. The
// returned slice is sorted by descending composite score.
func (p *Pipeline) Aggregate(ctx context.Context, query string, enabled []types.SourceKind) ([]*types.EnrichedItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, types.ErrEmptyQuery
	}

	key := CacheKey(query, enabled)
	if p.cache != nil {
		if items, ok := p.cache.Get(ctx, key); ok {
			log.Printf("Cache hit for query %q (%d items)", query, len(items))
			return items, nil
		}
	}

	raw := p.fetchAll(ctx, query, enabled)
	log.Printf("Fetched %d raw items for query %q", len(raw), query)

	enriched := p.enrichAll(raw)

	accepted := p.deduplicator.Deduplicate(ctx, enriched)
	log.Printf("Deduplication kept %d of %d items", len(accepted), len(enriched))

	if p.publisher != nil && len(accepted) > 0 {
		if err := p.publisher.PublishItems(ctx, accepted); err != nil {
			log.Printf("Warning: failed to publish accepted items: %v", err)
		}
	}

	p.clusterer.Cluster(accepted)
	ranked := p.ranker.Rank(accepted, query)

	if p.cache != nil {
		p.cache.Set(ctx, key, ranked)
	}
	if p.archiver != nil {
		if err := p.archiver.Archive(ctx, query, ranked); err != nil {
			log.Printf("Warning: failed to archive result: %v", err)
		}
	}

	return ranked, nil
}

// Translate applies glossary and machine translation to ranked items.
func (p *Pipeline) Translate(ctx context.Context, items []*types.EnrichedItem, targetLang string) []*types.EnrichedItem {
	return p.translator.Translate(ctx, items, targetLang)
}

type fetchResult struct {
	kind  types.SourceKind
	items []types.RawItem
	err   error
}

// fetchAll fans out to every enabled adapter and merges results in
// completion order. Each task settles independently: one adapter's failure
// or timeout never cancels its siblings, it just contributes zero items.
func (p *Pipeline) fetchAll(ctx context.Context, query string, enabled []types.SourceKind) []types.RawItem {
	enabledSet := make(map[types.SourceKind]struct{}, len(enabled))
	for _, k := range enabled {
		enabledSet[k] = struct{}{}
	}

	fctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	results := make(chan fetchResult)
	launched := 0
	for _, adapter := range p.adapters {
		if _, ok := enabledSet[adapter.Kind()]; !ok {
			continue
		}
		launched++
		go func(a sources.Adapter) {
			items, err := a.Fetch(fctx, query)
			results <- fetchResult{kind: a.Kind(), items: items, err: err}
		}(adapter)
	}

	var merged []types.RawItem
	for i := 0; i < launched; i++ {
		res := <-results
		if res.err != nil {
			log.Printf("Warning: source %s failed: %v", res.kind, res.err)
			continue
		}
		log.Printf("Source %s returned %d items", res.kind, len(res.items))
		merged = append(merged, res.items...)
	}
	return merged
}

// enrichAll runs enrichment over a worker pool. Results keep merge order so
// that downstream first-seen-wins semantics stay tied to arrival order;
// items that fail enrichment are dropped with a warning.
func (p *Pipeline) enrichAll(raw []types.RawItem) []*types.EnrichedItem {
	if len(raw) == 0 {
		return nil
	}

	slots := make([]*types.EnrichedItem, len(raw))
	indices := make(chan int)
	done := make(chan struct{})

	workers := enrichWorkerCount
	if workers > len(raw) {
		workers = len(raw)
	}
	for w := 0; w < workers; w++ {
		go func() {
			for i := range indices {
				item, err := p.enricher.Enrich(raw[i])
				if err != nil {
					log.Printf("Warning: dropping item %s: %v", raw[i].ID, err)
					continue
				}
				slots[i] = item
			}
			done <- struct{}{}
		}()
	}

	for i := range raw {
		indices <- i
	}
	close(indices)
	for w := 0; w < workers; w++ {
		<-done
	}

	enriched := make([]*types.EnrichedItem, 0, len(raw))
	for _, item := range slots {
		if item != nil {
			enriched = append(enriched, item)
		}
	}
	return enriched
}

// CacheKey normalizes a query and source selection into a cache key.
func CacheKey(query string, enabled []types.SourceKind) string {
	parts := make([]string, 0, len(enabled))
	for _, k := range types.AllSourceKinds {
		for _, e := range enabled {
			if e == k {
				parts = append(parts, string(k))
				break
			}
		}
	}
	return strings.ToLower(strings.TrimSpace(query)) + "|" + strings.Join(parts, ",")
}
