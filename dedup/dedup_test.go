package dedup

import (
	"context"
	"strings"
	"testing"

	"tradewire/config"
	"tradewire/types"
)

func newTestDeduplicator(store SignatureStore) *Deduplicator {
	return New(config.DefaultHeuristics().Dedup, store)
}

func enriched(id, title, content string) *types.EnrichedItem {
	return &types.EnrichedItem{RawItem: types.RawItem{ID: id, Title: title, Content: content}}
}

func TestSignatureNormalization(t *testing.T) {
	sig := Signature("Fed Raises Rates!", "Markets react, 5% moves.", 150)
	want := "fed raises rates markets react 5 moves"
	if sig != want {
		t.Errorf("Signature = %q, want %q", sig, want)
	}
}

func TestSignatureTruncation(t *testing.T) {
	long := strings.Repeat("abcde ", 100)
	sig := Signature(long, "", 150)
	if len(sig) != 150 {
		t.Errorf("signature length = %d, want 150", len(sig))
	}
}

func TestJaccard(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "fed raises rates", "fed raises rates", 1.0},
		{"disjoint", "gold climbs", "bitcoin falls", 0.0},
		{"half overlap", "a b c d", "c d e f", 2.0 / 6.0},
		{"both empty", "", "", 0.0},
		{"one empty", "a b", "", 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Jaccard(tc.a, tc.b); got != tc.want {
				t.Errorf("Jaccard(%q,%q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestDeduplicateDropsNearDuplicateFirstSeenWins(t *testing.T) {
	d := newTestDeduplicator(nil)

	items := []*types.EnrichedItem{
		enriched("a", "Fed raises rates amid inflation surge", ""),
		enriched("b", "Fed raises rates amid inflation surge concerns", ""),
		enriched("c", "Gold steady ahead of jobs report", ""),
	}
	// Sanity: the first pair really is above the 0.8 threshold.
	sigA := Signature(items[0].Title, "", 150)
	sigB := Signature(items[1].Title, "", 150)
	if Jaccard(sigA, sigB) <= 0.8 {
		t.Fatalf("fixture pair similarity %v not above threshold", Jaccard(sigA, sigB))
	}

	out := d.Deduplicate(context.Background(), items)
	if len(out) != 2 {
		t.Fatalf("got %d survivors, want 2", len(out))
	}
	if out[0].ID != "a" {
		t.Errorf("first survivor = %s, want the first-seen item a", out[0].ID)
	}
	if out[1].ID != "c" {
		t.Errorf("second survivor = %s, want c", out[1].ID)
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	d := newTestDeduplicator(nil)

	items := []*types.EnrichedItem{
		enriched("a", "Fed raises rates amid inflation surge", ""),
		enriched("b", "Fed raises rates amid inflation surge concerns", ""),
		enriched("c", "Oil slips on demand worries", ""),
		enriched("d", "Oil slips on demand worries today", ""),
	}

	once := d.Deduplicate(context.Background(), items)
	twice := newTestDeduplicator(nil).Deduplicate(context.Background(), once)

	if len(twice) != len(once) {
		t.Fatalf("second pass changed the set: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("item %d changed: %s -> %s", i, once[i].ID, twice[i].ID)
		}
	}
}

func TestDeduplicateConsultsStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := newTestDeduplicator(store)
	out := first.Deduplicate(ctx, []*types.EnrichedItem{enriched("a", "ECB holds rates steady", "")})
	if len(out) != 1 {
		t.Fatalf("first run should accept the item")
	}

	// Same signature in a later run is dropped by the shared store.
	second := newTestDeduplicator(store)
	out = second.Deduplicate(ctx, []*types.EnrichedItem{enriched("b", "ECB holds rates steady", "")})
	if len(out) != 0 {
		t.Fatalf("second run should drop the previously seen signature, got %d items", len(out))
	}
}

func TestDeduplicateKeepsDistinctItems(t *testing.T) {
	d := newTestDeduplicator(nil)
	items := []*types.EnrichedItem{
		enriched("a", "Apple earnings beat expectations", ""),
		enriched("b", "Tesla recalls vehicles over software", ""),
		enriched("c", "Oil prices slide on demand fears", ""),
	}
	out := d.Deduplicate(context.Background(), items)
	if len(out) != 3 {
		t.Fatalf("distinct items must all survive, got %d of 3", len(out))
	}
}
