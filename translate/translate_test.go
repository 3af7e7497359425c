package translate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tradewire/types"
)

type fakeMT struct {
	fail   bool
	called []string
}

func (f *fakeMT) TranslateText(_ context.Context, text, _ string) (string, error) {
	if f.fail {
		return "", errors.New("service down")
	}
	f.called = append(f.called, text)
	// Identity translation keeps substitution effects observable.
	return text, nil
}

func item(id, title, content string) *types.EnrichedItem {
	return &types.EnrichedItem{RawItem: types.RawItem{ID: id, Title: title, Content: content}}
}

func TestGlossarySubstitutionWholeWord(t *testing.T) {
	tr := New(map[string]string{"stock": "acción", "bull market": "mercado alcista"}, nil)

	out := tr.Translate(context.Background(), []*types.EnrichedItem{
		item("a", "The stock enters a bull market", "restocking is not a stock word"),
	}, "es")

	got := out[0]
	if !got.IsTranslated {
		t.Fatalf("item should be marked translated")
	}
	if got.TranslatedTitle != "The acción enters a mercado alcista" {
		t.Errorf("title = %q", got.TranslatedTitle)
	}
	if strings.Contains(got.TranslatedContent, "reacción") {
		t.Errorf("substitution must be whole-word: %q", got.TranslatedContent)
	}
	if !strings.Contains(got.TranslatedContent, "restocking") {
		t.Errorf("partial-word matches must be untouched: %q", got.TranslatedContent)
	}
}

func TestTickersProtectedFromGlossary(t *testing.T) {
	// A glossary entry that collides with a ticker must not rewrite it.
	tr := New(map[string]string{"gld": "oro"}, nil)

	out := tr.Translate(context.Background(), []*types.EnrichedItem{
		item("a", "GLD holdings rise as gld demand grows", ""),
	}, "es")

	title := out[0].TranslatedTitle
	if !strings.Contains(title, "GLD") {
		t.Errorf("ticker GLD must survive: %q", title)
	}
	if !strings.Contains(title, "oro") {
		t.Errorf("lowercase non-ticker occurrence should translate: %q", title)
	}
	if strings.Contains(title, "__TKR") {
		t.Errorf("placeholders must not leak: %q", title)
	}
}

func TestMachineTranslatorSeesPlaceholders(t *testing.T) {
	mt := &fakeMT{}
	tr := New(nil, mt)

	tr.Translate(context.Background(), []*types.EnrichedItem{
		item("a", "AAPL and MSFT diverge", ""),
	}, "es")

	if len(mt.called) != 1 {
		t.Fatalf("machine translator called %d times, want 1", len(mt.called))
	}
	if strings.Contains(mt.called[0], "AAPL") || strings.Contains(mt.called[0], "MSFT") {
		t.Errorf("tickers must be protected before machine translation: %q", mt.called[0])
	}
	if !strings.Contains(mt.called[0], "__TKR0__") {
		t.Errorf("expected placeholder in machine translator input: %q", mt.called[0])
	}
}

func TestTranslationFailureFallsBack(t *testing.T) {
	tr := New(map[string]string{"stock": "acción"}, &fakeMT{fail: true})

	out := tr.Translate(context.Background(), []*types.EnrichedItem{
		item("a", "stock rally", "body"),
		item("b", "another stock note", ""),
	}, "es")

	for _, got := range out {
		if got.IsTranslated {
			t.Errorf("item %s must fall back untranslated", got.ID)
		}
		if got.TranslatedTitle != "" {
			t.Errorf("item %s must not keep partial output: %q", got.ID, got.TranslatedTitle)
		}
	}
}

func TestDistinctTickersGetDistinctPlaceholders(t *testing.T) {
	protected, placeholders := protectTickers("BTC flips ETH while BTC dominance grows")

	if strings.Contains(protected, "BTC") || strings.Contains(protected, "ETH") {
		t.Fatalf("tickers left unprotected: %q", protected)
	}
	if len(placeholders) != 3 {
		t.Errorf("got %d placeholders, want one per occurrence (3)", len(placeholders))
	}
	if restored := restoreTickers(protected, placeholders); restored != "BTC flips ETH while BTC dominance grows" {
		t.Errorf("restore mismatch: %q", restored)
	}
}
