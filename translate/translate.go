// Package translate applies glossary-based term substitution to ranked items,
// protecting ticker symbols from being rewritten.
package translate

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"tradewire/types"
)

// MachineTranslator is the optional external translation hook applied after
// glossary substitution. Implementations translate free text between
// languages; the surrounding protect/substitute/restore ordering is the
// translator's responsibility, not theirs.
type MachineTranslator interface {
	TranslateText(ctx context.Context, text, targetLang string) (string, error)
}

// tickerRe matches 2-5 letter all-caps tokens, the candidate tickers that
// must survive translation untouched.
var tickerRe = regexp.MustCompile(`\b[A-Z]{2,5}\b`)

// Translator performs per-item translation. Failures fall back to the
// original item with IsTranslated left false; a translation failure is never
// a pipeline failure.
type Translator struct {
	glossary map[string]string
	mt       MachineTranslator // optional
}

// New creates a Translator. mt may be nil, in which case only glossary
// substitution is applied.
func New(glossary map[string]string, mt MachineTranslator) *Translator {
	return &Translator{glossary: glossary, mt: mt}
}

// Translate populates TranslatedTitle/TranslatedContent on each item. Items
// are mutated in place and the same slice is returned.
func (t *Translator) Translate(ctx context.Context, items []*types.EnrichedItem, targetLang string) []*types.EnrichedItem {
	for _, item := range items {
		title, err := t.translateText(ctx, item.Title, targetLang)
		if err != nil {
			log.Printf("Warning: %v for item %s; keeping original", err, item.ID)
			item.IsTranslated = false
			continue
		}

		content := ""
		if item.Content != "" {
			content, err = t.translateText(ctx, item.Content, targetLang)
			if err != nil {
				log.Printf("Warning: %v for item %s; keeping original", err, item.ID)
				item.IsTranslated = false
				continue
			}
		}

		item.TranslatedTitle = title
		item.TranslatedContent = content
		item.IsTranslated = true
	}
	return items
}

// translateText runs the protect/substitute/translate/restore sequence for
// one text fragment.
func (t *Translator) translateText(ctx context.Context, text, targetLang string) (string, error) {
	protected, placeholders := protectTickers(text)

	// Longest entries first so multi-word phrases win over their sub-terms,
	// and output does not depend on map iteration order.
	for _, source := range sortedTerms(t.glossary) {
		protected = replaceWholeWord(protected, source, t.glossary[source])
	}

	if t.mt != nil {
		translated, err := t.mt.TranslateText(ctx, protected, targetLang)
		if err != nil {
			return "", fmt.Errorf("%w: %v", types.ErrTranslation, err)
		}
		protected = translated
	}

	return restoreTickers(protected, placeholders), nil
}

func sortedTerms(glossary map[string]string) []string {
	terms := make([]string, 0, len(glossary))
	for term := range glossary {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	return terms
}

// protectTickers replaces every candidate ticker with a unique placeholder
// token so neither glossary substitution nor machine translation touches it.
func protectTickers(text string) (string, map[string]string) {
	placeholders := make(map[string]string)
	index := 0
	protected := tickerRe.ReplaceAllStringFunc(text, func(ticker string) string {
		placeholder := fmt.Sprintf("__TKR%d__", index)
		index++
		placeholders[placeholder] = ticker
		return placeholder
	})
	return protected, placeholders
}

func restoreTickers(text string, placeholders map[string]string) string {
	for placeholder, ticker := range placeholders {
		text = strings.ReplaceAll(text, placeholder, ticker)
	}
	return text
}

// replaceWholeWord substitutes every case-insensitive whole-word occurrence
// of source with target. Multi-word glossary phrases match across spaces.
func replaceWholeWord(text, source, target string) string {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(source) + `\b`)
	if err != nil {
		return text
	}
	return re.ReplaceAllString(text, target)
}
