package enrich

import (
	"regexp"
	"strings"

	"tradewire/types"
)

// tickerCandidateRe matches all-caps tokens of 1-5 letters. Candidates are
// then filtered against the ticker whitelist so that acronyms like CEO or
// GDP never surface as tickers.
var tickerCandidateRe = regexp.MustCompile(`\b[A-Z]{1,5}\b`)

func (e *Enricher) extractEntities(text string) types.Entities {
	lower := strings.ToLower(text)

	var tickers []string
	seen := make(map[string]struct{})
	for _, candidate := range tickerCandidateRe.FindAllString(text, -1) {
		if _, ok := e.tickerSet[candidate]; !ok {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		tickers = append(tickers, candidate)
	}

	return types.Entities{
		Tickers:   tickers,
		Companies: matchSubstrings(lower, e.entities.Companies, true),
		People:    matchSubstrings(text, e.entities.People, false),
		Locations: matchSubstrings(lower, e.entities.Locations, true),
	}
}

// matchSubstrings returns the whitelist entries present in the text. When
// caseInsensitive, the haystack is expected to be pre-lowercased and needles
// are lowered per entry; people are matched by exact substring.
func matchSubstrings(haystack string, needles []string, caseInsensitive bool) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, needle := range needles {
		probe := needle
		if caseInsensitive {
			probe = strings.ToLower(needle)
		}
		if !strings.Contains(haystack, probe) {
			continue
		}
		if _, dup := seen[needle]; dup {
			continue
		}
		seen[needle] = struct{}{}
		out = append(out, needle)
	}
	return out
}
