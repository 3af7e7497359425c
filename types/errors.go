package types

import "errors"

// Failure kinds for the aggregation pipeline. Adapter errors are recovered by
// skipping the source; enrichment errors are recovered by dropping the item;
// translation errors are recovered by returning the untranslated item.
var (
	// ErrSourceUnavailable indicates a network or HTTP failure from one adapter.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSourceMalformed indicates an adapter received an unexpected payload shape.
	ErrSourceMalformed = errors.New("source returned malformed payload")

	// ErrEnrichmentItem indicates a single item's fields failed heuristic processing.
	ErrEnrichmentItem = errors.New("item failed enrichment")

	// ErrTranslation indicates a per-item translation failure.
	ErrTranslation = errors.New("translation failed")

	// ErrEmptyQuery is returned before any fetch when the query is blank.
	ErrEmptyQuery = errors.New("query must not be empty")
)
