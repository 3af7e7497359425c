package sources

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"

	"tradewire/types"
)

const (
	rssMaxPerFeed     = 20
	extractionTimeout = 15 * time.Second
)

// DefaultFeeds are the market-news feeds polled when none are configured.
var DefaultFeeds = []string{
	"https://feeds.marketwatch.com/marketwatch/topstories/",
	"https://www.cnbc.com/id/100003114/device/rss/rss.html",
	"https://feeds.content.dowjones.io/public/rss/mw_marketpulse",
}

// RSS fetches items from a set of feeds and keeps those matching the query.
// RSS has no server-side search, so query shaping happens client-side.
type RSS struct {
	feedURLs []string
	parser   *gofeed.Parser
	// extractContent backfills empty item content with readability extraction
	// of the linked page. Extraction failures leave content empty.
	extractContent bool
	timeout        time.Duration
}

// NewRSS creates an RSS adapter over the given feed URLs (DefaultFeeds when
// empty). When extractContent is set, items without a summary get their full
// text extracted from the article page.
func NewRSS(feedURLs []string, extractContent bool, timeout time.Duration) *RSS {
	if len(feedURLs) == 0 {
		feedURLs = DefaultFeeds
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &RSS{
		feedURLs:       feedURLs,
		parser:         gofeed.NewParser(),
		extractContent: extractContent,
		timeout:        timeout,
	}
}

func (r *RSS) Kind() types.SourceKind { return types.SourceRSS }

// Fetch parses every configured feed and returns items whose title or
// description mentions any query word. A single failing feed is skipped; the
// adapter fails only when every feed fails.
func (r *RSS) Fetch(ctx context.Context, query string) ([]types.RawItem, error) {
	queryWords := strings.Fields(strings.ToLower(query))

	var items []types.RawItem
	var lastErr error
	failures := 0

	for _, feedURL := range r.feedURLs {
		fctx, cancel := context.WithTimeout(ctx, r.timeout)
		feed, err := r.parser.ParseURLWithContext(feedURL, fctx)
		cancel()
		if err != nil {
			failures++
			lastErr = err
			log.Printf("Warning: rss feed %s failed: %v", feedURL, err)
			continue
		}

		count := 0
		for _, entry := range feed.Items {
			if count >= rssMaxPerFeed {
				break
			}
			item, ok := r.mapItem(feed, entry, queryWords)
			if !ok {
				continue
			}
			items = append(items, item)
			count++
		}
	}

	if failures == len(r.feedURLs) {
		return nil, fmt.Errorf("rss: %w: all %d feeds failed: %v", types.ErrSourceUnavailable, failures, lastErr)
	}

	if r.extractContent {
		r.backfillContent(ctx, items)
	}

	return items, nil
}

func (r *RSS) mapItem(feed *gofeed.Feed, entry *gofeed.Item, queryWords []string) (types.RawItem, bool) {
	if entry.Title == "" {
		return types.RawItem{}, false
	}

	haystack := strings.ToLower(entry.Title + " " + entry.Description)
	if len(queryWords) > 0 && !containsAny(haystack, queryWords) {
		return types.RawItem{}, false
	}

	id := entry.GUID
	if id == "" && entry.Link != "" {
		id = types.GenerateID(entry.Link)
	}

	var published time.Time
	if entry.PublishedParsed != nil {
		published = *entry.PublishedParsed
	} else if entry.UpdatedParsed != nil {
		published = *entry.UpdatedParsed
	} else {
		published = time.Now()
	}

	author := ""
	if entry.Author != nil {
		author = entry.Author.Name
	}

	content := entry.Description
	if content == "" {
		content = entry.Content
	}

	category := ""
	if len(entry.Categories) > 0 {
		category = entry.Categories[0]
	}

	item := types.RawItem{
		ID:         "rss-" + id,
		Title:      entry.Title,
		URL:        entry.Link,
		SourceKind: types.SourceRSS,
		SourceName: feed.Title,
		Content:    content,
		Author:     author,
		Timestamp:  published.UnixMilli(),
		Category:   category,
	}
	if entry.Image != nil {
		item.ImageURL = entry.Image.URL
	}
	return item, true
}

// backfillContent extracts full article text for items with no content.
func (r *RSS) backfillContent(ctx context.Context, items []types.RawItem) {
	for i := range items {
		if items[i].Content != "" || items[i].URL == "" {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		article, err := readability.FromURL(items[i].URL, extractionTimeout)
		if err != nil {
			log.Printf("Warning: content extraction failed for %s: %v", items[i].URL, err)
			continue
		}
		items[i].Content = article.TextContent
		if items[i].Author == "" {
			items[i].Author = article.Byline
		}
		if items[i].ImageURL == "" {
			items[i].ImageURL = article.Image
		}
	}
}

func containsAny(haystack string, words []string) bool {
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}
