package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tradewire/types"
)

const redditBaseURL = "https://www.reddit.com"

// redditUserAgent identifies the client; reddit throttles the default Go UA.
const redditUserAgent = "tradewire/1.0 (news aggregation)"

// Reddit fetches posts from the reddit search API.
type Reddit struct {
	baseURL string
	client  *http.Client
}

// NewReddit creates a reddit adapter. baseURL overrides the public API host
// (used in tests); pass "" for the default.
func NewReddit(baseURL string, timeout time.Duration) *Reddit {
	if baseURL == "" {
		baseURL = redditBaseURL
	}
	return &Reddit{baseURL: baseURL, client: newHTTPClient(timeout)}
}

func (r *Reddit) Kind() types.SourceKind { return types.SourceReddit }

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID          string  `json:"id"`
				Title       string  `json:"title"`
				Selftext    string  `json:"selftext"`
				Author      string  `json:"author"`
				Subreddit   string  `json:"subreddit"`
				Permalink   string  `json:"permalink"`
				CreatedUTC  float64 `json:"created_utc"`
				Ups         int     `json:"ups"`
				NumComments int     `json:"num_comments"`
				Thumbnail   string  `json:"thumbnail"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Fetch searches reddit for the query, scoped to finance-adjacent discussion.
func (r *Reddit) Fetch(ctx context.Context, query string) ([]types.RawItem, error) {
	// Query shaping: bias the search toward market discussion.
	shaped := query + " (stocks OR investing OR markets)"

	q := url.Values{}
	q.Set("q", shaped)
	q.Set("sort", "new")
	q.Set("limit", "25")
	endpoint := fmt.Sprintf("%s/search.json?%s", r.baseURL, q.Encode())

	header := http.Header{}
	header.Set("User-Agent", redditUserAgent)

	var listing redditListing
	if err := fetchJSON(ctx, r.client, endpoint, header, &listing); err != nil {
		return nil, fmt.Errorf("reddit: %w", err)
	}

	items := make([]types.RawItem, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Title == "" {
			continue
		}

		imageURL := ""
		if post.Thumbnail != "" && post.Thumbnail != "self" && post.Thumbnail != "default" {
			imageURL = post.Thumbnail
		}

		items = append(items, types.RawItem{
			ID:              "reddit-" + post.ID,
			Title:           post.Title,
			URL:             r.baseURL + post.Permalink,
			SourceKind:      types.SourceReddit,
			SourceName:      "r/" + post.Subreddit,
			Content:         post.Selftext,
			Author:          post.Author,
			Timestamp:       int64(post.CreatedUTC) * 1000,
			EngagementScore: post.Ups,
			Upvotes:         post.Ups,
			Comments:        post.NumComments,
			Category:        post.Subreddit,
			ImageURL:        imageURL,
		})
	}

	return items, nil
}
