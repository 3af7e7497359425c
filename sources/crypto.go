package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tradewire/types"
)

const cryptoPanicBaseURL = "https://cryptopanic.com"

// CryptoPanic fetches posts from a CryptoPanic-compatible API (source kind "crypto").
type CryptoPanic struct {
	baseURL   string
	authToken string
	client    *http.Client
}

// NewCryptoPanic creates the adapter. baseURL overrides the public host (tests).
func NewCryptoPanic(baseURL, authToken string, timeout time.Duration) *CryptoPanic {
	if baseURL == "" {
		baseURL = cryptoPanicBaseURL
	}
	return &CryptoPanic{baseURL: baseURL, authToken: authToken, client: newHTTPClient(timeout)}
}

func (c *CryptoPanic) Kind() types.SourceKind { return types.SourceCrypto }

type cryptoPanicResponse struct {
	Results []struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"published_at"`
		Source      struct {
			Title string `json:"title"`
		} `json:"source"`
		Votes struct {
			Positive  int `json:"positive"`
			Important int `json:"important"`
			Comments  int `json:"comments"`
		} `json:"votes"`
		Currencies []struct {
			Code string `json:"code"`
		} `json:"currencies"`
	} `json:"results"`
}

// Fetch searches crypto posts. The crypto source is already domain-scoped, so
// the query passes through unshaped.
func (c *CryptoPanic) Fetch(ctx context.Context, query string) ([]types.RawItem, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("public", "true")
	if c.authToken != "" {
		q.Set("auth_token", c.authToken)
	}
	endpoint := fmt.Sprintf("%s/api/v1/posts/?%s", c.baseURL, q.Encode())

	var resp cryptoPanicResponse
	if err := fetchJSON(ctx, c.client, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("cryptopanic: %w", err)
	}

	items := make([]types.RawItem, 0, len(resp.Results))
	for _, post := range resp.Results {
		if post.Title == "" {
			continue
		}

		published, err := time.Parse(time.RFC3339, post.PublishedAt)
		if err != nil {
			published = time.Now()
		}

		category := "crypto"
		if len(post.Currencies) > 0 {
			category = post.Currencies[0].Code
		}

		items = append(items, types.RawItem{
			ID:              fmt.Sprintf("crypto-%d", post.ID),
			Title:           post.Title,
			URL:             post.URL,
			SourceKind:      types.SourceCrypto,
			SourceName:      post.Source.Title,
			Timestamp:       published.UnixMilli(),
			EngagementScore: post.Votes.Positive + post.Votes.Important,
			Upvotes:         post.Votes.Positive,
			Comments:        post.Votes.Comments,
			Category:        category,
		})
	}

	return items, nil
}
