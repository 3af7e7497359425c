package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tradewire/types"
)

const newsAPIBaseURL = "https://newsapi.org"

// NewsAPI fetches articles from a NewsAPI-compatible endpoint (source kind "api").
type NewsAPI struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewNewsAPI creates the adapter. baseURL overrides the public host (tests).
func NewNewsAPI(baseURL, apiKey string, timeout time.Duration) *NewsAPI {
	if baseURL == "" {
		baseURL = newsAPIBaseURL
	}
	return &NewsAPI{baseURL: baseURL, apiKey: apiKey, client: newHTTPClient(timeout)}
}

func (n *NewsAPI) Kind() types.SourceKind { return types.SourceAPI }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

// Fetch searches the everything endpoint, restricted to business/finance language.
func (n *NewsAPI) Fetch(ctx context.Context, query string) ([]types.RawItem, error) {
	q := url.Values{}
	q.Set("q", query+" AND (market OR stocks OR economy)")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", "25")
	if n.apiKey != "" {
		q.Set("apiKey", n.apiKey)
	}
	endpoint := fmt.Sprintf("%s/v2/everything?%s", n.baseURL, q.Encode())

	var resp newsAPIResponse
	if err := fetchJSON(ctx, n.client, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi: %w: status %q", types.ErrSourceMalformed, resp.Status)
	}

	items := make([]types.RawItem, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" {
			continue
		}

		published, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			published = time.Now()
		}

		content := a.Content
		if content == "" {
			content = a.Description
		}

		items = append(items, types.RawItem{
			ID:         "api-" + types.GenerateID(a.URL+a.Title),
			Title:      a.Title,
			URL:        a.URL,
			SourceKind: types.SourceAPI,
			SourceName: a.Source.Name,
			Content:    content,
			Author:     a.Author,
			Timestamp:  published.UnixMilli(),
			Category:   "business",
			ImageURL:   a.URLToImage,
		})
	}

	return items, nil
}
