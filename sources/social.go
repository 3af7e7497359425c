package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"tradewire/types"
)

const socialBaseURL = "https://mastodon.social"

const socialTitleLength = 90

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// Social fetches public statuses from a Mastodon-compatible search API.
type Social struct {
	baseURL     string
	accessToken string
	client      *http.Client
}

// NewSocial creates the adapter. baseURL overrides the public host (tests).
func NewSocial(baseURL, accessToken string, timeout time.Duration) *Social {
	if baseURL == "" {
		baseURL = socialBaseURL
	}
	return &Social{baseURL: baseURL, accessToken: accessToken, client: newHTTPClient(timeout)}
}

func (s *Social) Kind() types.SourceKind { return types.SourceSocial }

type socialSearchResponse struct {
	Statuses []struct {
		ID        string `json:"id"`
		Content   string `json:"content"`
		URL       string `json:"url"`
		CreatedAt string `json:"created_at"`
		Account   struct {
			Acct        string `json:"acct"`
			DisplayName string `json:"display_name"`
		} `json:"account"`
		FavouritesCount int `json:"favourites_count"`
		ReblogsCount    int `json:"reblogs_count"`
		RepliesCount    int `json:"replies_count"`
	} `json:"statuses"`
}

// Fetch searches public statuses, shaping the query toward finance posts.
func (s *Social) Fetch(ctx context.Context, query string) ([]types.RawItem, error) {
	q := url.Values{}
	q.Set("q", query+" finance")
	q.Set("type", "statuses")
	q.Set("limit", "25")
	endpoint := fmt.Sprintf("%s/api/v2/search?%s", s.baseURL, q.Encode())

	header := http.Header{}
	if s.accessToken != "" {
		header.Set("Authorization", "Bearer "+s.accessToken)
	}

	var resp socialSearchResponse
	if err := fetchJSON(ctx, s.client, endpoint, header, &resp); err != nil {
		return nil, fmt.Errorf("social: %w", err)
	}

	items := make([]types.RawItem, 0, len(resp.Statuses))
	for _, status := range resp.Statuses {
		text := strings.TrimSpace(htmlTagRe.ReplaceAllString(status.Content, " "))
		text = strings.Join(strings.Fields(text), " ")
		if text == "" {
			continue
		}

		created, err := time.Parse(time.RFC3339, status.CreatedAt)
		if err != nil {
			created = time.Now()
		}

		title := text
		if runes := []rune(text); len(runes) > socialTitleLength {
			title = string(runes[:socialTitleLength]) + "…"
		}

		author := status.Account.DisplayName
		if author == "" {
			author = status.Account.Acct
		}

		items = append(items, types.RawItem{
			ID:              "social-" + status.ID,
			Title:           title,
			URL:             status.URL,
			SourceKind:      types.SourceSocial,
			SourceName:      status.Account.Acct,
			Content:         text,
			Author:          author,
			Timestamp:       created.UnixMilli(),
			EngagementScore: status.FavouritesCount + status.ReblogsCount,
			Upvotes:         status.FavouritesCount,
			Comments:        status.RepliesCount,
			Category:        "social",
		})
	}

	return items, nil
}
