package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tradewire/types"
)

func TestRedditFetchMapsFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			http.NotFound(w, r)
			return
		}
		if q := r.URL.Query().Get("q"); q == "" {
			t.Errorf("expected shaped query, got empty")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"children":[
			{"data":{"id":"abc123","title":"BTC rallies hard","selftext":"bulls in control","author":"trader1","subreddit":"CryptoCurrency","permalink":"/r/CryptoCurrency/abc123","created_utc":1700000000,"ups":250,"num_comments":42,"thumbnail":"self"}},
			{"data":{"id":"def456","title":"","selftext":"no title, dropped","author":"x","subreddit":"stocks","permalink":"/r/stocks/def456","created_utc":1700000100,"ups":1,"num_comments":0}}
		]}}`))
	}))
	defer server.Close()

	adapter := NewReddit(server.URL, 5*time.Second)
	items, err := adapter.Fetch(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item (untitled post dropped), got %d", len(items))
	}

	item := items[0]
	if item.ID != "reddit-abc123" {
		t.Errorf("ID = %q, want reddit-abc123", item.ID)
	}
	if item.SourceKind != types.SourceReddit {
		t.Errorf("SourceKind = %q, want reddit", item.SourceKind)
	}
	if item.Upvotes != 250 || item.EngagementScore != 250 {
		t.Errorf("upvotes/engagement = %d/%d, want 250/250", item.Upvotes, item.EngagementScore)
	}
	if item.Timestamp != 1700000000*1000 {
		t.Errorf("Timestamp = %d, want epoch millis", item.Timestamp)
	}
	if item.Category != "CryptoCurrency" {
		t.Errorf("Category = %q, want CryptoCurrency", item.Category)
	}
	if item.ImageURL != "" {
		t.Errorf("self thumbnail should not become an image URL, got %q", item.ImageURL)
	}
}

func TestRedditFetchUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	adapter := NewReddit(server.URL, 5*time.Second)
	_, err := adapter.Fetch(context.Background(), "gold")
	if !errors.Is(err, types.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestRedditFetchMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	adapter := NewReddit(server.URL, 5*time.Second)
	_, err := adapter.Fetch(context.Background(), "gold")
	if !errors.Is(err, types.ErrSourceMalformed) {
		t.Fatalf("expected ErrSourceMalformed, got %v", err)
	}
}

func TestNewsAPIFetchMapsFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","articles":[
			{"source":{"name":"Reuters"},"author":"Jane Doe","title":"Gold surges to record high","description":"Gold hit a record","url":"https://example.com/gold","urlToImage":"https://example.com/gold.jpg","publishedAt":"2026-08-20T10:00:00Z","content":"Gold prices surged..."}
		]}`))
	}))
	defer server.Close()

	adapter := NewNewsAPI(server.URL, "test-key", 5*time.Second)
	items, err := adapter.Fetch(context.Background(), "gold")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.SourceKind != types.SourceAPI {
		t.Errorf("SourceKind = %q, want api", item.SourceKind)
	}
	if item.SourceName != "Reuters" {
		t.Errorf("SourceName = %q, want Reuters", item.SourceName)
	}
	want := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC).UnixMilli()
	if item.Timestamp != want {
		t.Errorf("Timestamp = %d, want %d", item.Timestamp, want)
	}
}

func TestNewsAPIBadStatusIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","articles":[]}`))
	}))
	defer server.Close()

	adapter := NewNewsAPI(server.URL, "", 5*time.Second)
	_, err := adapter.Fetch(context.Background(), "gold")
	if !errors.Is(err, types.ErrSourceMalformed) {
		t.Fatalf("expected ErrSourceMalformed, got %v", err)
	}
}

func TestCryptoPanicFetchMapsFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[
			{"id":991,"title":"ETH breaks resistance","url":"https://example.com/eth","published_at":"2026-08-20T09:30:00Z","source":{"title":"CoinDesk"},"votes":{"positive":12,"important":3,"comments":5},"currencies":[{"code":"ETH"}]}
		]}`))
	}))
	defer server.Close()

	adapter := NewCryptoPanic(server.URL, "", 5*time.Second)
	items, err := adapter.Fetch(context.Background(), "eth")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.ID != "crypto-991" {
		t.Errorf("ID = %q, want crypto-991", item.ID)
	}
	if item.EngagementScore != 15 {
		t.Errorf("EngagementScore = %d, want positive+important=15", item.EngagementScore)
	}
	if item.Category != "ETH" {
		t.Errorf("Category = %q, want ETH", item.Category)
	}
}

func TestSocialFetchStripsHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"statuses":[
			{"id":"777","content":"<p>Markets look <b>strong</b> today</p>","url":"https://social.example/777","created_at":"2026-08-20T08:00:00Z","account":{"acct":"trader@social.example","display_name":"Trader"},"favourites_count":7,"reblogs_count":2,"replies_count":1}
		]}`))
	}))
	defer server.Close()

	adapter := NewSocial(server.URL, "", 5*time.Second)
	items, err := adapter.Fetch(context.Background(), "markets")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Content != "Markets look strong today" {
		t.Errorf("Content = %q, want HTML stripped", item.Content)
	}
	if item.EngagementScore != 9 {
		t.Errorf("EngagementScore = %d, want favourites+reblogs=9", item.EngagementScore)
	}
	if item.SourceKind != types.SourceSocial {
		t.Errorf("SourceKind = %q, want social", item.SourceKind)
	}
}
