package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tradewire/config"
	"tradewire/pipeline"
	"tradewire/sources"
	"tradewire/types"
)

type stubAdapter struct {
	kind  types.SourceKind
	items []types.RawItem
}

func (s *stubAdapter) Kind() types.SourceKind { return s.kind }

func (s *stubAdapter) Fetch(_ context.Context, _ string) ([]types.RawItem, error) {
	return s.items, nil
}

func newTestRouter(adapters ...sources.Adapter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	p := pipeline.New(pipeline.Options{
		Adapters:   adapters,
		Heuristics: config.DefaultHeuristics(),
	})
	return NewRouter(p, Components{})
}

func TestAggregateEndpoint(t *testing.T) {
	router := newTestRouter(&stubAdapter{
		kind: types.SourceAPI,
		items: []types.RawItem{{
			ID:        "a1",
			Title:     "Gold rallies on weak dollar",
			Timestamp: time.Now().UnixMilli(),
		}},
	})

	body := strings.NewReader(`{"query": "gold"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/aggregate", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Count int                   `json:"count"`
		Items []*types.EnrichedItem `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Count != 1 || len(resp.Items) != 1 {
		t.Fatalf("got %d items, want 1", resp.Count)
	}
	if resp.Items[0].ID != "a1" {
		t.Errorf("item ID = %q, want a1", resp.Items[0].ID)
	}
}

func TestAggregateEndpointRejectsEmptyQuery(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/aggregate", strings.NewReader(`{"query": "  "}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAggregateEndpointRejectsUnknownSource(t *testing.T) {
	router := newTestRouter()

	body := strings.NewReader(`{"query": "gold", "sources": ["telegraph"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/aggregate", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestTranslateEndpoint(t *testing.T) {
	router := newTestRouter()

	payload := map[string]interface{}{
		"target_lang": "es",
		"items": []*types.EnrichedItem{{
			RawItem: types.RawItem{ID: "a1", Title: "Stocks rise on earnings"},
		}},
	}
	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(string(raw)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Translated int                   `json:"translated"`
		Items      []*types.EnrichedItem `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Translated != 1 {
		t.Errorf("translated = %d, want 1", resp.Translated)
	}
	if len(resp.Items) == 1 && resp.Items[0].TranslatedTitle == "" {
		t.Errorf("expected a translated title")
	}
}

func TestTranslateEndpointRequiresTargetLang(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(`{"items": []}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("body missing status: %s", w.Body.String())
	}
}
