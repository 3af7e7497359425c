package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tradewire/types"
)

const defaultTimeout = 10 * time.Second

// Adapter fetches raw items from one external content source. An adapter is
// an isolated failure domain: it returns either fully mapped items or an
// error, never partially constructed items, and has no side effects beyond
// the network call.
type Adapter interface {
	Kind() types.SourceKind
	Fetch(ctx context.Context, query string) ([]types.RawItem, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// fetchJSON performs a GET request and decodes the JSON response into out.
// Network and non-2xx failures map to ErrSourceUnavailable; decode failures
// map to ErrSourceMalformed.
func fetchJSON(ctx context.Context, client *http.Client, url string, header http.Header, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrSourceUnavailable, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d from %s", types.ErrSourceUnavailable, resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", types.ErrSourceMalformed, err)
	}
	return nil
}
