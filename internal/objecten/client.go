// Package objecten fetches external object documents referenced by
// zaakobjecten. The brondatum resolver reads date fields from them.
package objecten

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"zaakregister/pkg/domainerrors"
)

// Client fetches an external object as a flat JSON document.
type Client interface {
	Fetch(ctx context.Context, url string) (map[string]any, error)
}

// HTTPClient fetches objects over HTTP.
type HTTPClient struct {
	client *http.Client
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

func (c *HTTPClient) Fetch(ctx context.Context, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build object request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.New(domainerrors.CodeDependencyUnavailable,
			fmt.Sprintf("object registry returned status %d for %s", resp.StatusCode, url))
	}

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode object document: %w", err)
	}
	return doc, nil
}

// StaticClient serves objects from memory in tests.
type StaticClient struct {
	Objects map[string]map[string]any
}

func (c *StaticClient) Fetch(_ context.Context, url string) (map[string]any, error) {
	doc, ok := c.Objects[url]
	if !ok {
		return nil, domainerrors.New(domainerrors.CodeDependencyUnavailable, "object not found: "+url)
	}
	return doc, nil
}
