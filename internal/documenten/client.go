// Package documenten probes the external documenten registry for the
// document state the closure and archiving rules depend on.
package documenten

//go:generate mockgen -source=client.go -destination=mocks/mocks.go -package=mocks Client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"zaakregister/pkg/domainerrors"
)

// StatusGearchiveerd is the document status required before a zaak may move
// to archiefstatus gearchiveerd.
const StatusGearchiveerd = "gearchiveerd"

// Document is the registry state of a single informatieobject.
type Document struct {
	URL                   string `json:"url"`
	Locked                bool   `json:"locked"`
	IndicatieGebruiksrecht *bool `json:"indicatieGebruiksrecht"`
	Status                string `json:"status"`
}

// Client probes documents by URL.
type Client interface {
	Probe(ctx context.Context, url string) (*Document, error)
}

// HTTPClient probes the documenten registry over HTTP.
type HTTPClient struct {
	client *http.Client
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

func (c *HTTPClient) Probe(ctx context.Context, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build document request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.New(domainerrors.CodeDependencyUnavailable,
			fmt.Sprintf("documenten registry returned status %d for %s", resp.StatusCode, url))
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// StaticClient serves documents from memory in tests.
type StaticClient struct {
	Documents map[string]*Document
}

func (c *StaticClient) Probe(_ context.Context, url string) (*Document, error) {
	doc, ok := c.Documents[url]
	if !ok {
		return nil, domainerrors.New(domainerrors.CodeDependencyUnavailable, "document not found: "+url)
	}
	out := *doc
	return &out, nil
}
