// Package selectielijst resolves selectielijst resources from the national
// reference service. Resolved resources are immutable in practice, so they
// are cached aggressively.
package selectielijst

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"zaakregister/pkg/domainerrors"
)

// Procestermijn classifies the retention horizon of a selectielijst resultaat.
type Procestermijn string

const (
	ProcestermijnNihil                   Procestermijn = "nihil"
	ProcestermijnIngeschatteBestaansduur Procestermijn = "ingeschatte_bestaansduur_procesobject"
)

// Resultaat is a selectielijstklasse: the retention classification record a
// resultaattype points at.
type Resultaat struct {
	URL           string        `json:"url"`
	ProcesType    string        `json:"procesType"`
	Procestermijn Procestermijn `json:"procestermijn"`
}

// Client resolves selectielijst resources by URL.
type Client interface {
	Resultaat(ctx context.Context, url string) (*Resultaat, error)
}

// HTTPClient fetches selectielijst resources over HTTP.
type HTTPClient struct {
	client *http.Client
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

func (c *HTTPClient) Resultaat(ctx context.Context, url string) (*Resultaat, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build selectielijst request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.New(domainerrors.CodeDependencyUnavailable,
			fmt.Sprintf("selectielijst returned status %d for %s", resp.StatusCode, url))
	}

	var result Resultaat
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode selectielijst resource: %w", err)
	}
	return &result, nil
}
