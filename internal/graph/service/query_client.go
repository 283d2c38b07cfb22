// Package service hosts the HTTP client for the upstream graph query
// collaborator.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
)

const defaultTimeout = 15 * time.Second

// QueryClient talks to the graph query service. It performs no retries:
// failures surface to the traversal controller, which renders them as inline
// banners.
type QueryClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewQueryClient creates a client for the given base URL
// (e.g. "http://localhost:8080/api/v1").
func NewQueryClient(baseURL string) *QueryClient {
	return &QueryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		// Rapid drill/depth clicks fan out as individual queries; pace them
		// so a click storm cannot hammer the store.
		limiter: rate.NewLimiter(rate.Limit(20), 20),
	}
}

// FetchOverview fetches the breadth-capped full-graph snapshot.
func (c *QueryClient) FetchOverview(ctx context.Context, limit int) (*domain.RawGraph, error) {
	u := c.baseURL + "/graph/export?limit=" + strconv.Itoa(limit)
	return c.getGraph(ctx, "fetch_overview", u)
}

// FetchSubgraph fetches all entities reachable within depth hops of a GSTIN.
func (c *QueryClient) FetchSubgraph(ctx context.Context, gstin string, depth int) (*domain.RawGraph, error) {
	u := c.baseURL + "/graph/subgraph/" + url.PathEscape(gstin) + "?depth=" + strconv.Itoa(depth)
	return c.getGraph(ctx, "fetch_subgraph", u)
}

func (c *QueryClient) getGraph(ctx context.Context, operation, reqURL string) (*domain.RawGraph, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var raw domain.RawGraph
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: decode JSON: %w", operation, err)
	}
	return &raw, nil
}

// statusError extracts the upstream failure detail when the body carries one,
// else falls back to a generic status message. A 404 means the entity does
// not exist in the graph and maps to domain.ErrNoResults so the traversal
// controller can keep the current graph on screen; other failures surface
// verbatim to the UI layer.
func statusError(resp *http.Response) error {
	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	detail := ""
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		detail = body.Detail
		if detail == "" {
			detail = body.Error
		}
	}

	if resp.StatusCode == http.StatusNotFound {
		if detail != "" {
			return fmt.Errorf("%w: %s", domain.ErrNoResults, detail)
		}
		return domain.ErrNoResults
	}
	if detail != "" {
		return fmt.Errorf("%s", detail)
	}
	return fmt.Errorf("graph service returned status %d", resp.StatusCode)
}
