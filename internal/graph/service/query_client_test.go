package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
)

func TestFetchOverview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/graph/export", r.URL.Path)
		assert.Equal(t, "40", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"nodes": [{"id": "29AAACX1234F1ZQ", "label": "Taxpayer", "risk_level": "High"}],
			"edges": [],
			"node_count": 1,
			"edge_count": 0
		}`))
	}))
	defer srv.Close()

	client := NewQueryClient(srv.URL + "/api/v1")
	raw, err := client.FetchOverview(context.Background(), 40)
	require.NoError(t, err)
	require.Len(t, raw.Nodes, 1)
	assert.Equal(t, "29AAACX1234F1ZQ", raw.Nodes[0].ID)
	assert.Equal(t, "Taxpayer", raw.Nodes[0].Label)
	assert.Equal(t, "High", raw.Nodes[0].RiskLevel)
	assert.Equal(t, 1, raw.NodeCount)
}

func TestFetchSubgraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graph/subgraph/29AAACX1234F1ZQ", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("depth"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"nodes": [
				{"id": "29AAACX1234F1ZQ", "label": "Taxpayer"},
				{"id": "INV-1", "label": "Invoice"}
			],
			"edges": [
				{"id": "abc123def456", "source": "INV-1", "target": "29AAACX1234F1ZQ", "label": "ISSUED_BY"}
			],
			"node_count": 2,
			"edge_count": 1
		}`))
	}))
	defer srv.Close()

	client := NewQueryClient(srv.URL)
	raw, err := client.FetchSubgraph(context.Background(), "29AAACX1234F1ZQ", 2)
	require.NoError(t, err)
	assert.Len(t, raw.Nodes, 2)
	require.Len(t, raw.Edges, 1)
	assert.Equal(t, "ISSUED_BY", raw.Edges[0].Label)
}

func TestFetchSubgraph_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "GSTIN 29ZZZZZ9999Z9Z9 not found"}`))
	}))
	defer srv.Close()

	client := NewQueryClient(srv.URL)
	_, err := client.FetchSubgraph(context.Background(), "29ZZZZZ9999Z9Z9", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoResults, "404 means an unknown entity, not a transport failure")
	assert.Contains(t, err.Error(), "GSTIN 29ZZZZZ9999Z9Z9 not found")
}

func TestFetchSubgraph_NotFoundWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewQueryClient(srv.URL)
	_, err := client.FetchSubgraph(context.Background(), "29ZZZZZ9999Z9Z9", 1)
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestGetGraph_ErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "depth must be 1 or 2"}`))
	}))
	defer srv.Close()

	client := NewQueryClient(srv.URL)
	_, err := client.FetchSubgraph(context.Background(), "29AAACX1234F1ZQ", 1)
	require.Error(t, err)
	assert.Equal(t, "depth must be 1 or 2", err.Error())
}

func TestGetGraph_OpaqueErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewQueryClient(srv.URL)
	_, err := client.FetchOverview(context.Background(), 40)
	require.Error(t, err)
	assert.Equal(t, "graph service returned status 503", err.Error())
}

func TestGetGraph_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"nodes": [`))
	}))
	defer srv.Close()

	client := NewQueryClient(srv.URL)
	_, err := client.FetchOverview(context.Background(), 40)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode JSON")
}

func TestGetGraph_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewQueryClient("http://127.0.0.1:0")
	_, err := client.FetchOverview(ctx, 40)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
