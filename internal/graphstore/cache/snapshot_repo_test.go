package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
)

func newTestRepo(t *testing.T) (*SnapshotRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSnapshotRepository(client, time.Minute), mr
}

func sampleGraph() *domain.RawGraph {
	return &domain.RawGraph{
		Nodes: []domain.RawNode{
			{ID: "29AAACX1234F1ZQ", Label: "Taxpayer", Properties: map[string]any{"legal_name": "Xenon Traders"}},
			{ID: "INV-1", Label: "Invoice"},
		},
		Edges: []domain.RawEdge{
			{ID: "6d6aeb80307c", Source: "INV-1", Target: "29AAACX1234F1ZQ", Label: "ISSUED_BY"},
		},
		NodeCount: 2,
		EdgeCount: 1,
	}
}

func TestExportRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetExport(ctx, 40)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	require.NoError(t, repo.SetExport(ctx, 40, sampleGraph()))

	got, err := repo.GetExport(ctx, 40)
	require.NoError(t, err)
	assert.Equal(t, sampleGraph(), got)

	_, err = repo.GetExport(ctx, 100)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "limit is part of the key")
}

func TestSubgraphRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSubgraph(ctx, "29AAACX1234F1ZQ", 1, sampleGraph()))

	got, err := repo.GetSubgraph(ctx, "29AAACX1234F1ZQ", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NodeCount)

	_, err = repo.GetSubgraph(ctx, "29AAACX1234F1ZQ", 2)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "depth is part of the key")
}

func TestSnapshotExpiry(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSubgraph(ctx, "29AAACX1234F1ZQ", 1, sampleGraph()))
	mr.FastForward(2 * time.Minute)

	_, err := repo.GetSubgraph(ctx, "29AAACX1234F1ZQ", 1)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestInvalidate(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetExport(ctx, 40, sampleGraph()))
	require.NoError(t, repo.SetSubgraph(ctx, "29AAACX1234F1ZQ", 1, sampleGraph()))
	require.NoError(t, repo.SetSubgraph(ctx, "27BBBCY5678G2ZR", 2, sampleGraph()))
	mr.Set("unrelated:key", "kept")

	require.NoError(t, repo.Invalidate(ctx))

	_, err := repo.GetExport(ctx, 40)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	_, err = repo.GetSubgraph(ctx, "29AAACX1234F1ZQ", 1)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	kept, err := mr.Get("unrelated:key")
	require.NoError(t, err)
	assert.Equal(t, "kept", kept, "invalidation only touches snapshot keys")
}

func TestCorruptSnapshot(t *testing.T) {
	repo, mr := newTestRepo(t)

	require.NoError(t, mr.Set("graph:export:40", "{not json"))

	_, err := repo.GetExport(context.Background(), 40)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestPing(t *testing.T) {
	repo, mr := newTestRepo(t)
	assert.NoError(t, repo.Ping(context.Background()))

	mr.Close()
	assert.Error(t, repo.Ping(context.Background()))
}
