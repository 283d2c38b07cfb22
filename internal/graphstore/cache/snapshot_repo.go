// Package cache provides a read-through Redis cache for graph query
// responses, so repeated overview loads and drill round-trips skip the
// database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
)

const (
	exportKeyPrefix   = "graph:export:"   // graph:export:{limit}
	subgraphKeyPrefix = "graph:subgraph:" // graph:subgraph:{gstin}:{depth}
	defaultTTL        = 5 * time.Minute
)

// SnapshotRepository stores serialized graph snapshots with a TTL.
type SnapshotRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotRepository(client *redis.Client, ttl time.Duration) *SnapshotRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SnapshotRepository{client: client, ttl: ttl}
}

// GetExport returns the cached overview snapshot for a node limit.
func (r *SnapshotRepository) GetExport(ctx context.Context, limit int) (*domain.RawGraph, error) {
	return r.get(ctx, exportKey(limit))
}

// SetExport caches an overview snapshot.
func (r *SnapshotRepository) SetExport(ctx context.Context, limit int, g *domain.RawGraph) error {
	return r.set(ctx, exportKey(limit), g)
}

// GetSubgraph returns the cached subgraph for a GSTIN/depth pair.
func (r *SnapshotRepository) GetSubgraph(ctx context.Context, gstin string, depth int) (*domain.RawGraph, error) {
	return r.get(ctx, subgraphKey(gstin, depth))
}

// SetSubgraph caches a subgraph snapshot.
func (r *SnapshotRepository) SetSubgraph(ctx context.Context, gstin string, depth int, g *domain.RawGraph) error {
	return r.set(ctx, subgraphKey(gstin, depth), g)
}

// Invalidate drops every cached snapshot. Called when the underlying graph
// changes (e.g. after an ingest run).
func (r *SnapshotRepository) Invalidate(ctx context.Context) error {
	for _, prefix := range []string{exportKeyPrefix, subgraphKeyPrefix} {
		iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
				return fmt.Errorf("failed to delete snapshot key: %w", err)
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to scan snapshot keys: %w", err)
		}
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *SnapshotRepository) get(ctx context.Context, key string) (*domain.RawGraph, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var g domain.RawGraph
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &g, nil
}

func (r *SnapshotRepository) set(ctx context.Context, key string, g *domain.RawGraph) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}
	return nil
}

func exportKey(limit int) string {
	return exportKeyPrefix + strconv.Itoa(limit)
}

func subgraphKey(gstin string, depth int) string {
	return subgraphKeyPrefix + gstin + ":" + strconv.Itoa(depth)
}
