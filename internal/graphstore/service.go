package graphstore

import (
	"context"
	"log"
	"strings"

	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
	"github.com/gstlens/gst-graph-backend/internal/graphstore/cache"
)

// Service fronts the store with an optional read-through snapshot cache.
// Cache failures are logged and fall through to the database: the cache is
// an accelerator, never a correctness dependency.
type Service struct {
	store     *Store
	snapshots *cache.SnapshotRepository
}

func NewService(store *Store, snapshots *cache.SnapshotRepository) *Service {
	return &Service{store: store, snapshots: snapshots}
}

// Export returns the breadth-capped overview snapshot, from cache when warm.
func (s *Service) Export(ctx context.Context, limit int) (*domain.RawGraph, error) {
	if s.snapshots != nil {
		if g, err := s.snapshots.GetExport(ctx, limit); err == nil {
			return g, nil
		} else if err != domain.ErrSnapshotNotFound {
			log.Printf("[warn] operation=export_cache_get error=%v", err)
		}
	}

	g, err := s.store.Export(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.snapshots != nil {
		if err := s.snapshots.SetExport(ctx, limit, g); err != nil {
			log.Printf("[warn] operation=export_cache_set error=%v", err)
		}
	}
	return g, nil
}

// Subgraph returns the depth-bounded subgraph for a GSTIN, from cache when
// warm. Not-found responses are not cached: a freshly ingested taxpayer must
// become visible immediately.
func (s *Service) Subgraph(ctx context.Context, gstin string, depth int) (*domain.RawGraph, error) {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if s.snapshots != nil {
		if g, err := s.snapshots.GetSubgraph(ctx, gstin, depth); err == nil {
			return g, nil
		} else if err != domain.ErrSnapshotNotFound {
			log.Printf("[warn] operation=subgraph_cache_get error=%v", err)
		}
	}

	g, err := s.store.Subgraph(ctx, gstin, depth)
	if err != nil {
		return nil, err
	}

	if s.snapshots != nil {
		if err := s.snapshots.SetSubgraph(ctx, gstin, depth, g); err != nil {
			log.Printf("[warn] operation=subgraph_cache_set error=%v", err)
		}
	}
	return g, nil
}

// GraphStats proxies the stats query; stats are cheap and always live.
func (s *Service) GraphStats(ctx context.Context) (*Stats, error) {
	return s.store.GraphStats(ctx)
}
