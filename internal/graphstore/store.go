package graphstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
)

// Store answers graph queries against the knowledge graph.
type Store struct {
	runner Runner
}

func NewStore(runner Runner) *Store {
	return &Store{runner: runner}
}

// Stats summarises the whole graph: node counts per label and relationship
// counts per type.
type Stats struct {
	Nodes              map[string]int64 `json:"nodes"`
	Relationships      map[string]int64 `json:"relationships"`
	TotalNodes         int64            `json:"total_nodes"`
	TotalRelationships int64            `json:"total_relationships"`
}

// Subgraph returns every entity reachable from the GSTIN within depth hops
// (1 = invoice ring with returns and payments, 2 = buyer counterparties too).
// The GSTIN is uppercased before querying. An unknown GSTIN yields
// domain.ErrEntityNotFound.
func (s *Store) Subgraph(ctx context.Context, gstin string, depth int) (*domain.RawGraph, error) {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin == "" {
		return nil, domain.ErrEmptyEntityKey
	}
	if depth != 1 && depth != 2 {
		return nil, domain.ErrInvalidDepth
	}

	query := subgraphDepth1Query
	if depth == 2 {
		query = subgraphDepth2Query
	}

	result, err := s.runner.Run(ctx, query, map[string]any{"gstin": gstin})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, fmt.Errorf("%w: GSTIN %s", domain.ErrEntityNotFound, gstin)
	}

	row := result.Records[0]
	b := newBuilder()

	// Root taxpayer.
	if v, ok := row.Get("t"); ok {
		if props, ok := asNode(v); ok {
			b.addNode(gstin, string(domain.TypeTaxpayer), props)
		}
	}

	invoices := collected(row, "invoices")
	gstr1s := collected(row, "gstr1s")
	gstr2bs := collected(row, "gstr2bs")
	gstr3bs := collected(row, "gstr3bs")
	payments := collected(row, "payments")

	for _, inv := range invoices {
		iid := strProp(inv, "invoice_id")
		if iid == "" {
			continue
		}
		b.addNode(iid, string(domain.TypeInvoice), inv)
		b.addEdge(iid, gstin, domain.RelIssuedBy)

		for _, g1 := range gstr1s {
			if rid := strProp(g1, "return_id"); rid != "" {
				b.addNode(rid, string(domain.TypeGSTR1), g1)
				b.addEdge(iid, rid, domain.RelReportedIn)
			}
		}
		for _, g2b := range gstr2bs {
			if rid := strProp(g2b, "return_id"); rid != "" {
				b.addNode(rid, string(domain.TypeGSTR2B), g2b)
				b.addEdge(iid, rid, domain.RelVisibleIn)
			}
		}
		for _, g3b := range gstr3bs {
			if rid := strProp(g3b, "return_id"); rid != "" {
				b.addNode(rid, string(domain.TypeGSTR3B), g3b)
				b.addEdge(iid, rid, domain.RelDeclaredIn)
			}
		}
		for _, pay := range payments {
			if pid := strProp(pay, "payment_id"); pid != "" {
				b.addNode(pid, string(domain.TypeTaxPayment), pay)
				b.addEdge(iid, pid, domain.RelPaidVia)
			}
		}
	}

	// Buyer counterparties (depth 2 only).
	if v, ok := row.Get("buyers"); ok {
		for _, buyer := range nodeList(v) {
			bid := strProp(buyer, "gstin")
			if bid == "" || bid == gstin {
				continue
			}
			b.addNode(bid, string(domain.TypeTaxpayer), buyer)
			for _, inv := range invoices {
				if strProp(inv, "buyer_gstin") == bid {
					if iid := strProp(inv, "invoice_id"); iid != "" {
						b.addEdge(iid, bid, domain.RelBuyer)
					}
				}
			}
		}
	}

	return b.graph(), nil
}

// Export returns a breadth-capped snapshot of the whole graph, limited to
// limit nodes with edges restricted to the included endpoints.
func (s *Store) Export(ctx context.Context, limit int) (*domain.RawGraph, error) {
	if limit <= 0 {
		limit = 40
	}

	nodesRes, err := s.runner.Run(ctx, exportNodesQuery, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}

	b := newBuilder()
	for _, rec := range nodesRes.Records {
		label := recString(rec, "label")
		props := recProps(rec, "props")
		if id := nodeIDFor(label, props); id != "" {
			b.addNode(id, label, props)
		}
	}

	edgesRes, err := s.runner.Run(ctx, exportEdgesQuery, nil)
	if err != nil {
		return nil, err
	}
	for _, rec := range edgesRes.Records {
		src := nodeIDFor(recString(rec, "src_label"), recProps(rec, "src_props"))
		dst := nodeIDFor(recString(rec, "dst_label"), recProps(rec, "dst_props"))
		if src == "" || dst == "" || !b.seenNodes[src] || !b.seenNodes[dst] {
			continue
		}
		b.addEdge(src, dst, recString(rec, "rel"))
	}

	return b.graph(), nil
}

// GraphStats counts nodes per label and relationships per type.
func (s *Store) GraphStats(ctx context.Context) (*Stats, error) {
	nodeRes, err := s.runner.Run(ctx, statsNodesQuery, nil)
	if err != nil {
		return nil, err
	}
	relRes, err := s.runner.Run(ctx, statsRelsQuery, nil)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Nodes:         map[string]int64{},
		Relationships: map[string]int64{},
	}
	for _, rec := range nodeRes.Records {
		label := recString(rec, "label")
		if label == "" {
			continue
		}
		cnt := recInt(rec, "cnt")
		stats.Nodes[label] = cnt
		stats.TotalNodes += cnt
	}
	for _, rec := range relRes.Records {
		rel := recString(rec, "rel")
		if rel == "" {
			continue
		}
		cnt := recInt(rec, "cnt")
		stats.Relationships[rel] = cnt
		stats.TotalRelationships += cnt
	}
	return stats, nil
}

func collected(rec *neo4j.Record, key string) []map[string]any {
	v, ok := rec.Get(key)
	if !ok {
		return nil
	}
	return nodeList(v)
}

func recString(rec *neo4j.Record, key string) string {
	if v, ok := rec.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func recProps(rec *neo4j.Record, key string) map[string]any {
	if v, ok := rec.Get(key); ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return nil
}

func recInt(rec *neo4j.Record, key string) int64 {
	if v, ok := rec.Get(key); ok {
		if n, ok := v.(int64); ok {
			return n
		}
	}
	return 0
}
