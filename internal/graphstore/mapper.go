package graphstore

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
)

// edgeID derives a stable 12-hex-character edge identifier from its
// endpoints and relationship type.
func edgeID(src, rel, tgt string) string {
	sum := md5.Sum([]byte(src + "|" + rel + "|" + tgt))
	return hex.EncodeToString(sum[:])[:12]
}

// builder accumulates a deduplicated raw graph while walking query rows.
type builder struct {
	nodes     []domain.RawNode
	edges     []domain.RawEdge
	seenNodes map[string]bool
	seenEdges map[string]bool
}

func newBuilder() *builder {
	return &builder{
		seenNodes: map[string]bool{},
		seenEdges: map[string]bool{},
	}
}

func (b *builder) addNode(id, label string, props map[string]any) {
	if id == "" || b.seenNodes[id] {
		return
	}
	b.seenNodes[id] = true
	b.nodes = append(b.nodes, domain.RawNode{
		ID:         id,
		Label:      label,
		Properties: props,
		RiskLevel:  strProp(props, "risk_level"),
	})
}

func (b *builder) addEdge(src, tgt, rel string) {
	if src == "" || tgt == "" {
		return
	}
	eid := edgeID(src, rel, tgt)
	if b.seenEdges[eid] {
		return
	}
	b.seenEdges[eid] = true
	b.edges = append(b.edges, domain.RawEdge{
		ID:     eid,
		Source: src,
		Target: tgt,
		Label:  rel,
	})
}

func (b *builder) graph() *domain.RawGraph {
	nodes := b.nodes
	if nodes == nil {
		nodes = []domain.RawNode{}
	}
	edges := b.edges
	if edges == nil {
		edges = []domain.RawEdge{}
	}
	return &domain.RawGraph{
		Nodes:     nodes,
		Edges:     edges,
		NodeCount: len(nodes),
		EdgeCount: len(edges),
	}
}

// asNode unwraps a driver value into its property map. Collected OPTIONAL
// MATCH lists contain nils for unmatched rows; those return ok=false.
func asNode(v any) (map[string]any, bool) {
	switch n := v.(type) {
	case dbtype.Node:
		return n.Props, true
	case *dbtype.Node:
		if n == nil {
			return nil, false
		}
		return n.Props, true
	}
	return nil, false
}

// nodeList unwraps a collect(...) value into property maps, dropping nils.
func nodeList(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, item := range items {
		if props, ok := asNode(item); ok {
			out = append(out, props)
		}
	}
	return out
}

func strProp(props map[string]any, key string) string {
	if props == nil {
		return ""
	}
	if v, ok := props[key]; ok {
		switch s := v.(type) {
		case string:
			return s
		case fmt.Stringer:
			return s.String()
		}
	}
	return ""
}

// nodeIDFor resolves the graph id of a node from its label and properties,
// mirroring the identity property of each entity kind.
func nodeIDFor(label string, props map[string]any) string {
	switch domain.NodeType(label) {
	case domain.TypeTaxpayer:
		return strProp(props, "gstin")
	case domain.TypeInvoice:
		return strProp(props, "invoice_id")
	case domain.TypeGSTR1, domain.TypeGSTR2B, domain.TypeGSTR3B:
		return strProp(props, "return_id")
	case domain.TypeTaxPayment:
		return strProp(props, "payment_id")
	}
	return ""
}
