// Package adapter normalizes raw graph-service payloads into the canonical
// node/edge model. It is a pure transformation: it never errors, and a
// malformed or empty payload yields an empty graph so downstream stages never
// branch on adapter failure.
package adapter

import (
	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
)

// Normalize maps a raw payload 1:1 to canonical nodes and edges. Edge
// endpoints are not validated here; dangling edges are tolerated by the
// layout engine and the renderer.
func Normalize(raw *domain.RawGraph) *domain.Graph {
	g := &domain.Graph{
		Nodes: []domain.Node{},
		Edges: []domain.Edge{},
	}
	if raw == nil {
		return g
	}

	for _, rn := range raw.Nodes {
		t := domain.NodeType(rn.Label)
		g.Nodes = append(g.Nodes, domain.Node{
			ID:         rn.ID,
			Type:       t,
			Label:      domain.DisplayLabel(t, rn.ID, rn.Properties),
			RiskLevel:  parseRisk(rn.RiskLevel),
			Properties: rn.Properties,
		})
	}

	for _, re := range raw.Edges {
		g.Edges = append(g.Edges, domain.Edge{
			ID:           re.ID,
			Source:       re.Source,
			Target:       re.Target,
			RelationType: re.Label,
			RiskLevel:    parseRisk(re.RiskLevel),
			Properties:   re.Properties,
		})
	}

	g.NodeCount = len(g.Nodes)
	g.EdgeCount = len(g.Edges)
	return g
}

// parseRisk accepts only the known severities; anything else is treated as
// unset rather than propagated.
func parseRisk(s string) domain.RiskLevel {
	switch domain.RiskLevel(s) {
	case domain.RiskLow, domain.RiskMedium, domain.RiskHigh:
		return domain.RiskLevel(s)
	}
	return ""
}
