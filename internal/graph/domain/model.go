package domain

// NodeType tags a graph node with its GST entity kind. The type drives
// cluster seeding in the layout engine, node coloring in the renderer, and
// drill-ability in the explorer.
type NodeType string

const (
	TypeTaxpayer   NodeType = "Taxpayer"
	TypeInvoice    NodeType = "Invoice"
	TypeGSTR1      NodeType = "GSTR1"
	TypeGSTR2B     NodeType = "GSTR2B"
	TypeGSTR3B     NodeType = "GSTR3B"
	TypeTaxPayment NodeType = "TaxPayment"
)

// RiskLevel mirrors the risk annotation carried by the graph store.
// RiskHigh is the alert severity: it overrides the type color on nodes and
// renders edges dashed.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Relationship types present in the knowledge graph.
const (
	RelIssuedBy   = "ISSUED_BY"
	RelReportedIn = "REPORTED_IN"
	RelVisibleIn  = "VISIBLE_IN"
	RelDeclaredIn = "DECLARED_IN"
	RelPaidVia    = "PAID_VIA"
	RelBuyer      = "BUYER"
)

// Node is the canonical in-memory entity consumed by the layout engine and
// the renderer. Label is the resolved display string, not the type tag.
type Node struct {
	ID         string         `json:"id"`
	Type       NodeType       `json:"type"`
	Label      string         `json:"label"`
	RiskLevel  RiskLevel      `json:"risk_level,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Edge is the canonical in-memory relationship. Source/Target reference node
// IDs and are allowed to dangle: layout and rendering skip an edge whose
// endpoint is not in the loaded node set.
type Edge struct {
	ID           string         `json:"id"`
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	RelationType string         `json:"relation_type"`
	RiskLevel    RiskLevel      `json:"risk_level,omitempty"`
	Properties   map[string]any `json:"properties,omitempty"`
}

// Graph is a normalized node/edge set.
type Graph struct {
	Nodes     []Node `json:"nodes"`
	Edges     []Edge `json:"edges"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

// Position is a 2-D canvas coordinate, owned exclusively by the layout
// engine. Consumers read positions; the only mutation path is re-running
// layout on new data.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RawNode matches the wire shape emitted by the graph query service, where
// the label field carries the node type.
type RawNode struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
	RiskLevel  string         `json:"risk_level,omitempty"`
}

// RawEdge matches the wire shape emitted by the graph query service.
type RawEdge struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
	RiskLevel  string         `json:"risk_level,omitempty"`
}

// RawGraph is the Cytoscape-compatible payload returned by the overview and
// subgraph queries.
type RawGraph struct {
	Nodes     []RawNode `json:"nodes"`
	Edges     []RawEdge `json:"edges"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
}

// IsDrillable reports whether clicking a node of this type re-roots the
// subgraph traversal. Only taxpayers are drillable.
func (t NodeType) IsDrillable() bool {
	return t == TypeTaxpayer
}

// labelProperty maps each node type to the property preferred for display.
var labelProperty = map[NodeType]string{
	TypeTaxpayer:   "legal_name",
	TypeInvoice:    "invoice_number",
	TypeGSTR1:      "period",
	TypeGSTR2B:     "period",
	TypeGSTR3B:     "period",
	TypeTaxPayment: "payment_mode",
}

// DisplayLabel resolves the human-readable label for a node: the type's
// preferred property when present and non-empty, else the node id.
func DisplayLabel(t NodeType, id string, props map[string]any) string {
	if prop, ok := labelProperty[t]; ok && props != nil {
		if v, ok := props[prop]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return id
}
