package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
)

const (
	testWidth  = 900.0
	testHeight = 600.0
)

func testEngine() *Engine {
	return NewEngine(DefaultConfig(testWidth, testHeight))
}

func makeNodes(specs ...[2]string) []domain.Node {
	nodes := make([]domain.Node, 0, len(specs))
	for _, s := range specs {
		nodes = append(nodes, domain.Node{ID: s[0], Type: domain.NodeType(s[1])})
	}
	return nodes
}

func TestCompute_EmptyGraph(t *testing.T) {
	positions := testEngine().Compute(nil, nil)
	assert.Empty(t, positions)

	positions = testEngine().Compute([]domain.Node{}, []domain.Edge{})
	assert.Empty(t, positions)
}

func TestCompute_Deterministic(t *testing.T) {
	nodes := makeNodes(
		[2]string{"29AAACX1234F1ZQ", "Taxpayer"},
		[2]string{"27BBBCY5678G2ZR", "Taxpayer"},
		[2]string{"INV-001", "Invoice"},
		[2]string{"INV-002", "Invoice"},
		[2]string{"RET-GSTR1-042025", "GSTR1"},
		[2]string{"PAY-001", "TaxPayment"},
	)
	edges := []domain.Edge{
		{ID: "e1", Source: "INV-001", Target: "29AAACX1234F1ZQ", RelationType: domain.RelIssuedBy},
		{ID: "e2", Source: "INV-001", Target: "RET-GSTR1-042025", RelationType: domain.RelReportedIn},
		{ID: "e3", Source: "INV-002", Target: "PAY-001", RelationType: domain.RelPaidVia},
	}

	first := testEngine().Compute(nodes, edges)
	for i := 0; i < 5; i++ {
		again := testEngine().Compute(nodes, edges)
		assert.Equal(t, first, again, "identical input must yield identical output")
	}
}

func TestCompute_Containment(t *testing.T) {
	nodes := makeNodes(
		[2]string{"a", "Taxpayer"},
		[2]string{"b", "Taxpayer"},
		[2]string{"c", "Invoice"},
		[2]string{"d", "GSTR1"},
		[2]string{"e", "GSTR3B"},
		[2]string{"f", "TaxPayment"},
	)

	positions := testEngine().Compute(nodes, nil)
	require.Len(t, positions, len(nodes))

	for id, p := range positions {
		assert.GreaterOrEqual(t, p.X, 30.0, "node %s x below padding", id)
		assert.LessOrEqual(t, p.X, testWidth-30, "node %s x beyond canvas", id)
		assert.GreaterOrEqual(t, p.Y, 30.0, "node %s y below padding", id)
		assert.LessOrEqual(t, p.Y, testHeight-30, "node %s y beyond canvas", id)
	}
}

func TestCompute_DanglingEdgeTolerated(t *testing.T) {
	nodes := makeNodes(
		[2]string{"A", "Taxpayer"},
		[2]string{"B", "Invoice"},
	)
	edges := []domain.Edge{
		{ID: "ok", Source: "A", Target: "B", RelationType: domain.RelIssuedBy},
		{ID: "dangling", Source: "A", Target: "ZZZ", RelationType: domain.RelBuyer},
	}

	var positions map[string]domain.Position
	require.NotPanics(t, func() {
		positions = testEngine().Compute(nodes, edges)
	})

	require.Len(t, positions, 2)
	assert.Contains(t, positions, "A")
	assert.Contains(t, positions, "B")
	assert.NotContains(t, positions, "ZZZ")
}

func TestCompute_SingleTypeClusters(t *testing.T) {
	nodes := makeNodes(
		[2]string{"t1", "Taxpayer"},
		[2]string{"t2", "Taxpayer"},
		[2]string{"t3", "Taxpayer"},
		[2]string{"t4", "Taxpayer"},
	)

	var positions map[string]domain.Position
	require.NotPanics(t, func() {
		positions = testEngine().Compute(nodes, nil)
	}, "single type group must not divide by zero")
	require.Len(t, positions, 4)

	for _, p := range positions {
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
	}
}

func TestSeed_SameTypeSharesAnchorCircle(t *testing.T) {
	// Two payment records among other types must seed on the same anchor
	// circle: equidistant from their shared type anchor.
	nodes := makeNodes(
		[2]string{"t1", "Taxpayer"},
		[2]string{"i1", "Invoice"},
		[2]string{"p1", "TaxPayment"},
		[2]string{"p2", "TaxPayment"},
	)

	e := testEngine()
	xs := make([]float64, len(nodes))
	ys := make([]float64, len(nodes))
	e.seed(nodes, xs, ys)

	base := math.Min(testWidth, testHeight)
	anchorRadius := 0.30 * base
	memberRadius := 0.12 * base

	// TaxPayment is the third type seen (index 2 of 3).
	anchorAngle := 2 * math.Pi * 2 / 3
	anchorX := testWidth/2 + anchorRadius*math.Cos(anchorAngle)
	anchorY := testHeight/2 + anchorRadius*math.Sin(anchorAngle)

	for _, i := range []int{2, 3} {
		d := math.Hypot(xs[i]-anchorX, ys[i]-anchorY)
		assert.InDelta(t, memberRadius, d, 1e-9)
	}
}

func TestCompute_OverviewScenario(t *testing.T) {
	// 12 nodes: 6 taxpayers, 4 invoices, 2 payments; 10 edges, all resolvable.
	nodes := []domain.Node{}
	for _, id := range []string{"t1", "t2", "t3", "t4", "t5", "t6"} {
		nodes = append(nodes, domain.Node{ID: id, Type: domain.TypeTaxpayer})
	}
	for _, id := range []string{"i1", "i2", "i3", "i4"} {
		nodes = append(nodes, domain.Node{ID: id, Type: domain.TypeInvoice})
	}
	nodes = append(nodes,
		domain.Node{ID: "p1", Type: domain.TypeTaxPayment},
		domain.Node{ID: "p2", Type: domain.TypeTaxPayment},
	)

	edges := []domain.Edge{
		{ID: "e1", Source: "i1", Target: "t1", RelationType: domain.RelIssuedBy},
		{ID: "e2", Source: "i2", Target: "t2", RelationType: domain.RelIssuedBy},
		{ID: "e3", Source: "i3", Target: "t3", RelationType: domain.RelIssuedBy},
		{ID: "e4", Source: "i4", Target: "t4", RelationType: domain.RelIssuedBy},
		{ID: "e5", Source: "i1", Target: "t5", RelationType: domain.RelBuyer},
		{ID: "e6", Source: "i2", Target: "t6", RelationType: domain.RelBuyer},
		{ID: "e7", Source: "i1", Target: "p1", RelationType: domain.RelPaidVia},
		{ID: "e8", Source: "i2", Target: "p2", RelationType: domain.RelPaidVia},
		{ID: "e9", Source: "i3", Target: "p1", RelationType: domain.RelPaidVia},
		{ID: "e10", Source: "i4", Target: "p2", RelationType: domain.RelPaidVia},
	}

	positions := testEngine().Compute(nodes, edges)
	require.Len(t, positions, 12, "every node must receive exactly one position")

	for id, p := range positions {
		assert.GreaterOrEqual(t, p.X, 30.0, "node %s", id)
		assert.LessOrEqual(t, p.X, testWidth-30, "node %s", id)
		assert.GreaterOrEqual(t, p.Y, 30.0, "node %s", id)
		assert.LessOrEqual(t, p.Y, testHeight-30, "node %s", id)
	}
}

func TestCompute_DisconnectedClustersSeparate(t *testing.T) {
	// Two unlinked taxpayers should repel: final distance must exceed the
	// seed spacing inside one member circle.
	nodes := makeNodes(
		[2]string{"a", "Taxpayer"},
		[2]string{"b", "Taxpayer"},
	)

	positions := testEngine().Compute(nodes, nil)
	require.Len(t, positions, 2)

	a, b := positions["a"], positions["b"]
	dist := math.Hypot(a.X-b.X, a.Y-b.Y)
	memberDiameter := 2 * 0.12 * math.Min(testWidth, testHeight)
	assert.Greater(t, dist, memberDiameter)
}
