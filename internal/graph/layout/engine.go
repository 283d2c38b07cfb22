// Package layout computes 2-D node positions with a deterministic
// force-directed simulation. Nodes are seeded in per-type clusters and then
// relaxed for a fixed number of iterations under pairwise repulsion and
// per-edge attraction, with coordinates clamped to the canvas after every
// iteration.
package layout

import (
	"math"

	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
)

// Config tunes the simulation. All values are plain numbers so callers can
// trade layout quality for speed without touching the algorithm.
type Config struct {
	Width      float64
	Height     float64
	Iterations int
	Repulsion  float64 // Coulomb numerator for pairwise repulsion
	Attraction float64 // spring multiplier applied per edge
	Padding    float64 // clamp margin from each canvas border
	// Seed circle radii, as fractions of min(Width, Height).
	ClusterRadius float64 // type anchors around the canvas center
	MemberRadius  float64 // group members around their type anchor
}

// DefaultConfig returns the reference tuning for overview-scale graphs
// (tens of nodes).
func DefaultConfig(width, height float64) Config {
	return Config{
		Width:         width,
		Height:        height,
		Iterations:    60,
		Repulsion:     2200,
		Attraction:    0.012,
		Padding:       30,
		ClusterRadius: 0.30,
		MemberRadius:  0.12,
	}
}

// Engine runs the simulation. It holds no per-graph state; Compute is safe
// to call repeatedly and concurrently.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 60
	}
	if cfg.Repulsion <= 0 {
		cfg.Repulsion = 2200
	}
	if cfg.Attraction <= 0 {
		cfg.Attraction = 0.012
	}
	if cfg.Padding <= 0 {
		cfg.Padding = 30
	}
	if cfg.ClusterRadius <= 0 {
		cfg.ClusterRadius = 0.30
	}
	if cfg.MemberRadius <= 0 {
		cfg.MemberRadius = 0.12
	}
	return &Engine{cfg: cfg}
}

// Compute returns a position for every input node. The result is fully
// determined by the input ordering and the config: no randomness anywhere.
// Edges with an endpoint outside the node set contribute no force. An empty
// node slice yields an empty map.
func (e *Engine) Compute(nodes []domain.Node, edges []domain.Edge) map[string]domain.Position {
	positions := make(map[string]domain.Position, len(nodes))
	if len(nodes) == 0 {
		return positions
	}

	xs := make([]float64, len(nodes))
	ys := make([]float64, len(nodes))
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	e.seed(nodes, xs, ys)
	e.relax(nodes, edges, index, xs, ys)

	for i, n := range nodes {
		positions[n.ID] = domain.Position{X: xs[i], Y: ys[i]}
	}
	return positions
}

// seed places nodes in per-type clusters: each type gets an anchor on a
// circle around the canvas center, and group members sit on a smaller circle
// around their anchor. Types are ordered by first appearance in the input so
// identical input always seeds identically.
func (e *Engine) seed(nodes []domain.Node, xs, ys []float64) {
	base := math.Min(e.cfg.Width, e.cfg.Height)
	centerX := e.cfg.Width / 2
	centerY := e.cfg.Height / 2
	anchorRadius := e.cfg.ClusterRadius * base
	memberRadius := e.cfg.MemberRadius * base

	typeOrder := []domain.NodeType{}
	groups := map[domain.NodeType][]int{}
	for i, n := range nodes {
		if _, seen := groups[n.Type]; !seen {
			typeOrder = append(typeOrder, n.Type)
		}
		groups[n.Type] = append(groups[n.Type], i)
	}

	typeCount := len(typeOrder)
	if typeCount < 1 {
		typeCount = 1
	}

	for ti, t := range typeOrder {
		anchorAngle := 2 * math.Pi * float64(ti) / float64(typeCount)
		anchorX := centerX + anchorRadius*math.Cos(anchorAngle)
		anchorY := centerY + anchorRadius*math.Sin(anchorAngle)

		members := groups[t]
		size := len(members)
		if size < 1 {
			size = 1
		}
		for mi, ni := range members {
			angle := 2 * math.Pi * float64(mi) / float64(size)
			xs[ni] = anchorX + memberRadius*math.Cos(angle)
			ys[ni] = anchorY + memberRadius*math.Sin(angle)
		}
	}
}

// relax runs the fixed-iteration force loop. Termination is by iteration
// count, not convergence detection: bounded compute beats optimality here.
func (e *Engine) relax(nodes []domain.Node, edges []domain.Edge, index map[string]int, xs, ys []float64) {
	n := len(nodes)
	dx := make([]float64, n)
	dy := make([]float64, n)

	for iter := 0; iter < e.cfg.Iterations; iter++ {
		for i := range dx {
			dx[i] = 0
			dy[i] = 0
		}

		// Pairwise Coulomb repulsion with a distance floor of 1 so
		// coincident nodes cannot blow up the force term.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				diffX := xs[i] - xs[j]
				diffY := ys[i] - ys[j]
				dist := math.Sqrt(diffX*diffX + diffY*diffY)
				if dist < 1 {
					dist = 1
				}
				force := e.cfg.Repulsion / (dist * dist)
				ux := diffX / dist
				uy := diffY / dist
				dx[i] += ux * force
				dy[i] += uy * force
				dx[j] -= ux * force
				dy[j] -= uy * force
			}
		}

		// Spring attraction along edges. Edges referencing unknown node
		// ids are skipped, not an error.
		for _, edge := range edges {
			si, ok := index[edge.Source]
			if !ok {
				continue
			}
			ti, ok := index[edge.Target]
			if !ok {
				continue
			}
			diffX := xs[ti] - xs[si]
			diffY := ys[ti] - ys[si]
			dx[si] += diffX * e.cfg.Attraction
			dy[si] += diffY * e.cfg.Attraction
			dx[ti] -= diffX * e.cfg.Attraction
			dy[ti] -= diffY * e.cfg.Attraction
		}

		for i := 0; i < n; i++ {
			xs[i] = clamp(xs[i]+dx[i], e.cfg.Padding, e.cfg.Width-e.cfg.Padding)
			ys[i] = clamp(ys[i]+dy[i], e.cfg.Padding, e.cfg.Height-e.cfg.Padding)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
