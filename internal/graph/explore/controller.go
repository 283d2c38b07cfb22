// Package explore owns the graph exploration state machine: an overview of
// the whole knowledge graph, or a depth-bounded subgraph centred on one
// taxpayer. Each load runs the fetch → normalize → layout pipeline and
// resets the view state.
package explore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gstlens/gst-graph-backend/internal/graph/adapter"
	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
	"github.com/gstlens/gst-graph-backend/internal/graph/layout"
	"github.com/gstlens/gst-graph-backend/internal/graph/view"
)

// Mode is the exploration state.
type Mode string

const (
	ModeOverview Mode = "overview"
	ModeSubgraph Mode = "subgraph"
)

// QueryService is the upstream graph query collaborator.
type QueryService interface {
	FetchOverview(ctx context.Context, limit int) (*domain.RawGraph, error)
	FetchSubgraph(ctx context.Context, gstin string, depth int) (*domain.RawGraph, error)
}

// Config tunes a controller.
type Config struct {
	OverviewLimit int
	DefaultDepth  int
	Layout        layout.Config
	View          view.Config
}

// Controller drives exploration for one client session. All exported methods
// are safe for concurrent use; overlapping fetches are resolved
// last-fetch-wins via a generation counter, so a stale in-flight response can
// never clobber a newer one.
type Controller struct {
	query  QueryService
	engine *layout.Engine
	cfg    Config

	mu         sync.Mutex
	generation uint64
	mode       Mode
	focus      string // set iff mode == ModeSubgraph
	depth      int
	graph      *domain.Graph
	positions  map[string]domain.Position
	viewState  view.State
	lastError  string
}

// Snapshot is a consistent copy of the controller state for the HTTP layer.
type Snapshot struct {
	Mode      Mode                       `json:"mode"`
	Focus     string                     `json:"focus,omitempty"`
	Depth     int                        `json:"depth"`
	Graph     *domain.Graph              `json:"graph"`
	Positions map[string]domain.Position `json:"positions"`
	View      view.State                 `json:"view"`
	Error     string                     `json:"error,omitempty"`
}

func NewController(query QueryService, cfg Config) *Controller {
	if cfg.OverviewLimit <= 0 {
		cfg.OverviewLimit = 40
	}
	if cfg.DefaultDepth != 1 && cfg.DefaultDepth != 2 {
		cfg.DefaultDepth = 1
	}
	if cfg.View == (view.Config{}) {
		cfg.View = view.DefaultConfig()
	}
	return &Controller{
		query:     query,
		engine:    layout.NewEngine(cfg.Layout),
		cfg:       cfg,
		mode:      ModeOverview,
		depth:     cfg.DefaultDepth,
		graph:     &domain.Graph{Nodes: []domain.Node{}, Edges: []domain.Edge{}},
		positions: map[string]domain.Position{},
		viewState: view.Initial(),
	}
}

// LoadOverview fetches the breadth-capped full-graph snapshot and switches to
// overview mode.
func (c *Controller) LoadOverview(ctx context.Context) error {
	gen := c.begin()
	raw, err := c.query.FetchOverview(ctx, c.cfg.OverviewLimit)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil // superseded by a newer request
	}
	if err != nil {
		c.failLocked(err)
		return err
	}
	c.mode = ModeOverview
	c.focus = ""
	c.applyLocked(raw)
	return nil
}

// Search validates and uppercases the entity key, then enters subgraph mode
// at the current depth. An empty result surfaces a "no results" banner and
// leaves the current mode and graph untouched.
func (c *Controller) Search(ctx context.Context, key string) error {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return domain.ErrEmptyEntityKey
	}
	return c.loadSubgraph(ctx, key, c.currentDepth())
}

// ChangeDepth records the new depth. In subgraph mode it re-issues the query
// with the current focus immediately; in overview mode the new depth takes
// effect on the next subgraph entry.
func (c *Controller) ChangeDepth(ctx context.Context, depth int) error {
	if depth != 1 && depth != 2 {
		return domain.ErrInvalidDepth
	}

	c.mu.Lock()
	c.depth = depth
	mode, focus := c.mode, c.focus
	c.mu.Unlock()

	if mode != ModeSubgraph {
		return nil
	}
	return c.loadSubgraph(ctx, focus, depth)
}

// Drill re-roots the exploration at the clicked node when it is drillable.
// Clicking any node still updates the tooltip selection.
func (c *Controller) Drill(ctx context.Context, nodeID string) error {
	c.mu.Lock()
	c.viewState = view.Apply(c.cfg.View, c.viewState, view.SelectNode{ID: nodeID})
	drillable := false
	for _, n := range c.graph.Nodes {
		if n.ID == nodeID {
			drillable = n.Type.IsDrillable()
			break
		}
	}
	depth := c.depth
	c.mu.Unlock()

	if !drillable {
		return nil
	}
	return c.loadSubgraph(ctx, nodeID, depth)
}

// ReturnToOverview leaves subgraph mode and re-issues the overview query.
func (c *Controller) ReturnToOverview(ctx context.Context) error {
	return c.LoadOverview(ctx)
}

// ApplyView reduces a view event. Purely presentational: no fetch, no layout.
func (c *Controller) ApplyView(ev view.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewState = view.Apply(c.cfg.View, c.viewState, ev)
}

// Snapshot returns a copy of the current state. The graph and position map
// are shared read-only values replaced wholesale on load, so handing them out
// is safe.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Mode:      c.mode,
		Focus:     c.focus,
		Depth:     c.depth,
		Graph:     c.graph,
		Positions: c.positions,
		View:      c.viewState,
		Error:     c.lastError,
	}
}

func (c *Controller) currentDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.depth
}

func (c *Controller) loadSubgraph(ctx context.Context, gstin string, depth int) error {
	gen := c.begin()
	raw, err := c.query.FetchSubgraph(ctx, gstin, depth)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	if err != nil && !errors.Is(err, domain.ErrNoResults) {
		c.failLocked(err)
		return err
	}
	if err != nil || raw == nil || len(raw.Nodes) == 0 {
		// Recoverable: keep whatever is on screen, only raise the banner.
		c.lastError = fmt.Sprintf("No results found for %q at depth %d", gstin, depth)
		return nil
	}
	c.mode = ModeSubgraph
	c.focus = gstin
	c.depth = depth
	c.applyLocked(raw)
	return nil
}

// begin allocates a request generation. A response is applied only if its
// generation is still the newest one issued.
func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

// applyLocked replaces the graph and position map wholesale and resets the
// view. Callers hold c.mu.
func (c *Controller) applyLocked(raw *domain.RawGraph) {
	g := adapter.Normalize(raw)
	c.graph = g
	c.positions = c.engine.Compute(g.Nodes, g.Edges)
	c.viewState = view.Initial()
	c.lastError = ""
}

// failLocked surfaces a transport/service failure and clears the graph.
// Callers hold c.mu.
func (c *Controller) failLocked(err error) {
	c.lastError = err.Error()
	c.graph = &domain.Graph{Nodes: []domain.Node{}, Edges: []domain.Edge{}}
	c.positions = map[string]domain.Position{}
	c.viewState = view.Initial()
}
