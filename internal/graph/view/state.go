// Package view models the camera and selection state of the graph canvas as
// a small state machine with pure transition functions. The renderer is the
// only place that reads pixel-space details; nothing here touches layout
// positions.
package view

import "github.com/gstlens/gst-graph-backend/internal/graph/domain"

// Config bounds the zoom range. Defaults match the richer canvas variant.
type Config struct {
	ZoomStep float64
	ZoomMin  float64
	ZoomMax  float64
}

func DefaultConfig() Config {
	return Config{ZoomStep: 0.2, ZoomMin: 0.2, ZoomMax: 4.0}
}

// Point is a pointer coordinate in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State is the transient view state. It is reset to defaults on every graph
// load; hover events never disturb pan or zoom.
type State struct {
	Zoom           float64         `json:"zoom"`
	Pan            Point           `json:"pan"`
	Dragging       bool            `json:"dragging"`
	HoveredNodeID  string          `json:"hovered_node_id,omitempty"`
	HoveredType    domain.NodeType `json:"hovered_type,omitempty"`
	SelectedNodeID string          `json:"selected_node_id,omitempty"`

	dragOrigin Point // pointer position at PanStart
	panOrigin  Point // pan offset at PanStart
}

// Initial returns the default state: zoom 1, pan (0,0), nothing hovered.
func Initial() State {
	return State{Zoom: 1}
}

// Event is a pointer/legend interaction translated by the renderer's
// hit-testing layer.
type Event interface{ isViewEvent() }

type ZoomIn struct{}
type ZoomOut struct{}
type ResetView struct{}

// PanStart begins a drag gesture. OnNode is set when the pointer-down target
// is a node; clicking a node must not also initiate a canvas pan.
type PanStart struct {
	At     Point
	OnNode bool
}
type PanMove struct{ At Point }
type PanEnd struct{}

type HoverNode struct{ ID string }
type HoverOut struct{}

// HoverType dims everything not matching the hovered legend entry.
type HoverType struct{ Type domain.NodeType }
type HoverTypeOut struct{}

// SelectNode sets the tooltip target. Drill-through on taxpayer nodes is the
// explore controller's job, not the view's.
type SelectNode struct{ ID string }

func (ZoomIn) isViewEvent()       {}
func (ZoomOut) isViewEvent()      {}
func (ResetView) isViewEvent()    {}
func (PanStart) isViewEvent()     {}
func (PanMove) isViewEvent()      {}
func (PanEnd) isViewEvent()       {}
func (HoverNode) isViewEvent()    {}
func (HoverOut) isViewEvent()     {}
func (HoverType) isViewEvent()    {}
func (HoverTypeOut) isViewEvent() {}
func (SelectNode) isViewEvent()   {}

// Apply reduces an event into a new state. It never mutates its input.
func Apply(cfg Config, s State, ev Event) State {
	switch e := ev.(type) {
	case ZoomIn:
		s.Zoom = clampZoom(cfg, s.Zoom*(1+cfg.ZoomStep))
	case ZoomOut:
		s.Zoom = clampZoom(cfg, s.Zoom/(1+cfg.ZoomStep))
	case ResetView:
		s.Zoom = 1
		s.Pan = Point{}
		s.Dragging = false
	case PanStart:
		if e.OnNode {
			break
		}
		s.Dragging = true
		s.dragOrigin = e.At
		s.panOrigin = s.Pan
	case PanMove:
		if !s.Dragging {
			break
		}
		s.Pan = Point{
			X: s.panOrigin.X + e.At.X - s.dragOrigin.X,
			Y: s.panOrigin.Y + e.At.Y - s.dragOrigin.Y,
		}
	case PanEnd:
		s.Dragging = false
	case HoverNode:
		s.HoveredNodeID = e.ID
	case HoverOut:
		s.HoveredNodeID = ""
	case HoverType:
		s.HoveredType = e.Type
	case HoverTypeOut:
		s.HoveredType = ""
	case SelectNode:
		s.SelectedNodeID = e.ID
	}
	return s
}

func clampZoom(cfg Config, z float64) float64 {
	if z < cfg.ZoomMin {
		return cfg.ZoomMin
	}
	if z > cfg.ZoomMax {
		return cfg.ZoomMax
	}
	return z
}
