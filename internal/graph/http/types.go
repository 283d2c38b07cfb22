package http

import (
	"sync"

	"github.com/gstlens/gst-graph-backend/internal/graph/explore"
)

// Handler handles HTTP requests for explorer sessions. Each session owns one
// traversal controller; the renderer round-trips view events and reads
// snapshots.
type Handler struct {
	sessions      *sessionStore
	newController func() *explore.Controller
}

// New creates a Handler. The factory is invoked once per created session.
func New(newController func() *explore.Controller) *Handler {
	return &Handler{
		sessions:      newSessionStore(),
		newController: newController,
	}
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*explore.Controller
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: map[string]*explore.Controller{}}
}

func (s *sessionStore) put(id string, ctrl *explore.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = ctrl
}

func (s *sessionStore) get(id string) (*explore.Controller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctrl, ok := s.sessions[id]
	return ctrl, ok
}

func (s *sessionStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

type searchRequest struct {
	Key string `json:"key"`
}

type depthRequest struct {
	Depth int `json:"depth"`
}

type drillRequest struct {
	NodeID string `json:"node_id"`
}

// viewEventRequest is the wire form of a view event; the renderer's
// hit-testing layer fills in OnNode/NodeID/NodeType as appropriate.
type viewEventRequest struct {
	Event    string  `json:"event"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	OnNode   bool    `json:"on_node,omitempty"`
	NodeID   string  `json:"node_id,omitempty"`
	NodeType string  `json:"node_type,omitempty"`
}
