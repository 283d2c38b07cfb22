// Package http exposes explorer sessions over HTTP: create a session to get
// an overview, then search/drill/change depth, push view events, and read
// back `{graph, positions, view}` snapshots for rendering.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
	"github.com/gstlens/gst-graph-backend/internal/graph/view"
	"github.com/gstlens/gst-graph-backend/internal/middleware"
)

// Register mounts the explorer routes on a router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/sessions", h.CreateSession)
	rg.GET("/sessions/:id", h.GetSession)
	rg.DELETE("/sessions/:id", h.DeleteSession)
	rg.POST("/sessions/:id/search", h.Search)
	rg.POST("/sessions/:id/depth", h.ChangeDepth)
	rg.POST("/sessions/:id/drill", h.Drill)
	rg.POST("/sessions/:id/overview", h.ReturnToOverview)
	rg.POST("/sessions/:id/view", h.ApplyViewEvent)
}

// CreateSession starts a new explorer session and loads the overview.
// Transport failures are recoverable: the session is created with the error
// surfaced in its snapshot banner.
func (h *Handler) CreateSession(c *gin.Context) {
	ctrl := h.newController()
	id := uuid.New().String()
	h.sessions.put(id, ctrl)

	if err := ctrl.LoadOverview(c.Request.Context()); err != nil {
		logger := middleware.NewLogger(c)
		logger.LogError("load_overview", err)
	}

	c.JSON(http.StatusCreated, gin.H{"session_id": id, "state": ctrl.Snapshot()})
}

// GetSession returns the session snapshot.
func (h *Handler) GetSession(c *gin.Context) {
	ctrl, ok := h.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrSessionNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

// DeleteSession discards a session.
func (h *Handler) DeleteSession(c *gin.Context) {
	if !h.sessions.delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrSessionNotFound.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Search enters subgraph mode focused on the searched entity key.
func (h *Handler) Search(c *gin.Context) {
	ctrl, ok := h.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrSessionNotFound.Error()})
		return
	}

	var body searchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := ctrl.Search(c.Request.Context(), body.Key); err != nil {
		if errors.Is(err, domain.ErrEmptyEntityKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Transport failures are already reflected in the snapshot banner.
		logger := middleware.NewLogger(c)
		logger.LogError("search", err)
	}

	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

// ChangeDepth records the depth; in subgraph mode it re-queries immediately.
func (h *Handler) ChangeDepth(c *gin.Context) {
	ctrl, ok := h.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrSessionNotFound.Error()})
		return
	}

	var body depthRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := ctrl.ChangeDepth(c.Request.Context(), body.Depth); err != nil {
		if errors.Is(err, domain.ErrInvalidDepth) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger := middleware.NewLogger(c)
		logger.LogError("change_depth", err)
	}

	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

// Drill re-roots the subgraph at the clicked node when it is drillable.
func (h *Handler) Drill(c *gin.Context) {
	ctrl, ok := h.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrSessionNotFound.Error()})
		return
	}

	var body drillRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.NodeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "node_id is required"})
		return
	}

	if err := ctrl.Drill(c.Request.Context(), body.NodeID); err != nil {
		logger := middleware.NewLogger(c)
		logger.LogError("drill", err)
	}

	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

// ReturnToOverview leaves subgraph mode and reloads the overview.
func (h *Handler) ReturnToOverview(c *gin.Context) {
	ctrl, ok := h.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrSessionNotFound.Error()})
		return
	}

	if err := ctrl.ReturnToOverview(c.Request.Context()); err != nil {
		logger := middleware.NewLogger(c)
		logger.LogError("return_to_overview", err)
	}

	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

// ApplyViewEvent reduces a pan/zoom/hover/select event into the session's
// view state. Never triggers a fetch or a layout recompute.
func (h *Handler) ApplyViewEvent(c *gin.Context) {
	ctrl, ok := h.sessions.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrSessionNotFound.Error()})
		return
	}

	var body viewEventRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ev, ok := toViewEvent(body)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown view event: " + body.Event})
		return
	}

	ctrl.ApplyView(ev)
	c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
}

func toViewEvent(body viewEventRequest) (view.Event, bool) {
	switch body.Event {
	case "zoom_in":
		return view.ZoomIn{}, true
	case "zoom_out":
		return view.ZoomOut{}, true
	case "reset_view":
		return view.ResetView{}, true
	case "pan_start":
		return view.PanStart{At: view.Point{X: body.X, Y: body.Y}, OnNode: body.OnNode}, true
	case "pan_move":
		return view.PanMove{At: view.Point{X: body.X, Y: body.Y}}, true
	case "pan_end":
		return view.PanEnd{}, true
	case "hover_node":
		return view.HoverNode{ID: body.NodeID}, true
	case "hover_out":
		return view.HoverOut{}, true
	case "hover_type":
		return view.HoverType{Type: domain.NodeType(body.NodeType)}, true
	case "hover_type_out":
		return view.HoverTypeOut{}, true
	case "select_node":
		return view.SelectNode{ID: body.NodeID}, true
	}
	return nil, false
}
