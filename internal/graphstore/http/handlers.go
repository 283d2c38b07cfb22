// Package http exposes the graph query service: the export, subgraph, and
// stats endpoints consumed by the explorer's query client (or any other
// frontend).
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gstlens/gst-graph-backend/internal/graph/domain"
	"github.com/gstlens/gst-graph-backend/internal/graphstore"
	"github.com/gstlens/gst-graph-backend/internal/middleware"
)

const defaultExportLimit = 40

// Handler handles HTTP requests for graph queries.
type Handler struct {
	service *graphstore.Service
}

func New(service *graphstore.Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the graph routes on a router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/export", h.Export)
	rg.GET("/subgraph/:gstin", h.Subgraph)
	rg.GET("/stats", h.Stats)
}

// Export returns a breadth-capped snapshot of the whole graph.
func (h *Handler) Export(c *gin.Context) {
	limit := defaultExportLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	g, err := h.service.Export(c.Request.Context(), limit)
	if err != nil {
		logger := middleware.NewLogger(c)
		logger.LogError("graph_export", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, g)
}

// Subgraph returns the entities reachable within depth hops of a GSTIN.
func (h *Handler) Subgraph(c *gin.Context) {
	gstin := c.Param("gstin")

	depth := 1
	if v := c.Query("depth"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "depth must be 1 or 2"})
			return
		}
		depth = n
	}

	g, err := h.service.Subgraph(c.Request.Context(), gstin, depth)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEntityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "GSTIN " + gstin + " not found"})
		case errors.Is(err, domain.ErrEmptyEntityKey), errors.Is(err, domain.ErrInvalidDepth):
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		default:
			logger := middleware.NewLogger(c)
			logger.LogError("graph_subgraph", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database query failed"})
		}
		return
	}

	c.JSON(http.StatusOK, g)
}

// Stats returns node and relationship counts for the entire graph.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.GraphStats(c.Request.Context())
	if err != nil {
		logger := middleware.NewLogger(c)
		logger.LogError("graph_stats", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
