package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gstlens/gst-graph-backend/config"
	httpapi "github.com/gstlens/gst-graph-backend/internal/api/http"
	explorehttp "github.com/gstlens/gst-graph-backend/internal/graph/http"

	"github.com/gstlens/gst-graph-backend/internal/graph/explore"
	"github.com/gstlens/gst-graph-backend/internal/graph/layout"
	"github.com/gstlens/gst-graph-backend/internal/graph/view"
	"github.com/gstlens/gst-graph-backend/internal/graphstore"
	storehttp "github.com/gstlens/gst-graph-backend/internal/graphstore/http"
	"github.com/gstlens/gst-graph-backend/internal/middleware"
)

type RouterDeps struct {
	ServiceName string
	Cfg         *config.Config
	GraphSvc    *graphstore.Service
	GraphPinger httpapi.Pinger
	CachePinger httpapi.Pinger
	Query       explore.QueryService
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Cfg.App.Version, dep.GraphPinger, dep.CachePinger)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestID())

	storeHandler := storehttp.New(dep.GraphSvc)
	storeHandler.Register(api.Group("/graph"))

	layoutCfg := layout.Config{
		Width:         dep.Cfg.Layout.CanvasWidth,
		Height:        dep.Cfg.Layout.CanvasHeight,
		Iterations:    dep.Cfg.Layout.Iterations,
		Repulsion:     dep.Cfg.Layout.Repulsion,
		Attraction:    dep.Cfg.Layout.Attraction,
		Padding:       dep.Cfg.Layout.Padding,
		ClusterRadius: dep.Cfg.Layout.ClusterRadius,
		MemberRadius:  dep.Cfg.Layout.MemberRadius,
	}
	viewCfg := view.Config{
		ZoomStep: dep.Cfg.View.ZoomStep,
		ZoomMin:  dep.Cfg.View.ZoomMin,
		ZoomMax:  dep.Cfg.View.ZoomMax,
	}
	exploreCfg := explore.Config{
		OverviewLimit: dep.Cfg.Explorer.OverviewNodeLimit,
		DefaultDepth:  dep.Cfg.Explorer.DefaultDepth,
		Layout:        layoutCfg,
		View:          viewCfg,
	}

	explorerHandler := explorehttp.New(func() *explore.Controller {
		return explore.NewController(dep.Query, exploreCfg)
	})
	explorerHandler.Register(api.Group("/explorer"))

	return r
}
