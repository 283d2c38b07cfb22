package main

import (
	"context"
	"log"
	"time"

	"github.com/gstlens/gst-graph-backend/config"
	"github.com/gstlens/gst-graph-backend/internal/bootstrap"
	"github.com/gstlens/gst-graph-backend/internal/graph/service"
	"github.com/gstlens/gst-graph-backend/internal/graphstore"
	"github.com/gstlens/gst-graph-backend/internal/graphstore/cache"
	cronjob "github.com/gstlens/gst-graph-backend/internal/graphstore/cron"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	runner, err := graphstore.OpenNeo4j(ctx, cfg.Neo4j)
	if err != nil {
		log.Fatalf("neo4j: %v", err)
	}
	defer runner.Close(ctx)

	var snapshots *cache.SnapshotRepository
	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		// The cache is an accelerator; the service stays up without it.
		log.Printf("redis unavailable, snapshot cache disabled: %v", err)
	} else {
		defer redisClient.Close()
		snapshots = cache.NewSnapshotRepository(redisClient, time.Duration(cfg.Explorer.CacheTTLSeconds)*time.Second)
	}

	store := graphstore.NewStore(runner)
	graphSvc := graphstore.NewService(store, snapshots)

	scheduler := cronjob.NewScheduler(graphSvc, cfg.Explorer.OverviewNodeLimit, cfg.Explorer.OverviewWarmSpec)
	scheduler.Start()
	defer scheduler.Stop()

	queryClient := service.NewQueryClient(cfg.Explorer.GraphServiceURL)

	deps := bootstrap.RouterDeps{
		ServiceName: "gst-graph-backend",
		Cfg:         cfg,
		GraphSvc:    graphSvc,
		GraphPinger: runner,
		Query:       queryClient,
	}
	// A typed nil inside the Pinger interface would still get Ping called on
	// it, so only set the cache pinger when the cache exists.
	if snapshots != nil {
		deps.CachePinger = snapshots
	}

	r := bootstrap.BuildRouter(deps)

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
