// Package cronjob keeps the overview snapshot warm so the first explorer
// load after cache expiry does not pay the full export query.
package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gstlens/gst-graph-backend/internal/graphstore"
)

type Scheduler struct {
	service *graphstore.Service
	limit   int
	spec    string
	cron    *cron.Cron
}

// NewScheduler creates a warmer that re-runs the overview export on the
// given cron spec (with seconds field).
func NewScheduler(service *graphstore.Service, limit int, spec string) *Scheduler {
	return &Scheduler{service: service, limit: limit, spec: spec}
}

// Start registers and starts the cron task.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(s.spec, s.warmOverview)
	if err != nil {
		log.Printf("Failed to create overview warm job: %v", err)
		return
	}

	log.Printf("Cron scheduler started (overview warm spec %q)", s.spec)
	c.Start()
	s.cron = c
}

// Stop halts the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) warmOverview() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	g, err := s.service.Export(ctx, s.limit)
	if err != nil {
		log.Printf("Overview warm failed: %v", err)
		return
	}
	log.Printf("Overview warmed: %d nodes, %d edges", g.NodeCount, g.EdgeCount)
}
