package monitor

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jengzang/stq-dashboard-go/internal/platform"
	"github.com/jengzang/stq-dashboard-go/internal/repository"
)

// Collector periodically samples fog server statistics into the local
// history table. Samples are skipped while the session is unavailable;
// collection resumes on the next tick after login.
type Collector struct {
	fog  *platform.FogAPI
	repo *repository.FogStatsRepository
	cron *cron.Cron
}

// NewCollector creates a stats collector
func NewCollector(fog *platform.FogAPI, repo *repository.FogStatsRepository) *Collector {
	return &Collector{
		fog:  fog,
		repo: repo,
		cron: cron.New(),
	}
}

// Start schedules collection with the given cron spec (e.g. "@every 5m")
func (c *Collector) Start(spec string) error {
	_, err := c.cron.AddFunc(spec, c.collect)
	if err != nil {
		return err
	}
	c.cron.Start()
	log.Printf("Fog stats collector scheduled: %s", spec)
	return nil
}

// Stop halts scheduling and waits for a running collection to finish
func (c *Collector) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
}

func (c *Collector) collect() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := c.fog.Stats(ctx)
	if err != nil {
		log.Printf("[monitor] fog stats collection skipped: %v", err)
		return
	}
	if err := c.repo.Insert(*stats); err != nil {
		log.Printf("[monitor] failed to store fog stats snapshot: %v", err)
	}
}
