// services/refresher.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher keeps the entity list stores warm: every registered store is
// re-fetched once at startup and then on the configured cron schedule, so
// dashboard screens load from a fresh cache.
type Refresher struct {
	schedule string
	cron     *cron.Cron

	mu    sync.Mutex
	tasks map[string]func(context.Context)
}

func NewRefresher(schedule string) *Refresher {
	return &Refresher{
		schedule: schedule,
		cron:     cron.New(),
		tasks:    make(map[string]func(context.Context)),
	}
}

// Register adds one store's refresh function under a name used for logging.
func (r *Refresher) Register(name string, task func(context.Context)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[name] = task
}

// Start runs an immediate warm-up pass, then schedules recurring ones.
func (r *Refresher) Start() error {
	r.RefreshAll()

	if _, err := r.cron.AddFunc(r.schedule, r.RefreshAll); err != nil {
		return err
	}
	r.cron.Start()
	zap.L().Info("cache refresher started", zap.String("schedule", r.schedule))
	return nil
}

// Stop halts the schedule; a running pass finishes first.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// RefreshAll re-fetches every registered store.
func (r *Refresher) RefreshAll() {
	r.mu.Lock()
	tasks := make(map[string]func(context.Context), len(r.tasks))
	for name, task := range r.tasks {
		tasks[name] = task
	}
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for name, task := range tasks {
		task(ctx)
		zap.L().Debug("store refreshed", zap.String("store", name))
	}
}
