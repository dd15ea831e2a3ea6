package cron

import (
	"context"
	"scoutIO/pkg/logger"
	"time"

	"github.com/robfig/cron/v3"
)

// Runner schedules background jobs with second-level cron specs. Every job
// receives the runner's base context.
type Runner struct {
	cron    *cron.Cron
	baseCtx context.Context
}

func New(baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Runner{
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		baseCtx: baseCtx,
	}
}

func (r *Runner) Add(name, spec string, job func(context.Context) error) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job(r.baseCtx); err != nil {
			logger.Error("Cron job failed", "job", name, "error", err)
			return
		}
		logger.Debug("Cron job finished", "job", name, "took", time.Since(start))
	})
}

func (r *Runner) Start() {
	logger.Info("Cron started", "entries", len(r.cron.Entries()))
	r.cron.Start()
}

// Stop waits for running jobs to return.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron stopped")
}
