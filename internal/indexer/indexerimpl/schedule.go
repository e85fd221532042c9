package indexerimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const (
	syncTimeout  = 5 * time.Minute
	sweepTimeout = 30 * time.Minute
)

// Schedule runs the event sync on a fixed interval and the orphan sweep on a
// cron line. Both jobs are singletons: a slow run is not overlapped.
func (p *IndexerImpl) Schedule(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(p.Interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				p.Logger.Info("Context cancelled, skipping ledger sync")
				return
			}
			taskCtx, cancel := context.WithTimeout(ctx, syncTimeout)
			defer cancel()

			if _, err := p.SyncUsernames(taskCtx); err != nil {
				p.Logger.Error("Username sync failed", "error", err)
			}
			if _, err := p.SyncTips(taskCtx); err != nil {
				p.Logger.Error("Tip sync failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule ledger sync: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(p.SweepCron, false),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				p.Logger.Info("Context cancelled, skipping orphan sweep")
				return
			}
			taskCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
			defer cancel()

			p.Logger.Info("Starting scheduled orphan sweep")
			if _, err := p.SweepOrphans(taskCtx); err != nil {
				p.Logger.Error("Orphan sweep failed", "error", err)
				p.Telegram.SendMessageToOps("Orphan sweep failed: " + err.Error())
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule orphan sweep: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		p.Logger.Info("Stopping indexer scheduler")
		if err := scheduler.Shutdown(); err != nil {
			p.Logger.Error("Failed to shut down indexer scheduler", "error", err)
		}
	}()

	return nil
}
