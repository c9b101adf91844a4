package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// pendingSyncer is the distributor slice the job publishes through. The
// syncer reads the active working set itself.
type pendingSyncer interface {
	SyncPending(ctx context.Context)
}

// PendingSyncJob periodically republishes the retained pending snapshot.
// Runs every 30 seconds; the publish silently skips while the transport is
// down, so the job never needs to know the connection state.
type PendingSyncJob struct {
	syncer pendingSyncer
	cron   *cron.Cron
	logger *slog.Logger
}

// NewPendingSyncJob creates the pending snapshot job.
func NewPendingSyncJob(syncer pendingSyncer, logger *slog.Logger) *PendingSyncJob {
	return &PendingSyncJob{
		syncer: syncer,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "pending_sync_job"),
	}
}

// Start begins the pending snapshot job, running every 30 seconds.
func (j *PendingSyncJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.syncer.SyncPending(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending snapshot job started (running every 30 seconds)")
	return nil
}

// Stop stops the pending snapshot job.
func (j *PendingSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending snapshot job stopped")
}
