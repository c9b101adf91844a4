package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	pendingSyncJob *PendingSyncJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(syncer pendingSyncer, logger *slog.Logger) *JobManager {
	return &JobManager{
		pendingSyncJob: NewPendingSyncJob(syncer, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingSyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending snapshot job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingSyncJob.Stop()
}
