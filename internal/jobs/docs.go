// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// One job is registered: PendingSyncJob republishes the retained pending
// order snapshot to the broker so a reconnecting delivery agent picks up the
// current backlog without waiting for the next listing request.
package jobs
