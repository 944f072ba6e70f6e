// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// for the work that happens after a transition commits.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to turn transition events into notifications and pickup code emails
// 2. ArrivalFallbackJob - Runs every 10 seconds to move dispatched orders to the buyer hub when the arrival is overdue
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(relayHandler, arrivalHandler, jobs.Settings{OutboxBatchSize: 50, TaskBatchSize: 50}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Failures of single messages or tasks are recorded on the rows and retried on later ticks
// - A tick that is still running when the next one fires is skipped
// - Failed job starts will stop any already running jobs
package jobs
