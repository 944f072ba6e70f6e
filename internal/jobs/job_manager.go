package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob     *OutboxRelayJob
	arrivalFallbackJob *ArrivalFallbackJob
}

// NewJobManager creates a job manager. A nil arrival runner leaves the
// fallback job out, which is how ARRIVAL_FALLBACK_AFTER=0 is honoured.
func NewJobManager(
	relay OutboxRelayer,
	arrival ArrivalRunner,
	settings Settings,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{
		outboxRelayJob: NewOutboxRelayJob(relay, settings.OutboxBatchSize, logger),
	}
	if arrival != nil {
		jm.arrivalFallbackJob = NewArrivalFallbackJob(arrival, settings.TaskBatchSize, logger)
	}
	return jm
}

// Settings are the batch sizes of the jobs.
type Settings struct {
	OutboxBatchSize int
	TaskBatchSize   int
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if jm.arrivalFallbackJob == nil {
		return nil
	}
	if err := jm.arrivalFallbackJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start arrival fallback job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.arrivalFallbackJob != nil {
		jm.arrivalFallbackJob.Stop()
	}
	jm.outboxRelayJob.Stop()
}
