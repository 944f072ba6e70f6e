package jobs

import (
	"context"
	"log/slog"

	"hubflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxRelayer is the relay step the job drives.
type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.ProcessOutboxCommand) (commands.RelayResult, error)
}

// OutboxRelayJob turns committed transition events into notifications.
// Runs every second; each tick relays at most one batch.
type OutboxRelayJob struct {
	handler   OutboxRelayer
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay job.
func NewOutboxRelayJob(handler OutboxRelayer, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewProcessOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	_, err = j.cron.AddFunc("* * * * * *", func() {
		j.RunOnce(context.Background(), cmd)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)", "batch_size", j.batchSize)
	return nil
}

// RunOnce relays one batch. Per-message failures are already recorded on the
// messages, so only a broken batch is logged as an error.
func (j *OutboxRelayJob) RunOnce(ctx context.Context, cmd commands.ProcessOutboxCommand) commands.RelayResult {
	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
	}
	if result.Failed > 0 {
		j.logger.WarnContext(ctx, "Outbox messages failed", "failed", result.Failed, "processed", result.Processed)
	} else if result.Processed > 0 {
		j.logger.DebugContext(ctx, "Outbox messages relayed", "processed", result.Processed, "skipped", result.Skipped)
	}
	return result
}

// Stop stops the relay job and waits for a running batch.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
