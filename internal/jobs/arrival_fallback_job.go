package jobs

import (
	"context"
	"log/slog"

	"hubflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ArrivalRunner is the task step the job drives.
type ArrivalRunner interface {
	Handle(ctx context.Context, cmd commands.RunDueArrivalTasksCommand) (commands.TaskResult, error)
}

// ArrivalFallbackJob moves dispatched orders to the buyer hub when nobody
// confirmed the arrival in time. Runs every ten seconds.
type ArrivalFallbackJob struct {
	handler   ArrivalRunner
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewArrivalFallbackJob(handler ArrivalRunner, batchSize int, logger *slog.Logger) *ArrivalFallbackJob {
	return &ArrivalFallbackJob{
		handler:   handler,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "arrival_fallback_job"),
	}
}

func (j *ArrivalFallbackJob) Start() error {
	cmd, err := commands.NewRunDueArrivalTasksCommand(j.batchSize)
	if err != nil {
		return err
	}

	_, err = j.cron.AddFunc("*/10 * * * * *", func() {
		j.RunOnce(context.Background(), cmd)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Arrival fallback job started (running every 10 seconds)")
	return nil
}

func (j *ArrivalFallbackJob) RunOnce(ctx context.Context, cmd commands.RunDueArrivalTasksCommand) commands.TaskResult {
	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Arrival fallback job failed", "error", err)
	}
	if result.Completed+result.Cancelled+result.Failed > 0 {
		j.logger.InfoContext(ctx, "Arrival tasks run",
			"completed", result.Completed,
			"cancelled", result.Cancelled,
			"failed", result.Failed)
	}
	return result
}

func (j *ArrivalFallbackJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Arrival fallback job stopped")
}
