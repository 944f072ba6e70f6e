package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"hubflow/internal/core/application/usecases/commands"
	"hubflow/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRelayer struct {
	mock.Mock
}

func (m *MockRelayer) Handle(ctx context.Context, cmd commands.ProcessOutboxCommand) (commands.RelayResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.RelayResult), args.Error(1)
}

type MockArrivalRunner struct {
	mock.Mock
}

func (m *MockArrivalRunner) Handle(ctx context.Context, cmd commands.RunDueArrivalTasksCommand) (commands.TaskResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.TaskResult), args.Error(1)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOutboxRelayJob_RunOnce(t *testing.T) {
	relay := new(MockRelayer)
	cmd, err := commands.NewProcessOutboxCommand(25)
	require.NoError(t, err)

	relay.On("Handle", mock.Anything, cmd).Return(commands.RelayResult{Processed: 3, Failed: 1}, nil).Once()
	relay.On("Handle", mock.Anything, cmd).Return(commands.RelayResult{}, errors.New("db down")).Once()

	job := jobs.NewOutboxRelayJob(relay, 25, discard())

	assert.Equal(t, commands.RelayResult{Processed: 3, Failed: 1}, job.RunOnce(context.Background(), cmd))
	assert.Equal(t, commands.RelayResult{}, job.RunOnce(context.Background(), cmd))
	relay.AssertExpectations(t)
}

func TestArrivalFallbackJob_RunOnce(t *testing.T) {
	runner := new(MockArrivalRunner)
	cmd, err := commands.NewRunDueArrivalTasksCommand(10)
	require.NoError(t, err)

	runner.On("Handle", mock.Anything, cmd).Return(commands.TaskResult{Completed: 2, Cancelled: 1}, nil).Once()

	job := jobs.NewArrivalFallbackJob(runner, 10, discard())

	assert.Equal(t, commands.TaskResult{Completed: 2, Cancelled: 1}, job.RunOnce(context.Background(), cmd))
	runner.AssertExpectations(t)
}

func TestJobStart_RejectsInvalidBatchSize(t *testing.T) {
	require.Error(t, jobs.NewOutboxRelayJob(new(MockRelayer), 0, discard()).Start())
	require.Error(t, jobs.NewArrivalFallbackJob(new(MockArrivalRunner), -1, discard()).Start())
}

func TestJobManager_StartStop(t *testing.T) {
	relay := new(MockRelayer)
	relay.On("Handle", mock.Anything, mock.Anything).Return(commands.RelayResult{}, nil).Maybe()

	jm := jobs.NewJobManager(relay, nil, jobs.Settings{OutboxBatchSize: 10, TaskBatchSize: 10}, discard())

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}

func TestJobManager_StopsRelayWhenFallbackFailsToStart(t *testing.T) {
	relay := new(MockRelayer)
	relay.On("Handle", mock.Anything, mock.Anything).Return(commands.RelayResult{}, nil).Maybe()

	jm := jobs.NewJobManager(relay, new(MockArrivalRunner), jobs.Settings{OutboxBatchSize: 10}, discard())

	err := jm.StartAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arrival fallback")
}
