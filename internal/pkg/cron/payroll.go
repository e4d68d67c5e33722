package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RunRetrier re-attempts the failed lines of partial payroll runs.
type RunRetrier interface {
	RetryPartialRuns(ctx context.Context) (int, error)
}

type PayrollJobs struct {
	retrier RunRetrier
	logger  *slog.Logger
}

func NewPayrollJobs(retrier RunRetrier, logger *slog.Logger) *PayrollJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollJobs{retrier: retrier, logger: logger}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("retry_partial_payroll_runs", interval, j.RetryPartialRuns)
}

func (j *PayrollJobs) RetryPartialRuns(ctx context.Context) error {
	retried, err := j.retrier.RetryPartialRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep partial payroll runs: %w", err)
	}
	if retried > 0 {
		j.logger.InfoContext(ctx, "Cron: Retried partial payroll runs", "count", retried)
	}
	return nil
}
