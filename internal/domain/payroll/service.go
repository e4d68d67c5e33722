package payroll

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

import (
	"context"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/user"
)

// PayrollService runs payroll: preview, commit and the run log.
type PayrollService interface {
	// GeneratePreview computes draft lines for the selected employees without persisting anything
	GeneratePreview(ctx context.Context, actor user.Actor, req GeneratePreviewRequest) (Preview, error)

	// Commit persists each line independently. A *PartialCommitError is returned
	// together with the result when some lines failed.
	Commit(ctx context.Context, actor user.Actor, lines []PayrollRecord) (CommitResult, error)

	// CommitPreview regenerates the preview for req and commits it
	CommitPreview(ctx context.Context, actor user.Actor, req CommitPreviewRequest) (CommitResult, error)

	// RetryFailed re-attempts only the failed lines of a run
	RetryFailed(ctx context.Context, actor user.Actor, runID string) (CommitResult, error)

	GetRun(ctx context.Context, actor user.Actor, runID string) (RunResponse, error)
	GetPayrollRecord(ctx context.Context, actor user.Actor, id string) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, actor user.Actor, filter PayrollFilter) (ListPayrollRecordResponse, error)
}
