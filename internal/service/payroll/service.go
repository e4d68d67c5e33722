package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/user"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/lock"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/metrics"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 4
	defaultLockTTL     = 5 * time.Minute
	sweepBatchSize     = 20
)

// Options tunes the orchestrator. Zero values fall back to defaults.
type Options struct {
	Concurrency int           // max concurrent record creates per commit
	// LockTTL bounds how long a crashed commit can keep its period locked. A live
	// commit renews the lock every LockTTL/3. Runs still in_progress after LockTTL
	// without an update are treated as abandoned and swept.
	LockTTL time.Duration
}

type PayrollService struct {
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	timesheets   attendance.TimesheetService
	aggregator   *Aggregator
	locker       lock.Locker
	metrics      *metrics.Metrics
	logger       *slog.Logger
	opts         Options
	now          func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	timesheets attendance.TimesheetService,
	aggregator *Aggregator,
	locker lock.Locker,
	m *metrics.Metrics,
	logger *slog.Logger,
	opts Options,
) *PayrollService {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = defaultLockTTL
	}
	if locker == nil {
		locker = lock.NewMemory()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollService{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		timesheets:   timesheets,
		aggregator:   aggregator,
		locker:       locker,
		metrics:      m,
		logger:       logger,
		opts:         opts,
		now:          time.Now,
	}
}

// GeneratePreview implements payroll.PayrollService.
func (s *PayrollService) GeneratePreview(ctx context.Context, actor user.Actor, req payroll.GeneratePreviewRequest) (preview payroll.Preview, err error) {
	started := s.now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		s.metrics.ObservePreview(outcome, s.now().Sub(started))
	}()

	if err := authorize(actor, user.PermissionPayrollRun); err != nil {
		return payroll.Preview{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.Preview{}, err
	}
	start, end, payment := req.Dates()

	employees, err := s.loadEmployees(ctx, actor.CompanyID, req.EmployeeIDs)
	if err != nil {
		return payroll.Preview{}, err
	}

	records, err := s.loadAttendance(ctx, actor.CompanyID, employees, start, end)
	if err != nil {
		return payroll.Preview{}, err
	}

	lines := make([]payroll.PayrollRecord, 0, len(employees))
	for _, emp := range employees {
		line, err := s.aggregator.BuildLine(emp, LineInput{
			CompanyID:   actor.CompanyID,
			PeriodStart: start,
			PeriodEnd:   end,
			PaymentDate: payment,
			Frequency:   req.Frequency,
			Adjustment:  req.Adjustments[emp.ID],
			Allowances:  req.Allowances,
			Bonuses:     req.Bonuses,
			Deductions:  req.Deductions,
			Attendance:  records[emp.ID],
		})
		if err != nil {
			return payroll.Preview{}, fmt.Errorf("failed to compute payroll for employee %s: %w", emp.ID, err)
		}
		for _, flag := range line.Flags {
			s.metrics.IncrementFlag(string(flag))
		}
		lines = append(lines, line)
	}

	return payroll.Preview{Lines: lines, Totals: Totals(lines)}, nil
}

// loadEmployees returns the employees in the order they were requested.
func (s *PayrollService) loadEmployees(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	found, err := s.employeeRepo.Filter(ctx, employee.EmployeeFilter{CompanyID: companyID, IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	byID := make(map[string]employee.Employee, len(found))
	for _, emp := range found {
		byID[emp.ID] = emp
	}

	employees := make([]employee.Employee, 0, len(ids))
	var missing []string
	for _, id := range ids {
		emp, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		employees = append(employees, emp)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", employee.ErrEmployeeNotFound, strings.Join(missing, ", "))
	}
	return employees, nil
}

// loadAttendance fetches the period's timesheets for wage employees, grouped
// by employee, and refuses to continue while any of them is still pending.
func (s *PayrollService) loadAttendance(ctx context.Context, companyID string, employees []employee.Employee, start, end time.Time) (map[string][]attendance.Attendance, error) {
	var wageIDs []string
	for _, emp := range employees {
		if emp.IsWage() {
			wageIDs = append(wageIDs, emp.ID)
		}
	}
	if len(wageIDs) == 0 {
		return nil, nil
	}

	records, err := s.timesheets.ForPeriod(ctx, companyID, wageIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load timesheets: %w", err)
	}

	grouped := make(map[string][]attendance.Attendance, len(wageIDs))
	for _, rec := range records {
		grouped[rec.EmployeeID] = append(grouped[rec.EmployeeID], rec)
	}

	pending := make(map[string][]string)
	for id, recs := range grouped {
		for _, rec := range attendance.Pending(recs, start, end) {
			pending[id] = append(pending[id], rec.ID)
		}
	}
	if len(pending) > 0 {
		return nil, &payroll.TimesheetApprovalRequiredError{Pending: pending}
	}
	return grouped, nil
}

// Totals reduces lines to their batch totals.
func Totals(lines []payroll.PayrollRecord) payroll.PreviewTotals {
	var t payroll.PreviewTotals
	for _, line := range lines {
		t.Employees++
		t.GrossPay = t.GrossPay.Add(line.GrossPay)
		t.NetPay = t.NetPay.Add(line.NetPay)
		t.NASSITEmployee = t.NASSITEmployee.Add(line.NASSITEmployee)
		t.NASSITEmployer = t.NASSITEmployer.Add(line.NASSITEmployer)
		t.PAYETax = t.PAYETax.Add(line.PAYETax)
		t.TotalDeductions = t.TotalDeductions.Add(line.TotalDeductions)
		t.EmployerCost = t.EmployerCost.Add(line.EmployerCost)
	}
	return t
}

// Commit implements payroll.PayrollService.
func (s *PayrollService) Commit(ctx context.Context, actor user.Actor, lines []payroll.PayrollRecord) (payroll.CommitResult, error) {
	if err := authorize(actor, user.PermissionPayrollCommit); err != nil {
		return payroll.CommitResult{}, err
	}
	if err := validateBatch(actor.CompanyID, lines); err != nil {
		return payroll.CommitResult{}, err
	}

	first := lines[0]
	release, err := s.lockPeriod(ctx, actor.CompanyID, first)
	if err != nil {
		return payroll.CommitResult{}, err
	}
	defer release()

	run := payroll.Run{
		ID:          uuid.Must(uuid.NewV7()).String(),
		CompanyID:   actor.CompanyID,
		PeriodStart: first.PeriodStart,
		PeriodEnd:   first.PeriodEnd,
		Frequency:   first.Frequency,
		Status:      payroll.RunStatusInProgress,
		LineCount:   len(lines),
		CreatedBy:   actor.UserID,
	}
	entries := make([]payroll.RunEntry, len(lines))
	for i, line := range lines {
		entries[i] = payroll.RunEntry{
			RunID:      run.ID,
			LineIndex:  i,
			EmployeeID: line.EmployeeID,
			Status:     payroll.EntryStatusPending,
			Line:       line,
		}
	}

	run, err = s.payrollRepo.CreateRun(ctx, run, entries)
	if err != nil {
		return payroll.CommitResult{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return s.execute(ctx, run, entries, actor.UserID)
}

// CommitPreview implements payroll.PayrollService.
func (s *PayrollService) CommitPreview(ctx context.Context, actor user.Actor, req payroll.CommitPreviewRequest) (payroll.CommitResult, error) {
	if err := authorize(actor, user.PermissionPayrollCommit); err != nil {
		return payroll.CommitResult{}, err
	}

	preview, err := s.GeneratePreview(ctx, actor, req.GeneratePreviewRequest)
	if err != nil {
		return payroll.CommitResult{}, err
	}
	if req.ExpectedTotals != nil && !req.ExpectedTotals.Equal(preview.Totals) {
		return payroll.CommitResult{}, payroll.ErrPreviewStale
	}

	return s.Commit(ctx, actor, preview.Lines)
}

// RetryFailed implements payroll.PayrollService.
func (s *PayrollService) RetryFailed(ctx context.Context, actor user.Actor, runID string) (payroll.CommitResult, error) {
	if err := authorize(actor, user.PermissionPayrollCommit); err != nil {
		return payroll.CommitResult{}, err
	}

	run, err := s.payrollRepo.GetRun(ctx, runID, actor.CompanyID)
	if err != nil {
		return payroll.CommitResult{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return s.retry(ctx, run, actor.UserID)
}

// RetryPartialRuns re-attempts unfinished lines of partial runs, and of runs
// abandoned in_progress, across all companies. It is meant for the background
// sweeper and returns how many runs it touched.
func (s *PayrollService) RetryPartialRuns(ctx context.Context) (int, error) {
	now := s.now()
	runs, err := s.payrollRepo.ListRunsByStatus(ctx, payroll.RunStatusPartial, now, sweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list partial runs: %w", err)
	}
	abandoned, err := s.payrollRepo.ListRunsByStatus(ctx, payroll.RunStatusInProgress, now.Add(-s.opts.LockTTL), sweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list abandoned runs: %w", err)
	}
	runs = append(runs, abandoned...)

	retried := 0
	for _, run := range runs {
		if ctx.Err() != nil {
			return retried, ctx.Err()
		}
		_, err := s.retry(ctx, run, run.CreatedBy)
		switch {
		case err == nil:
		case errors.Is(err, payroll.ErrRunLocked), errors.Is(err, payroll.ErrNothingToRetry):
			continue
		case errors.As(err, new(*payroll.PartialCommitError)):
		default:
			s.logger.WarnContext(ctx, "payroll run retry failed", "run_id", run.ID, "error", err)
			continue
		}
		retried++
	}
	return retried, nil
}

func (s *PayrollService) retry(ctx context.Context, run payroll.Run, createdBy string) (payroll.CommitResult, error) {
	release, err := s.lockPeriod(ctx, run.CompanyID, payroll.PayrollRecord{PeriodStart: run.PeriodStart, PeriodEnd: run.PeriodEnd})
	if err != nil {
		return payroll.CommitResult{}, err
	}
	defer release()

	entries, err := s.payrollRepo.GetRunEntries(ctx, run.ID, nil)
	if err != nil {
		return payroll.CommitResult{}, fmt.Errorf("failed to get payroll run entries: %w", err)
	}

	// Pending entries belong to a commit that never finished.
	var unfinished []payroll.RunEntry
	for _, entry := range entries {
		if entry.Status != payroll.EntryStatusSucceeded {
			unfinished = append(unfinished, entry)
		}
	}
	if len(unfinished) == 0 {
		if run.Status != payroll.RunStatusCommitted {
			if err := s.payrollRepo.UpdateRunStatus(ctx, run.ID, payroll.RunStatusCommitted); err != nil {
				return payroll.CommitResult{}, fmt.Errorf("failed to update payroll run status: %w", err)
			}
		}
		return payroll.CommitResult{RunID: run.ID}, payroll.ErrNothingToRetry
	}

	return s.execute(ctx, run, unfinished, createdBy)
}

type lineOutcome struct {
	record payroll.PayrollRecord
	err    error
}

// execute persists every entry's line concurrently and records each outcome in
// the run log. It never stops early: one failed line does not cancel the rest,
// and a caller going away does not abandon lines already started.
func (s *PayrollService) execute(ctx context.Context, run payroll.Run, entries []payroll.RunEntry, createdBy string) (payroll.CommitResult, error) {
	ctx = context.WithoutCancel(ctx)
	outcomes := make([]lineOutcome, len(entries))

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, entry := range entries {
		g.Go(func() error {
			outcomes[i] = s.persistLine(ctx, run.ID, entry, createdBy)
			return nil
		})
	}
	_ = g.Wait()

	result := payroll.CommitResult{RunID: run.ID}
	for i, entry := range entries {
		if err := outcomes[i].err; err != nil {
			result.Failed = append(result.Failed, payroll.CommitFailure{
				Index:      entry.LineIndex,
				EmployeeID: entry.EmployeeID,
				Err:        err,
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, entry.LineIndex)
		result.Records = append(result.Records, outcomes[i].record)
	}
	sort.Ints(result.Succeeded)
	sort.Slice(result.Failed, func(a, b int) bool { return result.Failed[a].Index < result.Failed[b].Index })

	status := payroll.RunStatusCommitted
	if len(result.Failed) > 0 {
		status = payroll.RunStatusPartial
	}
	if err := s.payrollRepo.UpdateRunStatus(ctx, run.ID, status); err != nil {
		s.logger.ErrorContext(ctx, "failed to update payroll run status",
			"run_id", run.ID, "status", status, "error", err)
	}

	s.metrics.AddCommitLines("succeeded", len(result.Succeeded))
	s.metrics.AddCommitLines("failed", len(result.Failed))
	s.metrics.IncrementRun(string(status))

	s.logger.InfoContext(ctx, "payroll run executed",
		"run_id", run.ID,
		"company_id", run.CompanyID,
		"period_start", run.PeriodStart.Format("2006-01-02"),
		"period_end", run.PeriodEnd.Format("2006-01-02"),
		"status", status,
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
	)

	if len(result.Failed) > 0 {
		return result, &payroll.PartialCommitError{Result: result}
	}
	return result, nil
}

func (s *PayrollService) persistLine(ctx context.Context, runID string, entry payroll.RunEntry, createdBy string) lineOutcome {
	line := entry.Line
	line.RunID = &runID
	line.CreatedBy = &createdBy

	var (
		record payroll.PayrollRecord
		err    error
	)
	if !line.Balanced() {
		err = payroll.ErrUnbalancedRecord
	} else {
		record, err = s.payrollRepo.CreatePayrollRecord(ctx, line)
		if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
			record, err = s.ownRecord(ctx, runID, line, err)
		}
	}

	if err != nil {
		if markErr := s.payrollRepo.MarkEntryFailed(ctx, runID, entry.LineIndex, err.Error()); markErr != nil {
			s.logger.ErrorContext(ctx, "failed to record payroll line failure",
				"run_id", runID, "line_index", entry.LineIndex, "error", markErr)
		}
		return lineOutcome{err: err}
	}

	if markErr := s.payrollRepo.MarkEntrySucceeded(ctx, runID, entry.LineIndex, record.ID); markErr != nil {
		// The record exists; a retry will hit the unique constraint and
		// report the line as a duplicate rather than paying twice.
		s.logger.ErrorContext(ctx, "failed to record payroll line success",
			"run_id", runID, "line_index", entry.LineIndex, "record_id", record.ID, "error", markErr)
	}
	return lineOutcome{record: record}
}

// ownRecord resolves a duplicate insert. When the stored record was written by
// this same run, an earlier attempt succeeded but its entry was never marked.
func (s *PayrollService) ownRecord(ctx context.Context, runID string, line payroll.PayrollRecord, dupErr error) (payroll.PayrollRecord, error) {
	existing, err := s.payrollRepo.GetPayrollRecordByPeriod(ctx, line.CompanyID, line.EmployeeID, line.PeriodStart, line.PeriodEnd)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return payroll.PayrollRecord{}, dupErr
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to look up duplicate payroll record: %w", err)
	}
	if existing.RunID == nil || *existing.RunID != runID {
		return payroll.PayrollRecord{}, dupErr
	}
	return existing, nil
}

func (s *PayrollService) lockPeriod(ctx context.Context, companyID string, line payroll.PayrollRecord) (func(), error) {
	key := fmt.Sprintf("%s:%s:%s", companyID, line.PeriodStart.Format("2006-01-02"), line.PeriodEnd.Format("2006-01-02"))
	lease, err := s.locker.Acquire(ctx, key, s.opts.LockTTL)
	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, payroll.ErrRunLocked
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock payroll period: %w", err)
	}

	stop := lock.KeepAlive(ctx, lease, s.opts.LockTTL, func(err error) {
		s.logger.ErrorContext(ctx, "payroll period lock lost", "key", key, "error", err)
	})
	return func() {
		stop()
		lease.Release()
	}, nil
}

// validateBatch checks the shape of a commit. Per-line balance is checked
// while persisting so a bad line fails alone.
func validateBatch(companyID string, lines []payroll.PayrollRecord) error {
	var errs validator.ValidationErrors
	if len(lines) == 0 {
		errs.Add("lines", "at least one line is required")
		return errs
	}

	first := lines[0]
	seen := make(map[string]bool, len(lines))
	for i, line := range lines {
		field := fmt.Sprintf("lines[%d]", i)
		if line.Status != payroll.PayrollStatusDraft {
			errs.Add(field+".status", "only draft lines can be committed")
		}
		if line.CompanyID != companyID {
			errs.Add(field+".company_id", "line belongs to a different company")
		}
		if !line.PeriodStart.Equal(first.PeriodStart) || !line.PeriodEnd.Equal(first.PeriodEnd) {
			errs.Add(field+".period", "all lines must share one period")
		}
		if seen[line.EmployeeID] {
			errs.Add(field+".employee_id", "employee appears more than once")
		}
		seen[line.EmployeeID] = true
	}
	return errs.Err()
}

func authorize(actor user.Actor, permission user.Permission) error {
	if actor.CompanyID == "" {
		return user.ErrCompanyIDRequired
	}
	if !actor.Can(permission) {
		return fmt.Errorf("%w: %s", user.ErrInsufficientPermissions, permission)
	}
	return nil
}

// GetRun implements payroll.PayrollService.
func (s *PayrollService) GetRun(ctx context.Context, actor user.Actor, runID string) (payroll.RunResponse, error) {
	if err := authorize(actor, user.PermissionPayrollView); err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.payrollRepo.GetRun(ctx, runID, actor.CompanyID)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	entries, err := s.payrollRepo.GetRunEntries(ctx, run.ID, nil)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to get payroll run entries: %w", err)
	}

	return ToRunResponse(run, entries), nil
}

// GetPayrollRecord implements payroll.PayrollService.
func (s *PayrollService) GetPayrollRecord(ctx context.Context, actor user.Actor, id string) (payroll.PayrollRecordResponse, error) {
	if err := authorize(actor, user.PermissionPayrollView); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return ToRecordResponse(record), nil
}

// ListPayrollRecords implements payroll.PayrollService.
func (s *PayrollService) ListPayrollRecords(ctx context.Context, actor user.Actor, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	if err := authorize(actor, user.PermissionPayrollView); err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	records, total, err := s.payrollRepo.ListPayrollRecords(ctx, actor.CompanyID, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	data := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, ToRecordResponse(r))
	}
	return payroll.ListPayrollRecordResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

var _ payroll.PayrollService = (*PayrollService)(nil)
