//go:build integration

package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
)

type PayrollRepositorySuite struct {
	suite.Suite
	setup *TestDatabaseSetup
	repo  payroll.PayrollRepository
}

func TestPayrollRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PayrollRepositorySuite))
}

func (s *PayrollRepositorySuite) SetupSuite() {
	setup, err := NewTestDatabase(context.Background())
	s.Require().NoError(err)
	s.setup = setup
	s.repo = postgresql.NewPayrollRepository(setup.DB)
}

func (s *PayrollRepositorySuite) TearDownSuite() {
	if s.setup != nil {
		s.setup.Close(context.Background())
	}
}

func (s *PayrollRepositorySuite) SetupTest() {
	s.Require().NoError(s.setup.TruncateAllTables(context.Background()))
}

func (s *PayrollRepositorySuite) line(employeeID string, runID *string) payroll.PayrollRecord {
	d := decimal.RequireFromString
	return payroll.PayrollRecord{
		RunID:            runID,
		EmployeeID:       employeeID,
		CompanyID:        testCompanyID,
		PeriodStart:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		PaymentDate:      time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Frequency:        payroll.FrequencyMonthly,
		EmploymentType:   "salary",
		BaseSalary:       d("5000000"),
		ProratedSalary:   d("5000000"),
		HoursRecorded:    d("0"),
		HoursWorked:      d("0"),
		HoursApproved:    d("0"),
		TotalAllowances:  d("0"),
		TotalBonuses:     d("0"),
		OvertimePay:      d("0"),
		WeekendPay:       d("0"),
		HolidayPay:       d("0"),
		GrossPay:         d("5000000"),
		NASSITEmployee:   d("250000"),
		NASSITEmployer:   d("500000"),
		PAYETax:          d("1140000"),
		TaxableIncome:    d("4750000"),
		EffectiveTaxRate: d("0.2280"),
		CustomDeductions: d("100000"),
		TotalDeductions:  d("1490000"),
		NetPay:           d("3510000"),
		EmployerCost:     d("5500000"),
		DeductionsDetail: map[string]decimal.Decimal{"Loan": d("100000")},
		Status:           payroll.PayrollStatusDraft,
		Flags:            []payroll.Flag{payroll.FlagMissingRate},
	}
}

func (s *PayrollRepositorySuite) TestCreateAndGetRecord() {
	ctx := context.Background()
	base := decimal.NewFromInt(5000000)
	empID := seedEmployee(s.T(), s.setup.DB, "S-001", "salary", "monthly", &base, nil)

	created, err := s.repo.CreatePayrollRecord(ctx, s.line(empID, nil))
	s.Require().NoError(err)
	s.NotEmpty(created.ID)

	got, err := s.repo.GetPayrollRecordByID(ctx, created.ID, testCompanyID)
	s.Require().NoError(err)
	s.True(got.NetPay.Equal(decimal.NewFromInt(3510000)))
	s.True(got.EffectiveTaxRate.Equal(decimal.RequireFromString("0.228")))
	s.True(got.DeductionsDetail["Loan"].Equal(decimal.NewFromInt(100000)))
	s.Equal([]payroll.Flag{payroll.FlagMissingRate}, got.Flags)
	s.Require().NotNil(got.EmployeeCode)
	s.Equal("S-001", *got.EmployeeCode)
	s.True(got.Balanced())

	_, err = s.repo.GetPayrollRecordByID(ctx, created.ID, "0193a5b0-0000-7000-8000-000000000002")
	s.ErrorIs(err, payroll.ErrPayrollRecordNotFound)
}

func (s *PayrollRepositorySuite) TestDuplicatePeriodRejected() {
	ctx := context.Background()
	empID := seedEmployee(s.T(), s.setup.DB, "S-002", "salary", "monthly", nil, nil)

	_, err := s.repo.CreatePayrollRecord(ctx, s.line(empID, nil))
	s.Require().NoError(err)

	_, err = s.repo.CreatePayrollRecord(ctx, s.line(empID, nil))
	s.ErrorIs(err, payroll.ErrPayrollRecordAlreadyExists)
}

func (s *PayrollRepositorySuite) TestRunLog() {
	ctx := context.Background()
	a := seedEmployee(s.T(), s.setup.DB, "S-010", "salary", "monthly", nil, nil)
	b := seedEmployee(s.T(), s.setup.DB, "S-011", "salary", "monthly", nil, nil)

	runID := uuid.Must(uuid.NewV7()).String()
	run := payroll.Run{
		ID:          runID,
		CompanyID:   testCompanyID,
		PeriodStart: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Frequency:   payroll.FrequencyMonthly,
		Status:      payroll.RunStatusInProgress,
		LineCount:   2,
		CreatedBy:   "owner-1",
	}
	entries := []payroll.RunEntry{
		{LineIndex: 0, EmployeeID: a, Status: payroll.EntryStatusPending, Line: s.line(a, nil)},
		{LineIndex: 1, EmployeeID: b, Status: payroll.EntryStatusPending, Line: s.line(b, nil)},
	}

	_, err := s.repo.CreateRun(ctx, run, entries)
	s.Require().NoError(err)

	rec, err := s.repo.CreatePayrollRecord(ctx, s.line(a, &runID))
	s.Require().NoError(err)
	s.Require().NoError(s.repo.MarkEntrySucceeded(ctx, runID, 0, rec.ID))
	s.Require().NoError(s.repo.MarkEntryFailed(ctx, runID, 1, "connection reset"))
	s.Require().NoError(s.repo.UpdateRunStatus(ctx, runID, payroll.RunStatusPartial))

	failed := payroll.EntryStatusFailed
	pending, err := s.repo.GetRunEntries(ctx, runID, &failed)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(b, pending[0].EmployeeID)
	s.Equal(1, pending[0].Attempts)
	s.Require().NotNil(pending[0].LastError)
	s.Equal("connection reset", *pending[0].LastError)
	s.True(pending[0].Line.GrossPay.Equal(decimal.NewFromInt(5000000)))
	s.True(pending[0].Line.DeductionsDetail["Loan"].Equal(decimal.NewFromInt(100000)))

	partial, err := s.repo.ListRunsByStatus(ctx, payroll.RunStatusPartial, time.Now().Add(time.Minute), 10)
	s.Require().NoError(err)
	s.Require().Len(partial, 1)
	s.Equal(runID, partial[0].ID)

	recent, err := s.repo.ListRunsByStatus(ctx, payroll.RunStatusPartial, time.Now().Add(-time.Hour), 10)
	s.Require().NoError(err)
	s.Empty(recent)

	byPeriod, err := s.repo.GetPayrollRecordByPeriod(ctx, testCompanyID, a, run.PeriodStart, run.PeriodEnd)
	s.Require().NoError(err)
	s.Equal(rec.ID, byPeriod.ID)
	s.Require().NotNil(byPeriod.RunID)
	s.Equal(runID, *byPeriod.RunID)

	_, err = s.repo.GetPayrollRecordByPeriod(ctx, testCompanyID, b, run.PeriodStart, run.PeriodEnd)
	s.ErrorIs(err, payroll.ErrPayrollRecordNotFound)

	got, err := s.repo.GetRun(ctx, runID, testCompanyID)
	s.Require().NoError(err)
	s.Equal(2, got.LineCount)

	records, total, err := s.repo.ListPayrollRecords(ctx, testCompanyID, payroll.PayrollFilter{RunID: &runID})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Len(records, 1)

	s.ErrorIs(s.repo.UpdateRunStatus(ctx, uuid.Must(uuid.NewV7()).String(), payroll.RunStatusCommitted), payroll.ErrRunNotFound)
}

func (s *PayrollRepositorySuite) TestWithTransactionRollsBackJoinedWrites() {
	ctx := context.Background()
	empID := seedEmployee(s.T(), s.setup.DB, "S-020", "salary", "monthly", nil, nil)
	line := s.line(empID, nil)
	boom := errors.New("boom")

	err := postgresql.WithTransaction(ctx, s.setup.DB, func(ctx context.Context) error {
		if _, err := s.repo.CreatePayrollRecord(ctx, line); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.repo.GetPayrollRecordByPeriod(ctx, testCompanyID, empID, line.PeriodStart, line.PeriodEnd)
	s.ErrorIs(err, payroll.ErrPayrollRecordNotFound)
}

func (s *PayrollRepositorySuite) TestCorruptDetailIsReported() {
	ctx := context.Background()
	empID := seedEmployee(s.T(), s.setup.DB, "S-021", "salary", "monthly", nil, nil)

	created, err := s.repo.CreatePayrollRecord(ctx, s.line(empID, nil))
	s.Require().NoError(err)
	_, err = s.setup.DB.Exec(ctx, `UPDATE payroll_records SET deductions_detail = '{"Loan": "not-a-number"}' WHERE id = $1`, created.ID)
	s.Require().NoError(err)

	_, err = s.repo.GetPayrollRecordByID(ctx, created.ID, testCompanyID)
	s.ErrorContains(err, "deductions_detail")
}

func (s *PayrollRepositorySuite) TestMigrateIsTracked() {
	ctx := context.Background()

	s.Require().NoError(postgresql.Migrate(ctx, s.setup.DB))

	var applied int
	s.Require().NoError(s.setup.DB.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = '001_payroll_engine.sql'`).Scan(&applied))
	s.Equal(1, applied)
}
