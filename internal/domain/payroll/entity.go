package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often a run pays out.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "bi_weekly"
	FrequencyMonthly  Frequency = "monthly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// ItemType selects how a PayItem amount is applied.
type ItemType string

const (
	ItemTypeFixed      ItemType = "fixed"
	ItemTypePercentage ItemType = "percentage" // percent of base pay
)

// PayItem is an allowance, bonus or deduction line.
type PayItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Type   ItemType        `json:"type,omitempty"`
}

// PayAdjustment holds the manual per-employee entries for one run.
type PayAdjustment struct {
	DaysWorked       decimal.Decimal `json:"days_worked"`
	OvertimeHours    decimal.Decimal `json:"overtime_hours"`
	WeekendHours     decimal.Decimal `json:"weekend_hours"`
	HolidayHours     decimal.Decimal `json:"holiday_hours"`
	CustomDeductions []PayItem       `json:"custom_deductions,omitempty"`
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft PayrollStatus = "draft"
)

// Flag marks a line the caller must look at before paying it.
type Flag string

const (
	FlagNegativeNetPay Flag = "negative_net_pay"
	FlagMissingRate    Flag = "missing_rate"
)

// PayrollRecord is the immutable per-employee, per-period payroll snapshot.
type PayrollRecord struct {
	ID               string
	RunID            *string
	EmployeeID       string
	CompanyID        string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	PaymentDate      time.Time
	Frequency        Frequency
	EmploymentType   string
	BaseSalary       decimal.Decimal
	ProratedSalary   decimal.Decimal
	HoursRecorded    decimal.Decimal
	HoursWorked      decimal.Decimal
	HoursApproved    decimal.Decimal
	TotalAllowances  decimal.Decimal
	TotalBonuses     decimal.Decimal
	OvertimePay      decimal.Decimal
	WeekendPay       decimal.Decimal
	HolidayPay       decimal.Decimal
	GrossPay         decimal.Decimal
	NASSITEmployee   decimal.Decimal
	NASSITEmployer   decimal.Decimal
	PAYETax          decimal.Decimal
	TaxableIncome    decimal.Decimal
	EffectiveTaxRate decimal.Decimal
	CustomDeductions decimal.Decimal
	TotalDeductions  decimal.Decimal
	NetPay           decimal.Decimal
	EmployerCost     decimal.Decimal
	AllowancesDetail map[string]decimal.Decimal // {"Transport": 300000}
	BonusesDetail    map[string]decimal.Decimal
	DeductionsDetail map[string]decimal.Decimal // custom deductions only
	Status           PayrollStatus
	Flags            []Flag
	CreatedBy        *string
	CreatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Exceptional reports whether the line carries a flag.
func (r PayrollRecord) Exceptional() bool {
	return len(r.Flags) > 0
}

// Balanced reports whether the record satisfies the conservation identities.
func (r PayrollRecord) Balanced() bool {
	gross := r.ProratedSalary.Add(r.TotalAllowances).Add(r.TotalBonuses).
		Add(r.OvertimePay).Add(r.WeekendPay).Add(r.HolidayPay)
	deductions := r.NASSITEmployee.Add(r.PAYETax).Add(r.CustomDeductions)
	return gross.Equal(r.GrossPay) &&
		deductions.Equal(r.TotalDeductions) &&
		r.NetPay.Add(r.TotalDeductions).Equal(r.GrossPay)
}

// Breakdown is the statutory calculation result for one gross figure.
type Breakdown struct {
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	NASSIT          NASSIT          `json:"nassit"`
	PAYE            PAYE            `json:"paye"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	EmployerCost    decimal.Decimal `json:"employer_cost"`
}

type NASSIT struct {
	Employee decimal.Decimal `json:"employee"`
	Employer decimal.Decimal `json:"employer"`
}

type PAYE struct {
	Tax           decimal.Decimal `json:"tax"`
	TaxableIncome decimal.Decimal `json:"taxable_income"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
}

// RunStatus tracks a commit through the run log.
type RunStatus string

const (
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCommitted  RunStatus = "committed"
	RunStatusPartial    RunStatus = "partial"
)

// Run is the commit log header: one per Commit call.
type Run struct {
	ID          string
	CompanyID   string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Frequency   Frequency
	Status      RunStatus
	LineCount   int
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusSucceeded EntryStatus = "succeeded"
	EntryStatusFailed    EntryStatus = "failed"
)

// RunEntry records the outcome of one line in a run together with the line
// itself, so failed lines can be retried without the original request.
type RunEntry struct {
	RunID      string
	LineIndex  int
	EmployeeID string
	Status     EntryStatus
	RecordID   *string
	LastError  *string
	Attempts   int
	Line       PayrollRecord
	UpdatedAt  time.Time
}
