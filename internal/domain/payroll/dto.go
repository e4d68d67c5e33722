package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PREVIEW DTOs ==========

type GeneratePreviewRequest struct {
	EmployeeIDs []string                 `json:"employee_ids"`
	PeriodStart string                   `json:"period_start"`
	PeriodEnd   string                   `json:"period_end"`
	PaymentDate string                   `json:"payment_date"`
	Frequency   Frequency                `json:"frequency"`
	Allowances  []PayItem                `json:"allowances,omitempty"`
	Bonuses     []PayItem                `json:"bonuses,omitempty"`
	Deductions  []PayItem                `json:"deductions,omitempty"`
	Adjustments map[string]PayAdjustment `json:"adjustments,omitempty"` // keyed by employee id
}

func (r *GeneratePreviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs.Add("employee_ids", "at least one employee is required")
	}
	seen := make(map[string]bool, len(r.EmployeeIDs))
	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs.Add("employee_ids", "must not contain empty ids")
			break
		}
		if seen[id] {
			errs.Add("employee_ids", fmt.Sprintf("duplicate employee id %s", id))
			break
		}
		seen[id] = true
	}

	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs.Add("period_start", "must be YYYY-MM-DD")
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs.Add("period_end", "must be YYYY-MM-DD")
	}
	if okStart && okEnd && end.Before(start) {
		errs.Add("period_end", "must not be before period_start")
	}
	if r.PaymentDate != "" {
		if _, ok := validator.IsValidDate(r.PaymentDate); !ok {
			errs.Add("payment_date", "must be YYYY-MM-DD")
		}
	}
	if !r.Frequency.IsValid() {
		errs.Add("frequency", "must be one of weekly, bi_weekly, monthly")
	}

	validateItems(&errs, "allowances", r.Allowances)
	validateItems(&errs, "bonuses", r.Bonuses)
	validateItems(&errs, "deductions", r.Deductions)

	for id, adj := range r.Adjustments {
		if !seen[id] {
			errs.Add("adjustments."+id, "employee is not part of this run")
			continue
		}
		validateAdjustment(&errs, "adjustments."+id, adj)
	}

	return errs.Err()
}

// Dates returns the parsed period and payment dates. Payment date defaults to
// the period end. Call after Validate.
func (r *GeneratePreviewRequest) Dates() (start, end, payment time.Time) {
	start, _ = validator.IsValidDate(r.PeriodStart)
	end, _ = validator.IsValidDate(r.PeriodEnd)
	payment = end
	if r.PaymentDate != "" {
		payment, _ = validator.IsValidDate(r.PaymentDate)
	}
	return start, end, payment
}

func validateItems(errs *validator.ValidationErrors, field string, items []PayItem) {
	for i, item := range items {
		f := fmt.Sprintf("%s[%d]", field, i)
		if validator.IsEmpty(item.Name) {
			errs.Add(f+".name", "is required")
		}
		if item.Amount.IsNegative() {
			errs.Add(f+".amount", "must be non-negative")
		}
		switch item.Type {
		case "", ItemTypeFixed:
		case ItemTypePercentage:
			if item.Amount.GreaterThan(decimal.NewFromInt(100)) {
				errs.Add(f+".amount", "percentage must not exceed 100")
			}
		default:
			errs.Add(f+".type", "must be 'fixed' or 'percentage'")
		}
	}
}

func validateAdjustment(errs *validator.ValidationErrors, field string, adj PayAdjustment) {
	if adj.DaysWorked.IsNegative() {
		errs.Add(field+".days_worked", "must be non-negative")
	}
	if adj.OvertimeHours.IsNegative() {
		errs.Add(field+".overtime_hours", "must be non-negative")
	}
	if adj.WeekendHours.IsNegative() {
		errs.Add(field+".weekend_hours", "must be non-negative")
	}
	if adj.HolidayHours.IsNegative() {
		errs.Add(field+".holiday_hours", "must be non-negative")
	}
	validateItems(errs, field+".custom_deductions", adj.CustomDeductions)
}

// PreviewTotals are reductions over a preview set.
type PreviewTotals struct {
	Employees       int             `json:"employees"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	NetPay          decimal.Decimal `json:"net_pay"`
	NASSITEmployee  decimal.Decimal `json:"nassit_employee"`
	NASSITEmployer  decimal.Decimal `json:"nassit_employer"`
	PAYETax         decimal.Decimal `json:"paye_tax"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	EmployerCost    decimal.Decimal `json:"employer_cost"`
}

// Equal compares every monetary total and the line count.
func (t PreviewTotals) Equal(o PreviewTotals) bool {
	return t.Employees == o.Employees &&
		t.GrossPay.Equal(o.GrossPay) &&
		t.NetPay.Equal(o.NetPay) &&
		t.NASSITEmployee.Equal(o.NASSITEmployee) &&
		t.NASSITEmployer.Equal(o.NASSITEmployer) &&
		t.PAYETax.Equal(o.PAYETax) &&
		t.TotalDeductions.Equal(o.TotalDeductions) &&
		t.EmployerCost.Equal(o.EmployerCost)
}

// Preview is a computed, unpersisted run.
type Preview struct {
	Lines  []PayrollRecord
	Totals PreviewTotals
}

type PreviewResponse struct {
	Lines  []PayrollRecordResponse `json:"lines"`
	Totals PreviewTotals           `json:"totals"`
}

// ========== COMMIT DTOs ==========

// CommitPreviewRequest regenerates the preview server side and commits it.
// ExpectedTotals, when set, must match the regenerated totals.
type CommitPreviewRequest struct {
	GeneratePreviewRequest
	ExpectedTotals *PreviewTotals `json:"expected_totals,omitempty"`
}

// CommitResult reports which preview lines were persisted.
type CommitResult struct {
	RunID     string
	Succeeded []int
	Failed    []CommitFailure
	Records   []PayrollRecord
}

type CommitFailureResponse struct {
	Index      int    `json:"index"`
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type CommitResultResponse struct {
	RunID     string                  `json:"run_id"`
	Succeeded []int                   `json:"succeeded"`
	Failed    []CommitFailureResponse `json:"failed"`
	Records   []PayrollRecordResponse `json:"records"`
}

// ========== RECORD DTOs ==========

type PayrollRecordResponse struct {
	ID               string                     `json:"id,omitempty"`
	RunID            *string                    `json:"run_id,omitempty"`
	EmployeeID       string                     `json:"employee_id"`
	EmployeeName     *string                    `json:"employee_name,omitempty"`
	EmployeeCode     *string                    `json:"employee_code,omitempty"`
	EmploymentType   string                     `json:"employment_type"`
	PeriodStart      string                     `json:"period_start"`
	PeriodEnd        string                     `json:"period_end"`
	PaymentDate      string                     `json:"payment_date"`
	Frequency        string                     `json:"payroll_frequency"`
	BaseSalary       decimal.Decimal            `json:"base_salary"`
	ProratedSalary   decimal.Decimal            `json:"prorated_salary"`
	HoursRecorded    decimal.Decimal            `json:"hours_recorded"`
	HoursWorked      decimal.Decimal            `json:"hours_worked"`
	HoursApproved    decimal.Decimal            `json:"hours_approved"`
	TotalAllowances  decimal.Decimal            `json:"total_allowances"`
	TotalBonuses     decimal.Decimal            `json:"total_bonuses"`
	OvertimePay      decimal.Decimal            `json:"overtime_pay"`
	WeekendPay       decimal.Decimal            `json:"weekend_pay"`
	HolidayPay       decimal.Decimal            `json:"holiday_pay"`
	GrossPay         decimal.Decimal            `json:"gross_pay"`
	NASSITEmployee   decimal.Decimal            `json:"nassit_employee"`
	NASSITEmployer   decimal.Decimal            `json:"nassit_employer"`
	PAYETax          decimal.Decimal            `json:"paye_tax"`
	TaxableIncome    decimal.Decimal            `json:"taxable_income"`
	EffectiveTaxRate decimal.Decimal            `json:"effective_tax_rate"`
	CustomDeductions decimal.Decimal            `json:"custom_deductions"`
	TotalDeductions  decimal.Decimal            `json:"total_deductions"`
	NetPay           decimal.Decimal            `json:"net_pay"`
	EmployerCost     decimal.Decimal            `json:"employer_cost"`
	AllowancesDetail map[string]decimal.Decimal `json:"allowances_detail,omitempty"`
	BonusesDetail    map[string]decimal.Decimal `json:"bonuses_detail,omitempty"`
	DeductionsDetail map[string]decimal.Decimal `json:"deductions_detail,omitempty"`
	Status           string                     `json:"status"`
	Exceptional      bool                       `json:"exceptional"`
	Flags            []Flag                     `json:"flags,omitempty"`
}

type PayrollFilter struct {
	RunID       *string `json:"run_id,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	PeriodStart *string `json:"period_start,omitempty"`
	PeriodEnd   *string `json:"period_end,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.PeriodStart != nil {
		if _, ok := validator.IsValidDate(*f.PeriodStart); !ok {
			errs.Add("period_start", "must be YYYY-MM-DD")
		}
	}
	if f.PeriodEnd != nil {
		if _, ok := validator.IsValidDate(*f.PeriodEnd); !ok {
			errs.Add("period_end", "must be YYYY-MM-DD")
		}
	}
	if f.Page < 0 {
		errs.Add("page", "must be non-negative")
	}
	if f.Limit < 0 || f.Limit > 500 {
		errs.Add("limit", "must be between 0 and 500")
	}
	return errs.Err()
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

// ========== RUN DTOs ==========

type RunEntryResponse struct {
	LineIndex  int     `json:"line_index"`
	EmployeeID string  `json:"employee_id"`
	Status     string  `json:"status"`
	RecordID   *string `json:"record_id,omitempty"`
	LastError  *string `json:"last_error,omitempty"`
	Attempts   int     `json:"attempts"`
}

type RunResponse struct {
	ID          string             `json:"id"`
	PeriodStart string             `json:"period_start"`
	PeriodEnd   string             `json:"period_end"`
	Frequency   string             `json:"payroll_frequency"`
	Status      string             `json:"status"`
	LineCount   int                `json:"line_count"`
	CreatedBy   string             `json:"created_by"`
	CreatedAt   string             `json:"created_at"`
	Entries     []RunEntryResponse `json:"entries"`
}
