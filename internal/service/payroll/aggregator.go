package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// PayPolicy holds the company pay rules applied on top of the statutory ones.
// The proration divisors are calendar approximations (weeks per month), not
// exact day counts, so weekly and bi-weekly lines drift slightly per year.
type PayPolicy struct {
	WeeklyDivisor        decimal.Decimal
	BiWeeklyDivisor      decimal.Decimal
	StandardMonthlyHours decimal.Decimal
	HoursPerDay          decimal.Decimal
	OvertimeMultiplier   decimal.Decimal
	WeekendMultiplier    decimal.Decimal
	HolidayMultiplier    decimal.Decimal
	// StrictRates rejects wage employees without the rate their salary type
	// needs. When false the rate counts as zero and the line is flagged.
	StrictRates bool
}

func DefaultPayPolicy() PayPolicy {
	return PayPolicy{
		WeeklyDivisor:        decimal.RequireFromString("4.33"),
		BiWeeklyDivisor:      decimal.RequireFromString("2.165"),
		StandardMonthlyHours: decimal.NewFromInt(160),
		HoursPerDay:          decimal.NewFromInt(8),
		OvertimeMultiplier:   decimal.RequireFromString("1.5"),
		WeekendMultiplier:    decimal.RequireFromString("2.0"),
		HolidayMultiplier:    decimal.RequireFromString("2.5"),
		StrictRates:          true,
	}
}

func (p PayPolicy) Validate() error {
	var errs validator.ValidationErrors
	positive := map[string]decimal.Decimal{
		"weekly_divisor":         p.WeeklyDivisor,
		"bi_weekly_divisor":      p.BiWeeklyDivisor,
		"standard_monthly_hours": p.StandardMonthlyHours,
		"hours_per_day":          p.HoursPerDay,
	}
	for field, v := range positive {
		if !v.IsPositive() {
			errs.Add(field, "must be positive")
		}
	}
	nonNegative := map[string]decimal.Decimal{
		"overtime_multiplier": p.OvertimeMultiplier,
		"weekend_multiplier":  p.WeekendMultiplier,
		"holiday_multiplier":  p.HolidayMultiplier,
	}
	for field, v := range nonNegative {
		if v.IsNegative() {
			errs.Add(field, "must be non-negative")
		}
	}
	return errs.Err()
}

// divisor returns the proration divisor for freq.
func (p PayPolicy) divisor(freq payroll.Frequency) decimal.Decimal {
	switch freq {
	case payroll.FrequencyWeekly:
		return p.WeeklyDivisor
	case payroll.FrequencyBiWeekly:
		return p.BiWeeklyDivisor
	default:
		return decimal.NewFromInt(1)
	}
}

// LineInput is everything the aggregator needs for one employee.
type LineInput struct {
	CompanyID   string
	PeriodStart time.Time
	PeriodEnd   time.Time
	PaymentDate time.Time
	Frequency   payroll.Frequency
	Adjustment  payroll.PayAdjustment
	Allowances  []payroll.PayItem
	Bonuses     []payroll.PayItem
	Deductions  []payroll.PayItem
	Attendance  []attendance.Attendance // only consulted for wage employees
}

// Aggregator turns one employee's inputs into a draft payroll line.
type Aggregator struct {
	policy     PayPolicy
	calculator *StatutoryCalculator
}

func NewAggregator(policy PayPolicy, calculator *StatutoryCalculator) (*Aggregator, error) {
	if calculator == nil {
		return nil, fmt.Errorf("statutory calculator is required")
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pay policy: %w", err)
	}
	return &Aggregator{policy: policy, calculator: calculator}, nil
}

// basePay is the pre-allowance pay and the hourly figure premiums are based on.
type basePay struct {
	baseSalary    decimal.Decimal
	amount        decimal.Decimal
	hourlyProxy   decimal.Decimal
	hoursRecorded decimal.Decimal
	hoursWorked   decimal.Decimal
	hoursApproved decimal.Decimal
	flags         []payroll.Flag
}

// BuildLine computes a draft PayrollRecord. It never persists anything.
func (a *Aggregator) BuildLine(emp employee.Employee, in LineInput) (payroll.PayrollRecord, error) {
	if !in.Frequency.IsValid() {
		return payroll.PayrollRecord{}, validator.ValidationErrors{{Field: "frequency", Message: "must be one of weekly, bi_weekly, monthly"}}
	}
	var errs validator.ValidationErrors
	validateLineInput(&errs, in)
	if err := errs.Err(); err != nil {
		return payroll.PayrollRecord{}, err
	}

	var (
		base basePay
		err  error
	)
	switch emp.EmploymentType {
	case employee.EmploymentTypeWage:
		base, err = a.wageBase(emp, in)
	case employee.EmploymentTypeSalary:
		base, err = a.salaryBase(emp, in)
	default:
		err = fmt.Errorf("%w: employee %s has %q", employee.ErrInvalidEmploymentType, emp.ID, emp.EmploymentType)
	}
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	adj := in.Adjustment
	overtime := money.Round(adj.OvertimeHours.Mul(base.hourlyProxy).Mul(a.policy.OvertimeMultiplier))
	weekend := money.Round(adj.WeekendHours.Mul(base.hourlyProxy).Mul(a.policy.WeekendMultiplier))
	holiday := money.Round(adj.HolidayHours.Mul(base.hourlyProxy).Mul(a.policy.HolidayMultiplier))

	allowances, allowancesDetail := applyItems(in.Allowances, base.amount)
	bonuses, bonusesDetail := applyItems(in.Bonuses, base.amount)
	custom, deductionsDetail := applyItems(append(append([]payroll.PayItem{}, in.Deductions...), adj.CustomDeductions...), base.amount)

	gross := money.Sum(base.amount, allowances, bonuses, overtime, weekend, holiday)

	statutory, err := a.calculator.ComputeBreakdown(gross)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("statutory breakdown for employee %s: %w", emp.ID, err)
	}

	record := payroll.PayrollRecord{
		EmployeeID:       emp.ID,
		CompanyID:        in.CompanyID,
		PeriodStart:      in.PeriodStart,
		PeriodEnd:        in.PeriodEnd,
		PaymentDate:      in.PaymentDate,
		Frequency:        in.Frequency,
		EmploymentType:   string(emp.EmploymentType),
		BaseSalary:       base.baseSalary,
		ProratedSalary:   base.amount,
		HoursRecorded:    base.hoursRecorded,
		HoursWorked:      base.hoursWorked,
		HoursApproved:    base.hoursApproved,
		TotalAllowances:  allowances,
		TotalBonuses:     bonuses,
		OvertimePay:      overtime,
		WeekendPay:       weekend,
		HolidayPay:       holiday,
		GrossPay:         statutory.GrossSalary,
		NASSITEmployee:   statutory.NASSIT.Employee,
		NASSITEmployer:   statutory.NASSIT.Employer,
		PAYETax:          statutory.PAYE.Tax,
		TaxableIncome:    statutory.PAYE.TaxableIncome,
		EffectiveTaxRate: statutory.PAYE.EffectiveRate,
		CustomDeductions: custom,
		TotalDeductions:  statutory.TotalDeductions.Add(custom),
		NetPay:           statutory.NetSalary.Sub(custom),
		EmployerCost:     statutory.EmployerCost,
		AllowancesDetail: allowancesDetail,
		BonusesDetail:    bonusesDetail,
		DeductionsDetail: deductionsDetail,
		Status:           payroll.PayrollStatusDraft,
		Flags:            base.flags,
		EmployeeName:     nonEmpty(emp.FullName),
		EmployeeCode:     nonEmpty(emp.EmployeeCode),
	}
	if record.NetPay.IsNegative() {
		record.Flags = append(record.Flags, payroll.FlagNegativeNetPay)
	}

	return record, nil
}

func (a *Aggregator) wageBase(emp employee.Employee, in LineInput) (basePay, error) {
	approved := attendance.ApprovedHours(in.Attendance, in.PeriodStart, in.PeriodEnd)
	b := basePay{
		baseSalary:    decimal.Zero,
		hoursRecorded: attendance.RecordedHours(in.Attendance, in.PeriodStart, in.PeriodEnd),
		hoursWorked:   approved,
		hoursApproved: approved,
	}

	switch emp.SalaryType {
	case employee.SalaryTypeHourly:
		rate, err := a.rate(emp, emp.HourlyRate, "hourly_rate", &b)
		if err != nil {
			return basePay{}, err
		}
		b.amount = money.Round(rate.Mul(approved))
		b.hourlyProxy = rate
	case employee.SalaryTypeDaily:
		rate, err := a.rate(emp, emp.DailyRate, "daily_rate", &b)
		if err != nil {
			return basePay{}, err
		}
		days := approved.Div(a.policy.HoursPerDay).Floor()
		b.amount = money.Round(rate.Mul(days))
		b.hourlyProxy = rate.Div(a.policy.HoursPerDay)
	default:
		return basePay{}, fmt.Errorf("%w: wage employee %s has salary type %q", employee.ErrInvalidSalaryType, emp.ID, emp.SalaryType)
	}
	return b, nil
}

// rate resolves a wage rate, applying the strict/lenient missing-rate policy.
func (a *Aggregator) rate(emp employee.Employee, rate *decimal.Decimal, field string, b *basePay) (decimal.Decimal, error) {
	if rate != nil {
		if rate.IsNegative() {
			return decimal.Zero, validator.ValidationErrors{{Field: field, Message: fmt.Sprintf("employee %s has a negative rate", emp.ID)}}
		}
		return *rate, nil
	}
	if a.policy.StrictRates {
		return decimal.Zero, validator.ValidationErrors{{Field: field, Message: fmt.Sprintf("employee %s has no %s configured", emp.ID, field)}}
	}
	b.flags = append(b.flags, payroll.FlagMissingRate)
	return decimal.Zero, nil
}

func (a *Aggregator) salaryBase(emp employee.Employee, in LineInput) (basePay, error) {
	if emp.BaseSalary == nil {
		return basePay{}, fmt.Errorf("%w: %s", employee.ErrEmployeeHasNoBaseSalary, emp.ID)
	}
	if emp.BaseSalary.IsNegative() {
		return basePay{}, validator.ValidationErrors{{Field: "base_salary", Message: fmt.Sprintf("employee %s has a negative base salary", emp.ID)}}
	}
	salary := *emp.BaseSalary
	hours := in.Adjustment.DaysWorked.Mul(a.policy.HoursPerDay)

	return basePay{
		baseSalary:    salary,
		amount:        money.Round(salary.Div(a.policy.divisor(in.Frequency))),
		hourlyProxy:   salary.Div(a.policy.StandardMonthlyHours),
		hoursRecorded: hours,
		hoursWorked:   hours,
		hoursApproved: hours,
	}, nil
}

// applyItems totals items against base. Items sharing a name are summed in
// the detail map.
func applyItems(items []payroll.PayItem, base decimal.Decimal) (decimal.Decimal, map[string]decimal.Decimal) {
	total := decimal.Zero
	detail := make(map[string]decimal.Decimal, len(items))
	for _, item := range items {
		var amount decimal.Decimal
		if item.Type == payroll.ItemTypePercentage {
			amount = money.Percent(base, item.Amount)
		} else {
			amount = money.Round(item.Amount)
		}
		total = total.Add(amount)
		detail[item.Name] = detail[item.Name].Add(amount)
	}
	return total, detail
}

func validateLineInput(errs *validator.ValidationErrors, in LineInput) {
	if in.PeriodEnd.Before(in.PeriodStart) {
		errs.Add("period_end", "must not be before period_start")
	}
	adj := in.Adjustment
	for field, v := range map[string]decimal.Decimal{
		"days_worked":    adj.DaysWorked,
		"overtime_hours": adj.OvertimeHours,
		"weekend_hours":  adj.WeekendHours,
		"holiday_hours":  adj.HolidayHours,
	} {
		if v.IsNegative() {
			errs.Add(field, "must be non-negative")
		}
	}
	for _, group := range [][]payroll.PayItem{in.Allowances, in.Bonuses, in.Deductions, adj.CustomDeductions} {
		for _, item := range group {
			if item.Amount.IsNegative() {
				errs.Add(item.Name, "amount must be non-negative")
			}
		}
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
