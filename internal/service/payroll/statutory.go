package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Bracket is one PAYE band: Rate applies to income above Threshold up to the
// next band's threshold.
type Bracket struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// StatutoryPolicy holds the jurisdiction parameters. Nothing in the calculator
// is hard-coded to Sierra Leone; DefaultStatutoryPolicy carries those values.
type StatutoryPolicy struct {
	NASSITEmployeeRate decimal.Decimal
	NASSITEmployerRate decimal.Decimal
	NASSITCeiling      *decimal.Decimal // nil: contributions are uncapped
	PAYEBrackets       []Bracket        // ascending by threshold
	PAYEExemptAmount   decimal.Decimal  // subtracted from gross before PAYE
}

// DefaultStatutoryPolicy returns the shipped Sierra Leone monthly schedule.
func DefaultStatutoryPolicy() StatutoryPolicy {
	return StatutoryPolicy{
		NASSITEmployeeRate: decimal.RequireFromString("0.05"),
		NASSITEmployerRate: decimal.RequireFromString("0.10"),
		PAYEBrackets: []Bracket{
			{Threshold: decimal.Zero, Rate: decimal.Zero},
			{Threshold: decimal.NewFromInt(600000), Rate: decimal.RequireFromString("0.15")},
			{Threshold: decimal.NewFromInt(1200000), Rate: decimal.RequireFromString("0.20")},
			{Threshold: decimal.NewFromInt(1800000), Rate: decimal.RequireFromString("0.25")},
			{Threshold: decimal.NewFromInt(2400000), Rate: decimal.RequireFromString("0.30")},
		},
		PAYEExemptAmount: decimal.Zero,
	}
}

// Validate checks rates and the shape of the bracket table.
func (p StatutoryPolicy) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsRate(p.NASSITEmployeeRate) {
		errs.Add("nassit_employee_rate", "must be between 0 and 1")
	}
	if !validator.IsRate(p.NASSITEmployerRate) {
		errs.Add("nassit_employer_rate", "must be between 0 and 1")
	}
	if p.NASSITCeiling != nil && !p.NASSITCeiling.IsPositive() {
		errs.Add("nassit_ceiling", "must be positive when set")
	}
	if p.PAYEExemptAmount.IsNegative() {
		errs.Add("paye_exempt_amount", "must be non-negative")
	}
	if len(p.PAYEBrackets) == 0 {
		errs.Add("paye_brackets", "at least one bracket is required")
	}
	for i, b := range p.PAYEBrackets {
		if b.Threshold.IsNegative() {
			errs.Add(fmt.Sprintf("paye_brackets[%d].threshold", i), "must be non-negative")
		}
		if !validator.IsRate(b.Rate) {
			errs.Add(fmt.Sprintf("paye_brackets[%d].rate", i), "must be between 0 and 1")
		}
		if i > 0 && !b.Threshold.GreaterThan(p.PAYEBrackets[i-1].Threshold) {
			errs.Add(fmt.Sprintf("paye_brackets[%d].threshold", i), "thresholds must be strictly ascending")
		}
	}

	return errs.Err()
}

// StatutoryCalculator computes NASSIT and PAYE. It is pure and safe for
// concurrent use.
type StatutoryCalculator struct {
	policy StatutoryPolicy
}

func NewStatutoryCalculator(policy StatutoryPolicy) (*StatutoryCalculator, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid statutory policy: %w", err)
	}
	brackets := make([]Bracket, len(policy.PAYEBrackets))
	copy(brackets, policy.PAYEBrackets)
	policy.PAYEBrackets = brackets
	return &StatutoryCalculator{policy: policy}, nil
}

// ComputeBreakdown derives the statutory figures for one gross amount.
func (c *StatutoryCalculator) ComputeBreakdown(gross decimal.Decimal) (payroll.Breakdown, error) {
	if gross.IsNegative() {
		return payroll.Breakdown{}, validator.ValidationErrors{{Field: "gross_salary", Message: "must be non-negative"}}
	}
	gross = money.Round(gross)

	base := gross
	if c.policy.NASSITCeiling != nil && base.GreaterThan(*c.policy.NASSITCeiling) {
		base = *c.policy.NASSITCeiling
	}
	nassitEmployee := money.Round(base.Mul(c.policy.NASSITEmployeeRate))
	nassitEmployer := money.Round(base.Mul(c.policy.NASSITEmployerRate))

	taxable := gross.Sub(c.policy.PAYEExemptAmount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	tax := money.Round(c.marginalTax(taxable))

	effectiveRate := decimal.Zero
	if gross.IsPositive() {
		effectiveRate = tax.Div(gross).Round(money.RatePlaces)
	}

	totalDeductions := nassitEmployee.Add(tax)

	return payroll.Breakdown{
		GrossSalary: gross,
		NASSIT: payroll.NASSIT{
			Employee: nassitEmployee,
			Employer: nassitEmployer,
		},
		PAYE: payroll.PAYE{
			Tax:           tax,
			TaxableIncome: taxable,
			EffectiveRate: effectiveRate,
		},
		TotalDeductions: totalDeductions,
		NetSalary:       gross.Sub(totalDeductions),
		EmployerCost:    gross.Add(nassitEmployer),
	}, nil
}

// marginalTax sums rate × (portion of income inside each band).
func (c *StatutoryCalculator) marginalTax(taxable decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	brackets := c.policy.PAYEBrackets
	for i, b := range brackets {
		if !taxable.GreaterThan(b.Threshold) {
			break
		}
		upper := taxable
		if i+1 < len(brackets) && brackets[i+1].Threshold.LessThan(taxable) {
			upper = brackets[i+1].Threshold
		}
		tax = tax.Add(upper.Sub(b.Threshold).Mul(b.Rate))
	}
	return tax
}
