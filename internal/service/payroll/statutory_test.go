package payroll

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func flatPolicy() StatutoryPolicy {
	return StatutoryPolicy{
		NASSITEmployeeRate: d("0.05"),
		NASSITEmployerRate: d("0.10"),
		PAYEBrackets:       []Bracket{{Threshold: decimal.Zero, Rate: d("0.15")}},
	}
}

func TestComputeBreakdown_FlatBracket(t *testing.T) {
	calc, err := NewStatutoryCalculator(flatPolicy())
	require.NoError(t, err)

	got, err := calc.ComputeBreakdown(d("5000000"))
	require.NoError(t, err)

	assert.True(t, got.GrossSalary.Equal(d("5000000")))
	assert.True(t, got.NASSIT.Employee.Equal(d("250000")), got.NASSIT.Employee.String())
	assert.True(t, got.NASSIT.Employer.Equal(d("500000")))
	assert.True(t, got.PAYE.Tax.Equal(d("750000")), got.PAYE.Tax.String())
	assert.True(t, got.PAYE.EffectiveRate.Equal(d("0.15")))
	assert.True(t, got.TotalDeductions.Equal(d("1000000")))
	assert.True(t, got.NetSalary.Equal(d("4000000")))
	assert.True(t, got.EmployerCost.Equal(d("5500000")))
}

func TestComputeBreakdown_MarginalBrackets(t *testing.T) {
	calc, err := NewStatutoryCalculator(DefaultStatutoryPolicy())
	require.NoError(t, err)

	tests := []struct {
		name  string
		gross string
		tax   string
	}{
		{"zero", "0", "0"},
		{"inside exempt band", "600000", "0"},
		{"second band", "1000000", "60000"},
		{"top of second band", "1200000", "90000"},
		{"fourth band", "2000000", "260000"},
		{"top band", "3000000", "540000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.ComputeBreakdown(d(tt.gross))
			require.NoError(t, err)
			assert.True(t, got.PAYE.Tax.Equal(d(tt.tax)), "tax = %s, want %s", got.PAYE.Tax, tt.tax)
			assert.True(t, got.NetSalary.Add(got.TotalDeductions).Equal(got.GrossSalary))
		})
	}
}

func TestComputeBreakdown_EffectiveRateRounding(t *testing.T) {
	calc, err := NewStatutoryCalculator(DefaultStatutoryPolicy())
	require.NoError(t, err)

	got, err := calc.ComputeBreakdown(d("2000000"))
	require.NoError(t, err)
	assert.True(t, got.PAYE.EffectiveRate.Equal(d("0.13")))

	zero, err := calc.ComputeBreakdown(decimal.Zero)
	require.NoError(t, err)
	assert.True(t, zero.PAYE.EffectiveRate.IsZero())
}

func TestComputeBreakdown_Ceiling(t *testing.T) {
	policy := flatPolicy()
	ceiling := d("1000000")
	policy.NASSITCeiling = &ceiling

	calc, err := NewStatutoryCalculator(policy)
	require.NoError(t, err)

	got, err := calc.ComputeBreakdown(d("5000000"))
	require.NoError(t, err)
	assert.True(t, got.NASSIT.Employee.Equal(d("50000")))
	assert.True(t, got.NASSIT.Employer.Equal(d("100000")))
	// PAYE is not capped.
	assert.True(t, got.PAYE.Tax.Equal(d("750000")))
}

func TestComputeBreakdown_ExemptAmount(t *testing.T) {
	policy := flatPolicy()
	policy.PAYEExemptAmount = d("1000000")

	calc, err := NewStatutoryCalculator(policy)
	require.NoError(t, err)

	got, err := calc.ComputeBreakdown(d("800000"))
	require.NoError(t, err)
	assert.True(t, got.PAYE.TaxableIncome.IsZero())
	assert.True(t, got.PAYE.Tax.IsZero())
}

func TestComputeBreakdown_NegativeGross(t *testing.T) {
	calc, err := NewStatutoryCalculator(DefaultStatutoryPolicy())
	require.NoError(t, err)

	_, err = calc.ComputeBreakdown(d("-1"))
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "gross_salary")
}

func TestNewStatutoryCalculator_InvalidPolicy(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *StatutoryPolicy)
		field  string
	}{
		{"empty brackets", func(p *StatutoryPolicy) { p.PAYEBrackets = nil }, "paye_brackets"},
		{"rate above one", func(p *StatutoryPolicy) { p.NASSITEmployeeRate = d("1.5") }, "nassit_employee_rate"},
		{"negative employer rate", func(p *StatutoryPolicy) { p.NASSITEmployerRate = d("-0.1") }, "nassit_employer_rate"},
		{"unsorted brackets", func(p *StatutoryPolicy) {
			p.PAYEBrackets = []Bracket{{Threshold: d("100"), Rate: d("0.1")}, {Threshold: d("50"), Rate: d("0.2")}}
		}, "paye_brackets[1].threshold"},
		{"duplicate thresholds", func(p *StatutoryPolicy) {
			p.PAYEBrackets = []Bracket{{Threshold: d("0"), Rate: d("0.1")}, {Threshold: d("0"), Rate: d("0.2")}}
		}, "paye_brackets[1].threshold"},
		{"bracket rate out of range", func(p *StatutoryPolicy) {
			p.PAYEBrackets = []Bracket{{Threshold: d("0"), Rate: d("2")}}
		}, "paye_brackets[0].rate"},
		{"zero ceiling", func(p *StatutoryPolicy) {
			zero := decimal.Zero
			p.NASSITCeiling = &zero
		}, "nassit_ceiling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := DefaultStatutoryPolicy()
			tt.mutate(&policy)

			_, err := NewStatutoryCalculator(policy)
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs), "got %v", err)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestNewStatutoryCalculator_CopiesBrackets(t *testing.T) {
	policy := flatPolicy()
	calc, err := NewStatutoryCalculator(policy)
	require.NoError(t, err)

	policy.PAYEBrackets[0].Rate = d("0.5")

	got, err := calc.ComputeBreakdown(d("1000"))
	require.NoError(t, err)
	assert.True(t, got.PAYE.Tax.Equal(d("150")))
}
