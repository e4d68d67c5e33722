package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

const dateLayout = "2006-01-02"

// ToRecordResponse converts a record (draft or persisted) to its JSON shape.
func ToRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	return payroll.PayrollRecordResponse{
		ID:               r.ID,
		RunID:            r.RunID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		EmployeeCode:     r.EmployeeCode,
		EmploymentType:   r.EmploymentType,
		PeriodStart:      r.PeriodStart.Format(dateLayout),
		PeriodEnd:        r.PeriodEnd.Format(dateLayout),
		PaymentDate:      r.PaymentDate.Format(dateLayout),
		Frequency:        string(r.Frequency),
		BaseSalary:       r.BaseSalary,
		ProratedSalary:   r.ProratedSalary,
		HoursRecorded:    r.HoursRecorded,
		HoursWorked:      r.HoursWorked,
		HoursApproved:    r.HoursApproved,
		TotalAllowances:  r.TotalAllowances,
		TotalBonuses:     r.TotalBonuses,
		OvertimePay:      r.OvertimePay,
		WeekendPay:       r.WeekendPay,
		HolidayPay:       r.HolidayPay,
		GrossPay:         r.GrossPay,
		NASSITEmployee:   r.NASSITEmployee,
		NASSITEmployer:   r.NASSITEmployer,
		PAYETax:          r.PAYETax,
		TaxableIncome:    r.TaxableIncome,
		EffectiveTaxRate: r.EffectiveTaxRate,
		CustomDeductions: r.CustomDeductions,
		TotalDeductions:  r.TotalDeductions,
		NetPay:           r.NetPay,
		EmployerCost:     r.EmployerCost,
		AllowancesDetail: r.AllowancesDetail,
		BonusesDetail:    r.BonusesDetail,
		DeductionsDetail: r.DeductionsDetail,
		Status:           string(r.Status),
		Exceptional:      r.Exceptional(),
		Flags:            r.Flags,
	}
}

func ToPreviewResponse(p payroll.Preview) payroll.PreviewResponse {
	lines := make([]payroll.PayrollRecordResponse, 0, len(p.Lines))
	for _, line := range p.Lines {
		lines = append(lines, ToRecordResponse(line))
	}
	return payroll.PreviewResponse{Lines: lines, Totals: p.Totals}
}

func ToCommitResultResponse(r payroll.CommitResult) payroll.CommitResultResponse {
	resp := payroll.CommitResultResponse{
		RunID:     r.RunID,
		Succeeded: r.Succeeded,
		Failed:    make([]payroll.CommitFailureResponse, 0, len(r.Failed)),
		Records:   make([]payroll.PayrollRecordResponse, 0, len(r.Records)),
	}
	if resp.Succeeded == nil {
		resp.Succeeded = []int{}
	}
	for _, f := range r.Failed {
		resp.Failed = append(resp.Failed, payroll.CommitFailureResponse{
			Index:      f.Index,
			EmployeeID: f.EmployeeID,
			Error:      f.Err.Error(),
		})
	}
	for _, rec := range r.Records {
		resp.Records = append(resp.Records, ToRecordResponse(rec))
	}
	return resp
}

func ToRunResponse(run payroll.Run, entries []payroll.RunEntry) payroll.RunResponse {
	resp := payroll.RunResponse{
		ID:          run.ID,
		PeriodStart: run.PeriodStart.Format(dateLayout),
		PeriodEnd:   run.PeriodEnd.Format(dateLayout),
		Frequency:   string(run.Frequency),
		Status:      string(run.Status),
		LineCount:   run.LineCount,
		CreatedBy:   run.CreatedBy,
		CreatedAt:   run.CreatedAt.Format(time.RFC3339),
		Entries:     make([]payroll.RunEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, payroll.RunEntryResponse{
			LineIndex:  e.LineIndex,
			EmployeeID: e.EmployeeID,
			Status:     string(e.Status),
			RecordID:   e.RecordID,
			LastError:  e.LastError,
			Attempts:   e.Attempts,
		})
	}
	return resp
}
