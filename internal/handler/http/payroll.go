package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	payrollservice "github.com/cmlabs-hris/payroll-engine/internal/service/payroll"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	Commit(w http.ResponseWriter, r *http.Request)

	// Run log
	GetRun(w http.ResponseWriter, r *http.Request)
	RetryRun(w http.ResponseWriter, r *http.Request)

	// Payroll Records
	GetPayrollRecord(w http.ResponseWriter, r *http.Request)
	ListPayrollRecords(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== PREVIEW / COMMIT ==========

func (h *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	var req payroll.GeneratePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	preview, err := h.payrollService.GeneratePreview(r.Context(), a, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payrollservice.ToPreviewResponse(preview))
}

func (h *payrollHandlerImpl) Commit(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	var req payroll.CommitPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CommitPreview(r.Context(), a, req)
	writeCommitResult(w, "Payroll committed", result, err)
}

// ========== RUN LOG ==========

func (h *payrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.GetRun(r.Context(), a, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) RetryRun(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.RetryFailed(r.Context(), a, chi.URLParam(r, "id"))
	writeCommitResult(w, "Payroll run retried", result, err)
}

// writeCommitResult sends 201 on full success and 207 with the per-line
// outcome when some lines failed.
func writeCommitResult(w http.ResponseWriter, message string, result payroll.CommitResult, err error) {
	var partial *payroll.PartialCommitError
	switch {
	case err == nil:
		response.Created(w, message, payrollservice.ToCommitResultResponse(result))
	case errors.As(err, &partial):
		response.MultiStatus(w, partial.Error(), payrollservice.ToCommitResultResponse(partial.Result))
	default:
		response.HandleError(w, err)
	}
}

// ========== PAYROLL RECORDS ==========

func (h *payrollHandlerImpl) GetPayrollRecord(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	result, err := h.payrollService.GetPayrollRecord(r.Context(), a, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayrollRecords(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	filter := payroll.PayrollFilter{
		RunID:       optionalQuery(r, "run_id"),
		EmployeeID:  optionalQuery(r, "employee_id"),
		PeriodStart: optionalQuery(r, "period_start"),
		PeriodEnd:   optionalQuery(r, "period_end"),
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.payrollService.ListPayrollRecords(r.Context(), a, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, meta(result.Page, result.Limit, result.TotalCount))
}
