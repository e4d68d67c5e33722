package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/user"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Override(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService attendance.TimesheetService
}

func NewTimesheetHandler(timesheetService attendance.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

// actor returns the authenticated caller or writes a 401.
func actor(w http.ResponseWriter, r *http.Request) (user.Actor, bool) {
	a, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.HandleError(w, jwt.ErrInvalidClaims)
		return user.Actor{}, false
	}
	return a, true
}

// approver exchanges the caller for the approval capability or writes a 403.
func approver(w http.ResponseWriter, r *http.Request) (user.Approver, bool) {
	a, ok := actor(w, r)
	if !ok {
		return user.Approver{}, false
	}
	granted, err := user.GrantApproval(a)
	if err != nil {
		response.HandleError(w, err)
		return user.Approver{}, false
	}
	return granted, true
}

func pagination(r *http.Request) (page, limit int) {
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}
	return page, limit
}

func optionalQuery(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// List implements TimesheetHandler.
func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	filter := attendance.TimesheetFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		StartDate:  optionalQuery(r, "start_date"),
		EndDate:    optionalQuery(r, "end_date"),
		Status:     optionalQuery(r, "status"),
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.timesheetService.ListTimesheets(r.Context(), a, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, meta(result.Page, result.Limit, result.TotalCount))
}

// Get implements TimesheetHandler.
func (h *timesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.timesheetService.GetTimesheet(r.Context(), a, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements TimesheetHandler.
func (h *timesheetHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	granted, ok := approver(w, r)
	if !ok {
		return
	}

	var req attendance.ApproveTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.timesheetService.Approve(r.Context(), granted, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet approved successfully", result)
}

// Override implements TimesheetHandler.
func (h *timesheetHandlerImpl) Override(w http.ResponseWriter, r *http.Request) {
	granted, ok := approver(w, r)
	if !ok {
		return
	}

	var req attendance.OverrideTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.timesheetService.Override(r.Context(), granted, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet hours overridden successfully", result)
}

// Reject implements TimesheetHandler.
func (h *timesheetHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	granted, ok := approver(w, r)
	if !ok {
		return
	}

	var req attendance.RejectTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.timesheetService.Reject(r.Context(), granted, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet rejected successfully", result)
}

func meta(page, limit int, total int64) *response.Meta {
	m := &response.Meta{Page: page, Limit: limit, TotalItems: total}
	if limit > 0 {
		m.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return m
}
