package http

import (
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Cycles
	CreateCycle(w http.ResponseWriter, r *http.Request)
	GetCycle(w http.ResponseWriter, r *http.Request)
	ListCycles(w http.ResponseWriter, r *http.Request)
	DeleteCycle(w http.ResponseWriter, r *http.Request)
	ActivateCycle(w http.ResponseWriter, r *http.Request)
	CloseCycle(w http.ResponseWriter, r *http.Request)

	// Calculation
	Calculate(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	ListDetails(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	reportService  report.ReportService
}

func NewPayrollHandler(payrollService payroll.PayrollService, reportService report.ReportService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
		reportService:  reportService,
	}
}

// ========== CYCLES ==========

func (h *payrollHandlerImpl) CreateCycle(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req payroll.CreateCycleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.payrollService.CreateCycle(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll cycle created successfully", result)
}

func (h *payrollHandlerImpl) GetCycle(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.GetCycle(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListCycles(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var filter payroll.CycleFilter
	filter.Status = queryString(r, "status")
	filter.Page, filter.Limit = pagination(r)

	result, err := h.payrollService.ListCycles(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, listMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

func (h *payrollHandlerImpl) DeleteCycle(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	if err := h.payrollService.DeleteCycle(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll cycle deleted successfully", nil)
}

func (h *payrollHandlerImpl) ActivateCycle(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.ActivateCycle(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll cycle activated", result)
}

func (h *payrollHandlerImpl) CloseCycle(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.CloseCycle(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll cycle closed", result)
}

// ========== CALCULATION ==========

func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.Calculate(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll calculated successfully", result)
}

// Reset clears a cycle's details so it can be recalculated.
func (h *payrollHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.Reset(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll cycle reset", result)
}

func (h *payrollHandlerImpl) ListDetails(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.ListDetails(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	data, err := h.reportService.ExportCycle(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, report.XLSXContentType, "payroll-"+id+".xlsx", data)
}
