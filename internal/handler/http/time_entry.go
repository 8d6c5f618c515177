package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
)

type TimeEntryHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetOpen(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type timeEntryHandlerImpl struct {
	timeEntryService timeentry.TimeEntryService
}

func NewTimeEntryHandler(timeEntryService timeentry.TimeEntryService) TimeEntryHandler {
	return &timeEntryHandlerImpl{
		timeEntryService: timeEntryService,
	}
}

// parseSelfieForm decodes the multipart 'data' JSON field into dst and returns the 'selfie' file.
func parseSelfieForm(w http.ResponseWriter, r *http.Request, dst interface{}) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, timeentry.MaxSelfieSize+(1<<20))
	if err := r.ParseMultipartForm(timeentry.MaxSelfieSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return nil, nil, false
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return nil, nil, false
	}

	if err := json.Unmarshal([]byte(dataJSON), dst); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return nil, nil, false
	}

	file, fileHeader, err := r.FormFile("selfie")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.BadRequest(w, "Selfie photo is required", nil)
			return nil, nil, false
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return nil, nil, false
	}

	return file, fileHeader, true
}

// CheckIn implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req timeentry.CheckInRequest
	file, fileHeader, ok := parseSelfieForm(w, r, &req)
	if !ok {
		return
	}
	defer file.Close()

	req.File = file
	req.FileHeader = fileHeader

	result, err := h.timeEntryService.CheckIn(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req timeentry.CheckOutRequest
	file, fileHeader, ok := parseSelfieForm(w, r, &req)
	if !ok {
		return
	}
	defer file.Close()

	req.File = file
	req.FileHeader = fileHeader

	result, err := h.timeEntryService.CheckOut(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// GetOpen implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) GetOpen(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.timeEntryService.GetOpenEntry(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMine implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	result, err := h.timeEntryService.ListMine(r.Context(), actor, timeEntryFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, listMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// List implements TimeEntryHandler.
func (h *timeEntryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	filter := timeEntryFilter(r)
	filter.EmployeeID = queryString(r, "employee_id")

	result, err := h.timeEntryService.List(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, listMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

func timeEntryFilter(r *http.Request) timeentry.TimeEntryFilter {
	var filter timeentry.TimeEntryFilter

	filter.BranchID = queryString(r, "branch_id")
	filter.From = queryString(r, "from")
	filter.To = queryString(r, "to")
	if open := queryBool(r, "open_only"); open != nil {
		filter.OpenOnly = *open
	}
	filter.Page, filter.Limit = pagination(r)

	return filter
}
