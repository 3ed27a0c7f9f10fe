package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// parseRecordFilter reads the list query parameters. Unparseable numbers are
// reported as validation errors rather than silently defaulted.
func parseRecordFilter(r *http.Request) (attendance.RecordFilter, error) {
	query := r.URL.Query()
	filter := attendance.RecordFilter{}

	optional := func(key string) *string {
		if v := query.Get(key); v != "" {
			return &v
		}
		return nil
	}

	filter.DateFrom = optional("dateFrom")
	filter.DateTo = optional("dateTo")
	filter.DepartmentID = optional("department")
	filter.Search = optional("search")

	// "all" is what the status dropdown sends when nothing is selected
	if status := query.Get("status"); status != "" && status != "all" {
		filter.Status = &status
	}

	var errs validator.ValidationErrors
	filter.Page = queryInt(&errs, "page", query.Get("page"))
	filter.Limit = queryInt(&errs, "limit", query.Get("limit"))

	return filter, errs.Err()
}

// queryInt parses an optional non-negative integer parameter; empty means 0
func queryInt(errs *validator.ValidationErrors, field, raw string) int {
	if raw == "" {
		return 0
	}
	if !validator.IsNumeric(raw) {
		errs.Add(field, field+" must be a positive number")
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(field, field+" is too large")
		return 0
	}
	return n
}

// List handles GET /dashboard/attendance-records
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRecordFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.Total,
		TotalPages: result.TotalPages,
	})
}

// Export handles GET /dashboard/attendance-records/export
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRecordFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.attendanceService.ExportRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		slog.ErrorContext(r.Context(), "Export write error", "error", err)
	}
}

// UpdateStatus handles PATCH /attendance-records/{id}/status
func (h *attendanceHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(r.Context(), "UpdateStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance status updated successfully", result)
}
