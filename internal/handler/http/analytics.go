package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/analytics"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/validator"
)

type AnalyticsHandler interface {
	// GetAnalytics returns every dashboard section in one response
	GetAnalytics(w http.ResponseWriter, r *http.Request)
	// GetDepartmentComparison ranks departments for the current month
	GetDepartmentComparison(w http.ResponseWriter, r *http.Request)
	// GetRecentActivity returns the newest attendance events
	GetRecentActivity(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{analyticsService: analyticsService}
}

// GetAnalytics handles GET /analytics
func (h *analyticsHandlerImpl) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.GetAnalytics(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDepartmentComparison handles GET /dashboard/department-comparison
func (h *analyticsHandlerImpl) GetDepartmentComparison(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.GetDepartmentComparison(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetRecentActivity handles GET /dashboard/recent-activity
func (h *analyticsHandlerImpl) GetRecentActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0 // service default
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if !validator.IsNumeric(l) || err != nil || n < 1 {
			response.HandleError(w, validator.ValidationErrors{{Field: "limit", Message: "limit must be a positive number"}})
			return
		}
		limit = n
	}

	result, err := h.analyticsService.GetRecentActivity(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
