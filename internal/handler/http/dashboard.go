package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetStats returns the caller's own month-to-date counters
	GetStats(w http.ResponseWriter, r *http.Request)
	// GetMonthly returns organization counters for one month
	GetMonthly(w http.ResponseWriter, r *http.Request)
	// GetMonthlyTrend returns the last six months
	GetMonthlyTrend(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetStats handles GET /dashboard/stats
func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthly handles GET /dashboard/monthly
func (h *dashboardHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month") // format: YYYY-MM, default: current month

	result, err := h.dashboardService.GetMonthly(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlyTrend handles GET /dashboard/monthly-trend
func (h *dashboardHandlerImpl) GetMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetMonthlyTrend(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
