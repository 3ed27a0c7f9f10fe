package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/handler/http/response"
)

type OrganizationHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type organizationHandlerImpl struct {
	organizationService organization.OrganizationService
}

func NewOrganizationHandler(organizationService organization.OrganizationService) OrganizationHandler {
	return &organizationHandlerImpl{organizationService: organizationService}
}

// GetSettings handles GET /organization/settings
func (h *organizationHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.organizationService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSettings handles PUT /organization/settings
func (h *organizationHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req organization.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(r.Context(), "UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.organizationService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Organization settings updated successfully", result)
}
