package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Session & tenant
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, tenant.ErrNoOrganization):
		Unauthorized(w, "No active organization membership")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Not found
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")

	case errors.Is(err, attendance.ErrExportTooLarge):
		BadRequest(w, "Too many records to export, narrow the filter", nil)

	// Client went away, nothing useful to send
	case errors.Is(err, context.Canceled):
		slog.Debug("request canceled", "error", err)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
