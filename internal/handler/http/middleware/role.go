package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
)

// RequirePermission checks the caller's role in the resolved organization.
// It must run after RequireOrganization.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			member, err := tenant.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !user.HasPermission(member.Role, permission) {
				response.HandleError(w, user.ErrInsufficientPermissions)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
