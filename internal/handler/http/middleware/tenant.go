package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

const (
	OrganizationQueryParam = "organizationId"
	OrganizationCookie     = "org_id"
)

// requestedOrganization returns the organization the caller asked for, or ""
// to fall back to their first active membership.
func requestedOrganization(r *http.Request) string {
	if id := strings.TrimSpace(r.URL.Query().Get(OrganizationQueryParam)); id != "" {
		return id
	}
	if c, err := r.Cookie(OrganizationCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// RequireOrganization resolves the caller's active membership and stores it
// in the request context for every downstream service.
func RequireOrganization(resolver organization.MembershipResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, tenant.ErrNoOrganization)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, tenant.ErrNoOrganization)
				return
			}

			orgID := requestedOrganization(r)
			if orgID != "" && !validator.IsValidUUID(orgID) {
				response.HandleError(w, tenant.ErrNoOrganization)
				return
			}

			membership, err := resolver.ResolveMembership(r.Context(), userID, orgID)
			if err != nil {
				if !errors.Is(err, tenant.ErrNoOrganization) {
					slog.ErrorContext(r.Context(), "membership resolution failed", "user_id", userID, "error", err)
				}
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(tenant.WithMembership(r.Context(), membership)))
		})
	}
}
