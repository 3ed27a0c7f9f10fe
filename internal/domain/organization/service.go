package organization

import (
	"context"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
)

// SettingsProvider loads display preferences for an organization
type SettingsProvider interface {
	Settings(ctx context.Context, organizationID string) (Settings, error)
}

// MembershipResolver picks the caller's active organization
type MembershipResolver interface {
	ResolveMembership(ctx context.Context, userID string, requestedOrganizationID string) (tenant.Membership, error)
}

type OrganizationService interface {
	SettingsProvider
	MembershipResolver

	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
