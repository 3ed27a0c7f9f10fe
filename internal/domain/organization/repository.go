package organization

import "context"

type OrganizationRepository interface {
	GetSettings(ctx context.Context, organizationID string) (Settings, error)
	UpdateSettings(ctx context.Context, settings Settings) (Settings, error)

	// ListDepartments returns active departments with their active member counts
	ListDepartments(ctx context.Context, organizationID string) ([]Department, error)

	CountActiveMembers(ctx context.Context, organizationID string) (int64, error)
}

type MembershipRepository interface {
	// FindActiveMembership returns the user's active membership in
	// organizationID, or the oldest active one when organizationID is empty.
	FindActiveMembership(ctx context.Context, userID string, organizationID string) (Member, error)
}
