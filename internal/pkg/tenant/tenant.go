// Package tenant carries the caller's resolved organization membership
// through the request context. Every organization-scoped read and write
// takes its organization id from here, never from request input directly.
package tenant

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/user"
)

// ErrNoOrganization is the Unauthorized condition: there is no session or
// no active membership could be resolved for the caller.
var ErrNoOrganization = errors.New("no organization could be resolved for the caller")

// Membership is the caller's active membership in one organization
type Membership struct {
	OrganizationID string
	MemberID       string
	UserID         string
	Role           user.Role
}

type contextKey struct{}

// WithMembership stores m in ctx
func WithMembership(ctx context.Context, m Membership) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext returns the membership placed by the tenant middleware.
func FromContext(ctx context.Context) (Membership, error) {
	m, ok := ctx.Value(contextKey{}).(Membership)
	if !ok || m.OrganizationID == "" {
		return Membership{}, ErrNoOrganization
	}
	return m, nil
}

// OrganizationID is a shortcut for FromContext(ctx).OrganizationID
func OrganizationID(ctx context.Context) (string, error) {
	m, err := FromContext(ctx)
	if err != nil {
		return "", err
	}
	return m.OrganizationID, nil
}
