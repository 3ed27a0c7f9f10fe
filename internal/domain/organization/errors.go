package organization

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrMembershipNotFound   = errors.New("no active membership in organization")
)
