package organization

import (
	"time"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/timefmt"
)

// Settings are the organization's display preferences
type Settings struct {
	OrganizationID string
	Timezone       string
	TimeFormat     timefmt.TimeFormat
	UpdatedAt      time.Time
}

// DefaultSettings is used until the organization saves its own
func DefaultSettings(organizationID string) Settings {
	return Settings{
		OrganizationID: organizationID,
		Timezone:       "UTC",
		TimeFormat:     timefmt.Format24h,
	}
}

// Location returns the settings timezone, falling back to UTC
func (s Settings) Location() *time.Location {
	return timefmt.LocationOrUTC(s.Timezone)
}

type Department struct {
	ID          string
	Name        string
	MemberCount int64
}

// Member is a user's membership in one organization
type Member struct {
	ID             string
	OrganizationID string
	UserID         string
	DepartmentID   *string
	EmployeeCode   *string
	Role           user.Role
	IsActive       bool
	CreatedAt      time.Time
}
