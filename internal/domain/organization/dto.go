package organization

import (
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/timefmt"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/validator"
)

type SettingsResponse struct {
	OrganizationID string `json:"organizationId"`
	Timezone       string `json:"timezone"`
	TimeFormat     string `json:"time_format"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		OrganizationID: s.OrganizationID,
		Timezone:       s.Timezone,
		TimeFormat:     string(s.TimeFormat),
	}
}

type UpdateSettingsRequest struct {
	Timezone   string `json:"timezone" validate:"required,max=64"`
	TimeFormat string `json:"time_format" validate:"required,oneof=12h 24h"`
}

func (r *UpdateSettingsRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	// LoadLocation accepts names like "Local" that are meaningless server side
	if r.Timezone == "Local" {
		return validator.ValidationErrors{{Field: "timezone", Message: "timezone must be a valid IANA timezone"}}
	}
	if _, err := timefmt.Location(r.Timezone); err != nil {
		return validator.ValidationErrors{{Field: "timezone", Message: "timezone must be a valid IANA timezone"}}
	}
	return nil
}
