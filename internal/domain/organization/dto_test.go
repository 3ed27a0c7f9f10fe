package organization

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSettingsRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       UpdateSettingsRequest
		wantField string
	}{
		{name: "valid", req: UpdateSettingsRequest{Timezone: "Asia/Jakarta", TimeFormat: "12h"}},
		{name: "utc", req: UpdateSettingsRequest{Timezone: "UTC", TimeFormat: "24h"}},
		{name: "unknown timezone", req: UpdateSettingsRequest{Timezone: "Mars/Olympus", TimeFormat: "24h"}, wantField: "timezone"},
		{name: "local rejected", req: UpdateSettingsRequest{Timezone: "Local", TimeFormat: "24h"}, wantField: "timezone"},
		{name: "bad format", req: UpdateSettingsRequest{Timezone: "UTC", TimeFormat: "36h"}, wantField: "time_format"},
		{name: "missing timezone", req: UpdateSettingsRequest{TimeFormat: "24h"}, wantField: "timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var errs validator.ValidationErrors
			require.True(t, errors.As(err, &errs))
			assert.Contains(t, errs.ToMap(), tt.wantField)
		})
	}
}

func TestSettings_Location(t *testing.T) {
	s := DefaultSettings("org")
	assert.Equal(t, "UTC", s.Location().String())

	s.Timezone = "Nowhere/City"
	assert.Equal(t, "UTC", s.Location().String())

	s.Timezone = "Asia/Tokyo"
	assert.Equal(t, "Asia/Tokyo", s.Location().String())
}
