package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func TestFormat(t *testing.T) {
	instant := time.Date(2025, 1, 1, 14, 5, 0, 0, time.UTC)

	cases := []struct {
		name string
		tz   string
		f    TimeFormat
		want string
	}{
		{"utc 24h", "UTC", Format24h, "14:05"},
		{"utc 12h", "UTC", Format12h, "02:05 PM"},
		{"jakarta 24h", "Asia/Jakarta", Format24h, "21:05"},
		{"jakarta 12h", "Asia/Jakarta", Format12h, "09:05 PM"},
		{"empty tz is utc", "", Format24h, "14:05"},
		{"unknown format falls back to 24h", "UTC", TimeFormat("iso"), "14:05"},
		{"unknown tz", "Mars/Olympus", Format24h, Placeholder},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Format(&instant, c.tz, c.f))
		})
	}
}

func TestFormat_NilAndZero(t *testing.T) {
	assert.Equal(t, Placeholder, Format(nil, "UTC", Format24h))
	assert.Equal(t, Placeholder, Format(&time.Time{}, "UTC", Format24h))
}

func TestFormat_DoesNotMutateInput(t *testing.T) {
	instant := time.Date(2025, 6, 1, 1, 30, 0, 0, time.UTC)
	original := instant
	_ = Format(&instant, "America/New_York", Format12h)
	assert.True(t, original.Equal(instant))
	assert.Equal(t, time.UTC, instant.Location())
}

func TestFormatRFC3339(t *testing.T) {
	assert.Equal(t, "09:30 AM", FormatRFC3339("2025-01-01T09:30:00Z", "UTC", Format12h))
	assert.Equal(t, "16:30", FormatRFC3339("2025-01-01T09:30:00Z", "Asia/Jakarta", Format24h))
	assert.Equal(t, Placeholder, FormatRFC3339("not-a-time", "UTC", Format24h))
	assert.Equal(t, Placeholder, FormatRFC3339("", "UTC", Format24h))
}

func TestRFC3339Ptr(t *testing.T) {
	assert.Nil(t, RFC3339Ptr(nil))

	jakarta, err := Location("Asia/Jakarta")
	require.NoError(t, err)
	got := RFC3339Ptr(ptr(time.Date(2025, 3, 10, 8, 30, 0, 0, jakarta)))
	require.NotNil(t, got)
	assert.Equal(t, "2025-03-10T01:30:00Z", *got)
}

func TestParseTimeFormat(t *testing.T) {
	f, err := ParseTimeFormat("12H")
	require.NoError(t, err)
	assert.Equal(t, Format12h, f)

	f, err = ParseTimeFormat(" 24h ")
	require.NoError(t, err)
	assert.Equal(t, Format24h, f)

	_, err = ParseTimeFormat("military")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 23, 59, 42, 0, time.UTC),
		time.Date(2025, 7, 15, 0, 1, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC),
	}
	zones := []string{"UTC", "Asia/Jakarta", "America/New_York", "Asia/Kolkata"}
	formats := []TimeFormat{Format12h, Format24h}

	for _, instant := range instants {
		for _, tz := range zones {
			for _, f := range formats {
				loc, err := Location(tz)
				require.NoError(t, err)

				display := Format(ptr(instant), tz, f)
				parsed, err := Parse(display, instant.In(loc), tz, f)
				require.NoError(t, err, "%s %s %s", instant, tz, f)
				assert.True(t, instant.Truncate(time.Minute).Equal(parsed),
					"round trip %s in %s (%s): got %s via %q", instant, tz, f, parsed, display)
			}
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("25:99", time.Now(), "UTC", Format24h)
	assert.Error(t, err)

	_, err = Parse("10:00", time.Now(), "Nowhere/Zone", Format24h)
	assert.Error(t, err)
}

func TestLocalDate(t *testing.T) {
	loc, err := Location("Asia/Jakarta")
	require.NoError(t, err)

	// 18:00 UTC on Jan 1 is already Jan 2 in Jakarta (UTC+7)
	got := LocalDate(time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), got)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), LocalDate(time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC), nil))
}

func TestLocationOrUTC(t *testing.T) {
	assert.Equal(t, time.UTC, LocationOrUTC("Bogus/Zone"))
	assert.Equal(t, "Asia/Jakarta", LocationOrUTC("Asia/Jakarta").String())
}
