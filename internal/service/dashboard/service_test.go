package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/timefmt"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrg = "11111111-1111-1111-1111-111111111111"

type fakeDashboardRepo struct {
	counts      map[string]attendance.StatusCounts // keyed by "from..to"
	countsErr   error
	summary     dashboard.MemberSummary
	day         *attendance.Record
	monthly     []dashboard.MonthCounts
	summaryArgs []string
	monthlyArgs []string
}

func (f *fakeDashboardRepo) GetStatusCounts(ctx context.Context, organizationID string, from, to time.Time) (attendance.StatusCounts, error) {
	if f.countsErr != nil {
		return attendance.StatusCounts{}, f.countsErr
	}
	return f.counts[from.Format("2006-01-02")+".."+to.Format("2006-01-02")], nil
}

func (f *fakeDashboardRepo) GetMemberSummary(ctx context.Context, organizationID, memberID string, from, to time.Time) (dashboard.MemberSummary, error) {
	f.summaryArgs = []string{organizationID, memberID, from.Format("2006-01-02"), to.Format("2006-01-02")}
	return f.summary, nil
}

func (f *fakeDashboardRepo) GetMemberDay(ctx context.Context, organizationID, memberID string, date time.Time) (attendance.Record, error) {
	if f.day == nil {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return *f.day, nil
}

func (f *fakeDashboardRepo) GetMonthlyCounts(ctx context.Context, organizationID string, from, to time.Time) ([]dashboard.MonthCounts, error) {
	f.monthlyArgs = []string{from.Format("2006-01-02"), to.Format("2006-01-02")}
	return f.monthly, nil
}

type fakeSettings struct {
	settings organization.Settings
}

func (f fakeSettings) Settings(ctx context.Context, organizationID string) (organization.Settings, error) {
	return f.settings, nil
}

func tenantCtx() context.Context {
	return tenant.WithMembership(context.Background(), tenant.Membership{OrganizationID: testOrg, MemberID: "m-7", UserID: "u-7"})
}

func newService(repo *fakeDashboardRepo, tz string, now time.Time) *DashboardServiceImpl {
	svc := NewDashboardService(repo, fakeSettings{settings: organization.Settings{OrganizationID: testOrg, Timezone: tz, TimeFormat: timefmt.Format12h}})
	svc.now = func() time.Time { return now }
	return svc
}

func TestGetStats(t *testing.T) {
	checkIn := time.Date(2025, 3, 31, 17, 20, 0, 0, time.UTC) // 02:20 on 1 April in Tokyo
	late := 20
	repo := &fakeDashboardRepo{
		summary: dashboard.MemberSummary{
			Counts:           attendance.StatusCounts{Present: 2, Late: 1, Absent: 1},
			WorkMinutes:      1440,
			LateMinutesTotal: 45,
			LateRecords:      2,
		},
		day: &attendance.Record{
			Status:         attendance.StatusLate,
			AttendanceDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			CheckInTime:    &checkIn,
			LateMinutes:    &late,
		},
	}
	svc := newService(repo, "Asia/Tokyo", time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC))

	stats, err := svc.GetStats(tenantCtx())
	require.NoError(t, err)

	assert.Equal(t, "2025-04", stats.Month)
	assert.Equal(t, []string{testOrg, "m-7", "2025-04-01", "2025-04-01"}, repo.summaryArgs)
	assert.Equal(t, int64(4), stats.TotalDays)
	assert.Equal(t, 75.0, stats.AttendanceRate)
	assert.Equal(t, 23, stats.AvgLateMinutes)
	assert.Equal(t, int64(1440), stats.WorkMinutes)

	require.NotNil(t, stats.Today)
	assert.Equal(t, "late", stats.Today.Status)
	assert.Equal(t, "02:20 AM", stats.Today.CheckInDisplay)
	assert.Equal(t, timefmt.Placeholder, stats.Today.CheckOutDisplay)
	assert.Equal(t, "2025-03-31T17:20:00Z", *stats.Today.CheckInTime)
}

func TestGetStats_NoRecordToday(t *testing.T) {
	svc := newService(&fakeDashboardRepo{}, "UTC", time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC))

	stats, err := svc.GetStats(tenantCtx())
	require.NoError(t, err)
	assert.Nil(t, stats.Today)
	assert.Zero(t, stats.AttendanceRate)
}

func TestGetStats_NoOrganization(t *testing.T) {
	svc := newService(&fakeDashboardRepo{}, "UTC", time.Now())

	_, err := svc.GetStats(context.Background())
	assert.ErrorIs(t, err, tenant.ErrNoOrganization)
}

func TestGetMonthly(t *testing.T) {
	repo := &fakeDashboardRepo{counts: map[string]attendance.StatusCounts{
		"2025-03-01..2025-03-31": {Present: 6, Late: 3, Absent: 1, Excused: 2},
		"2025-02-01..2025-02-28": {Present: 5, Late: 2},
	}}
	svc := newService(repo, "UTC", time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC))

	resp, err := svc.GetMonthly(tenantCtx(), "2025-03")
	require.NoError(t, err)

	assert.Equal(t, "2025-03", resp.Month)
	assert.Equal(t, int64(12), resp.Total)
	assert.Equal(t, 60.0, resp.AttendanceRate)
	assert.Equal(t, int64(3), resp.LateComparison.CurrentMonth)
	assert.Equal(t, int64(2), resp.LateComparison.PreviousMonth)
	assert.Equal(t, 50, resp.LateComparison.PercentChange)
}

func TestGetMonthly_DefaultsToCurrentMonth(t *testing.T) {
	repo := &fakeDashboardRepo{counts: map[string]attendance.StatusCounts{
		"2024-03-01..2024-03-31": {Late: 4},
	}}
	svc := newService(repo, "UTC", time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC))

	resp, err := svc.GetMonthly(tenantCtx(), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", resp.Month)
	assert.Equal(t, 100, resp.LateComparison.PercentChange)
}

func TestGetMonthly_Errors(t *testing.T) {
	svc := newService(&fakeDashboardRepo{}, "UTC", time.Now())
	_, err := svc.GetMonthly(tenantCtx(), "March")
	var errs validator.ValidationErrors
	assert.True(t, errors.As(err, &errs))

	failing := newService(&fakeDashboardRepo{countsErr: errors.New("down")}, "UTC", time.Now())
	_, err = failing.GetMonthly(tenantCtx(), "")
	assert.EqualError(t, err, "down")
}

func TestGetMonthlyTrend(t *testing.T) {
	repo := &fakeDashboardRepo{monthly: []dashboard.MonthCounts{
		{Year: 2025, Month: time.January, Counts: attendance.StatusCounts{Present: 3, Late: 1}},
	}}
	svc := newService(repo, "UTC", time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC))

	points, err := svc.GetMonthlyTrend(tenantCtx())
	require.NoError(t, err)

	require.Len(t, points, dashboard.MonthlyTrendMonths)
	assert.Equal(t, []string{"2024-09-01", "2025-02-28"}, repo.monthlyArgs)
	assert.Equal(t, "2024-09", points[0].Month)
	assert.Equal(t, int64(4), points[4].Attendance)
	assert.Equal(t, int64(1), points[4].Late)
}
