package analytics

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/timefmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func day(s string) time.Time {
	d, _ := time.Parse(dateLayout, s)
	return d
}

func record(id string, status attendance.Status, date string) attendance.Record {
	return attendance.Record{ID: id, Status: status, AttendanceDate: day(date)}
}

func TestComputeKPIs_Scenario(t *testing.T) {
	in := []attendance.Record{
		{ID: "1", Status: attendance.StatusPresent, CheckInTime: ptr(mustTime(t, "2025-01-01T09:00:00Z"))},
		{ID: "2", Status: attendance.StatusLate, CheckInTime: ptr(mustTime(t, "2025-01-01T09:30:00Z")), LateMinutes: ptr(30)},
	}

	kpi := ComputeKPIs(in, 5)

	assert.Equal(t, int64(1), kpi.Present)
	assert.Equal(t, int64(1), kpi.Late)
	assert.Equal(t, int64(0), kpi.Absent)
	assert.Equal(t, 50.0, kpi.AttendanceRate)
	assert.Equal(t, 50.0, kpi.OnTimeRate)
	assert.Equal(t, 30, kpi.AvgLateMinutes)
	assert.Equal(t, int64(5), kpi.TotalMembers)
	assert.Equal(t, int64(2), kpi.Total)
}

func TestComputeKPIs_RoundsToOneDecimal(t *testing.T) {
	in := []attendance.Record{
		record("1", attendance.StatusPresent, "2025-01-01"),
		record("2", attendance.StatusAbsent, "2025-01-01"),
		record("3", attendance.StatusAbsent, "2025-01-01"),
		record("4", attendance.StatusExcused, "2025-01-01"),
	}
	kpi := ComputeKPIs(in, 0)
	assert.Equal(t, 33.3, kpi.AttendanceRate)
	assert.Equal(t, 100.0, kpi.OnTimeRate)
	assert.Equal(t, int64(1), kpi.Excused)
}

func TestComputeKPIs_Empty(t *testing.T) {
	kpi := ComputeKPIs(nil, 0)
	assert.Zero(t, kpi.Present)
	assert.Zero(t, kpi.Total)
	assert.Zero(t, kpi.AttendanceRate)
	assert.Zero(t, kpi.OnTimeRate)
	assert.Zero(t, kpi.AvgLateMinutes)
}

func TestComputeKPIs_RateAlwaysInRange(t *testing.T) {
	statuses := attendance.Statuses
	for n := 0; n < 40; n++ {
		var in []attendance.Record
		for i := 0; i <= n; i++ {
			in = append(in, record("x", statuses[(i*7+n)%len(statuses)], "2025-01-01"))
		}
		kpi := ComputeKPIs(in, 0)
		assert.GreaterOrEqual(t, kpi.AttendanceRate, 0.0)
		assert.LessOrEqual(t, kpi.AttendanceRate, 100.0)
		assert.GreaterOrEqual(t, kpi.OnTimeRate, 0.0)
		assert.LessOrEqual(t, kpi.OnTimeRate, 100.0)
	}
}

func TestHourlyHeatmap_UsesLocalHour(t *testing.T) {
	jakarta, err := timefmt.Location("Asia/Jakarta")
	require.NoError(t, err)

	in := []attendance.Record{
		{
			Status:       attendance.StatusPresent,
			CheckInTime:  ptr(mustTime(t, "2025-01-01T01:15:00Z")), // 08:15 WIB
			CheckOutTime: ptr(mustTime(t, "2025-01-01T10:05:00Z")), // 17:05 WIB
		},
		{Status: attendance.StatusAbsent},
	}

	points := HourlyHeatmap(in, jakarta)
	require.Len(t, points, 24)
	assert.Equal(t, int64(1), points[8].CheckIn)
	assert.Equal(t, int64(0), points[1].CheckIn)
	assert.Equal(t, int64(1), points[17].CheckOut)
	assert.Equal(t, "08:00", points[8].Label)
}

func TestHourlyHeatmap_Empty(t *testing.T) {
	points := HourlyHeatmap(nil, nil)
	require.Len(t, points, 24)
	for h, p := range points {
		assert.Equal(t, h, p.Hour)
		assert.Zero(t, p.CheckIn)
		assert.Zero(t, p.CheckOut)
	}
}

func TestTrend(t *testing.T) {
	today := day("2025-03-10")
	in := []attendance.Record{
		record("1", attendance.StatusPresent, "2025-03-10"),
		record("2", attendance.StatusLate, "2025-03-10"),
		record("3", attendance.StatusAbsent, "2025-03-10"),
		record("4", attendance.StatusEarlyLeave, "2025-03-10"),
		record("5", attendance.StatusPresent, "2025-02-09"), // first day of the window
		record("6", attendance.StatusPresent, "2025-02-08"), // outside
	}

	points := Trend(in, today, TrendDays)

	require.Len(t, points, 30)
	assert.Equal(t, "2025-02-09", points[0].Date)
	assert.Equal(t, "2025-03-10", points[29].Date)
	assert.Equal(t, "Mar 10", points[29].Label)

	last := points[29]
	assert.Equal(t, int64(4), last.Total)
	assert.Equal(t, 75.0, last.Rate)
	assert.Equal(t, 100.0, points[0].Rate)
	assert.Equal(t, 0.0, points[15].Rate)
}

func TestTrend_EmptyIsGapFree(t *testing.T) {
	points := Trend(nil, day("2024-03-01"), TrendDays)
	require.Len(t, points, 30)
	assert.Equal(t, "2024-02-01", points[0].Date) // leap year
	for i, p := range points {
		assert.Zero(t, p.Rate)
		assert.Zero(t, p.Total)
		if i > 0 {
			assert.Equal(t, day(points[i-1].Date).AddDate(0, 0, 1).Format(dateLayout), p.Date)
		}
	}
}

func TestRankDepartments(t *testing.T) {
	departments := []organization.Department{
		{ID: "d-eng", Name: "Engineering", MemberCount: 4},
		{ID: "d-ops", Name: "Operations", MemberCount: 2},
		{ID: "d-fin", Name: "Finance", MemberCount: 3},
		{ID: "d-hr", Name: "HR", MemberCount: 1},
	}
	withDept := func(r attendance.Record, id string) attendance.Record {
		r.DepartmentID = &id
		return r
	}
	in := []attendance.Record{
		withDept(record("1", attendance.StatusPresent, "2025-01-02"), "d-eng"),
		withDept(record("2", attendance.StatusAbsent, "2025-01-02"), "d-eng"),
		withDept(record("3", attendance.StatusPresent, "2025-01-02"), "d-ops"),
		withDept(record("4", attendance.StatusLate, "2025-01-02"), "d-fin"),
		withDept(record("5", attendance.StatusAbsent, "2025-01-02"), "d-fin"),
		record("6", attendance.StatusPresent, "2025-01-02"),
	}

	stats := RankDepartments(in, departments)

	require.Len(t, stats, 4)
	assert.Equal(t, "Operations", stats[0].Department)
	assert.Equal(t, 100.0, stats[0].AttendanceRate)
	// Engineering and Finance tie at 50, alphabetical order
	assert.Equal(t, "Engineering", stats[1].Department)
	assert.Equal(t, "Finance", stats[2].Department)
	assert.Equal(t, "HR", stats[3].Department)
	assert.Equal(t, int64(0), stats[3].TotalRecords)
	assert.Equal(t, int64(4), stats[1].MemberCount)

	for i := range stats {
		assert.Equal(t, i+1, stats[i].Rank)
		if i > 0 {
			assert.LessOrEqual(t, stats[i].AttendanceRate, stats[i-1].AttendanceRate)
		}
	}
}

func TestRankDepartments_UnknownDepartmentUsesRecordName(t *testing.T) {
	id := "d-new"
	r := record("1", attendance.StatusPresent, "2025-01-02")
	r.DepartmentID = &id
	r.DepartmentName = ptr("Research")

	stats := RankDepartments([]attendance.Record{r}, nil)

	require.Len(t, stats, 1)
	assert.Equal(t, "Research", stats[0].Department)
	assert.Equal(t, 1, stats[0].Rank)
}

func TestRankDepartments_CaseVariantNamesAreDeterministic(t *testing.T) {
	departments := []organization.Department{
		{ID: "b", Name: "sales"},
		{ID: "a", Name: "Sales"},
		{ID: "c", Name: "Sales"},
	}

	for i := 0; i < 100; i++ {
		stats := RankDepartments(nil, departments)
		require.Len(t, stats, 3)
		// uppercase sorts before lowercase, equal names fall back to id
		assert.Equal(t, "a", stats[0].DepartmentID)
		assert.Equal(t, "c", stats[1].DepartmentID)
		assert.Equal(t, "b", stats[2].DepartmentID)
	}
}

func TestStatusSlices(t *testing.T) {
	slices := StatusSlices(attendance.StatusCounts{Present: 3, Absent: 1, EarlyLeave: 2})

	require.Len(t, slices, 3)
	assert.Equal(t, "present", slices[0].Status)
	assert.Equal(t, "#10b981", slices[0].Color)
	assert.Equal(t, "absent", slices[1].Status)
	assert.Equal(t, "Early Leave", slices[2].Name)

	assert.Empty(t, StatusSlices(attendance.StatusCounts{}))
}

func TestActivities(t *testing.T) {
	settings := organization.Settings{Timezone: "Asia/Jakarta", TimeFormat: timefmt.Format12h}
	in := []attendance.Record{
		{ID: "a", Status: attendance.StatusPresent, MemberName: ptr("Ada"), CheckInTime: ptr(mustTime(t, "2025-01-01T01:00:00Z"))},
		{ID: "b", Status: attendance.StatusLate, MemberName: ptr("Bo"), CheckInTime: ptr(mustTime(t, "2025-01-01T02:30:00Z")), LateMinutes: ptr(30)},
		{ID: "c", Status: attendance.StatusAbsent, CreatedAt: mustTime(t, "2024-12-31T23:00:00Z")},
	}

	items := Activities(in, settings, 2)

	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "check_in_late", items[0].Type)
	assert.Equal(t, "09:30 AM", items[0].DisplayTime)
	assert.Equal(t, "2025-01-01T02:30:00Z", items[0].Time)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, "N/A", items[1].Department)

	all := Activities(in, settings, 0)
	require.Len(t, all, 3)
	assert.Equal(t, "absent", all[2].Type)
	assert.Equal(t, "Unknown", all[2].MemberName)
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, 100, PercentChange(5, 0))
	assert.Equal(t, 0, PercentChange(0, 0))
	assert.Equal(t, 50, PercentChange(3, 2))
	assert.Equal(t, -50, PercentChange(1, 2))
	assert.Equal(t, -100, PercentChange(0, 4))
}

func TestMonthlyTrend(t *testing.T) {
	counts := []dashboard.MonthCounts{
		{Year: 2024, Month: time.December, Counts: attendance.StatusCounts{Present: 10, Late: 2, Absent: 1}},
		{Year: 2025, Month: time.March, Counts: attendance.StatusCounts{Present: 4, Late: 4}},
	}

	points := MonthlyTrend(counts, day("2025-03-18"), 6)

	require.Len(t, points, 6)
	assert.Equal(t, "2024-10", points[0].Month)
	assert.Equal(t, "2025-03", points[5].Month)
	assert.Equal(t, "Mar 2025", points[5].Label)
	assert.Equal(t, int64(12), points[2].Attendance)
	assert.Equal(t, int64(2), points[2].Late)
	assert.Equal(t, int64(8), points[5].Attendance)
	assert.Zero(t, points[4].Attendance)
}
