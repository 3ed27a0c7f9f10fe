package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/analytics"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/timefmt"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"

	// TrendDays is the length of the daily trend series
	TrendDays = 30
)

var statusColors = map[attendance.Status]string{
	attendance.StatusPresent:    "#10b981",
	attendance.StatusLate:       "#f59e0b",
	attendance.StatusAbsent:     "#ef4444",
	attendance.StatusExcused:    "#6366f1",
	attendance.StatusEarlyLeave: "#8b5cf6",
}

var statusNames = map[attendance.Status]string{
	attendance.StatusPresent:    "Present",
	attendance.StatusLate:       "Late",
	attendance.StatusAbsent:     "Absent",
	attendance.StatusExcused:    "Excused",
	attendance.StatusEarlyLeave: "Early Leave",
}

var activityTypes = map[attendance.Status]string{
	attendance.StatusPresent:    "check_in",
	attendance.StatusLate:       "check_in_late",
	attendance.StatusAbsent:     "absent",
	attendance.StatusExcused:    "excused",
	attendance.StatusEarlyLeave: "check_out_early",
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Percent returns part/whole*100 rounded to one decimal and clamped to
// [0, 100]. A zero whole yields 0.
func Percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return clampPercent(round1(float64(part) / float64(whole) * 100))
}

// PercentChange compares two counters as a whole percent. Growth from zero
// is reported as 100.
func PercentChange(current, previous int64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// CountStatuses tallies records by status
func CountStatuses(records []attendance.Record) attendance.StatusCounts {
	var counts attendance.StatusCounts
	for _, r := range records {
		counts.Add(r.Status)
	}
	return counts
}

// ComputeKPIs builds the headline counters. Attendance rate is
// present / (present + absent + late).
func ComputeKPIs(records []attendance.Record, totalMembers int64) analytics.KPISet {
	counts := CountStatuses(records)

	var lateSum, lateN int64
	for _, r := range records {
		if r.LateMinutes != nil && *r.LateMinutes > 0 {
			lateSum += int64(*r.LateMinutes)
			lateN++
		}
	}
	avgLate := 0
	if lateN > 0 {
		avgLate = int(math.Round(float64(lateSum) / float64(lateN)))
	}

	return analytics.KPISet{
		TotalMembers:   totalMembers,
		Present:        counts.Present,
		Absent:         counts.Absent,
		Late:           counts.Late,
		Excused:        counts.Excused,
		EarlyLeave:     counts.EarlyLeave,
		Total:          counts.Total(),
		AttendanceRate: Percent(counts.Present, counts.Present+counts.Absent+counts.Late),
		OnTimeRate:     Percent(counts.Present, counts.Present+counts.Late),
		AvgLateMinutes: avgLate,
	}
}

// HourlyHeatmap buckets check-ins and check-outs by hour of day in loc
func HourlyHeatmap(records []attendance.Record, loc *time.Location) []analytics.HourlyHeatmapPoint {
	if loc == nil {
		loc = time.UTC
	}
	points := make([]analytics.HourlyHeatmapPoint, 24)
	for h := range points {
		points[h] = analytics.HourlyHeatmapPoint{Hour: h, Label: fmt.Sprintf("%02d:00", h)}
	}
	for _, r := range records {
		if r.CheckInTime != nil {
			points[r.CheckInTime.In(loc).Hour()].CheckIn++
		}
		if r.CheckOutTime != nil {
			points[r.CheckOutTime.In(loc).Hour()].CheckOut++
		}
	}
	return points
}

// Trend returns exactly days points ending on today, oldest first. Only the
// calendar date of today is used. Days without records have rate 0.
func Trend(records []attendance.Record, today time.Time, days int) []analytics.TrendPoint {
	if days <= 0 {
		return []analytics.TrendPoint{}
	}
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	byDate := make(map[string]*attendance.StatusCounts, days)
	points := make([]analytics.TrendPoint, days)
	for i := range points {
		day := end.AddDate(0, 0, i-days+1)
		key := day.Format(dateLayout)
		points[i] = analytics.TrendPoint{Date: key, Label: day.Format("Jan 2")}
		byDate[key] = &attendance.StatusCounts{}
	}

	for _, r := range records {
		if c, ok := byDate[r.AttendanceDate.Format(dateLayout)]; ok {
			c.Add(r.Status)
		}
	}

	for i := range points {
		c := byDate[points[i].Date]
		points[i].Present = c.Present
		points[i].Late = c.Late
		points[i].Absent = c.Absent
		points[i].Excused = c.Excused
		points[i].EarlyLeave = c.EarlyLeave
		points[i].Total = c.Total()
		points[i].Rate = Percent(c.Attended(), c.Total())
	}
	return points
}

// RankDepartments groups records by department and ranks them by rate
// descending, then name ascending. Departments without records are kept
// with rate 0; records without a department are not ranked.
func RankDepartments(records []attendance.Record, departments []organization.Department) []analytics.DepartmentStat {
	type bucket struct {
		stat   analytics.DepartmentStat
		counts attendance.StatusCounts
	}
	// order keeps buckets in first-seen order so ties never depend on map iteration
	buckets := make(map[string]*bucket, len(departments))
	order := make([]*bucket, 0, len(departments))
	for _, d := range departments {
		if _, ok := buckets[d.ID]; ok {
			continue
		}
		b := &bucket{stat: analytics.DepartmentStat{
			DepartmentID: d.ID,
			Department:   d.Name,
			MemberCount:  d.MemberCount,
		}}
		buckets[d.ID] = b
		order = append(order, b)
	}

	for _, r := range records {
		if r.DepartmentID == nil || *r.DepartmentID == "" {
			continue
		}
		b, ok := buckets[*r.DepartmentID]
		if !ok {
			name := "Unknown"
			if r.DepartmentName != nil && *r.DepartmentName != "" {
				name = *r.DepartmentName
			}
			b = &bucket{stat: analytics.DepartmentStat{DepartmentID: *r.DepartmentID, Department: name}}
			buckets[*r.DepartmentID] = b
			order = append(order, b)
		}
		b.counts.Add(r.Status)
	}

	stats := make([]analytics.DepartmentStat, 0, len(order))
	for _, b := range order {
		s := b.stat
		s.PresentCount = b.counts.Attended()
		s.TotalRecords = b.counts.Total()
		s.AttendanceRate = Percent(s.PresentCount, s.TotalRecords)
		stats = append(stats, s)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].AttendanceRate != stats[j].AttendanceRate {
			return stats[i].AttendanceRate > stats[j].AttendanceRate
		}
		li, lj := strings.ToLower(stats[i].Department), strings.ToLower(stats[j].Department)
		if li != lj {
			return li < lj
		}
		if stats[i].Department != stats[j].Department {
			return stats[i].Department < stats[j].Department
		}
		return stats[i].DepartmentID < stats[j].DepartmentID
	})
	for i := range stats {
		stats[i].Rank = i + 1
	}
	return stats
}

// StatusSlices converts counts into chart slices in display order,
// dropping empty statuses.
func StatusSlices(counts attendance.StatusCounts) []analytics.StatusSlice {
	slices := make([]analytics.StatusSlice, 0, len(attendance.Statuses))
	for _, s := range attendance.Statuses {
		v := counts.Get(s)
		if v == 0 {
			continue
		}
		slices = append(slices, analytics.StatusSlice{
			Status: string(s),
			Name:   statusNames[s],
			Value:  v,
			Color:  statusColors[s],
		})
	}
	return slices
}

// Activities maps records to feed items, newest first, at most limit items
func Activities(records []attendance.Record, settings organization.Settings, limit int) []analytics.ActivityItem {
	sorted := make([]attendance.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].EventTime(), sorted[j].EventTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	items := make([]analytics.ActivityItem, 0, len(sorted))
	for _, r := range sorted {
		at := r.EventTime()
		typ, ok := activityTypes[r.Status]
		if !ok {
			typ = "check_in"
		}
		items = append(items, analytics.ActivityItem{
			ID:           r.ID,
			Time:         at.UTC().Format(time.RFC3339),
			DisplayTime:  timefmt.Format(&at, settings.Timezone, settings.TimeFormat),
			Type:         typ,
			Status:       string(r.Status),
			MemberID:     r.MemberID,
			MemberName:   valueOr(r.MemberName, "Unknown"),
			EmployeeCode: valueOr(r.EmployeeCode, "N/A"),
			Department:   valueOr(r.DepartmentName, "N/A"),
			LateMinutes:  r.LateMinutes,
		})
	}
	return items
}

// MonthlyTrend returns months points ending with the month of current,
// oldest first. Attendance counts present and late records.
func MonthlyTrend(counts []dashboard.MonthCounts, current time.Time, months int) []dashboard.MonthlyTrendPoint {
	byMonth := make(map[string]attendance.StatusCounts, len(counts))
	for _, c := range counts {
		key := time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)
		byMonth[key] = c.Counts
	}

	first := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, time.UTC)
	points := make([]dashboard.MonthlyTrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		c := byMonth[m.Format(monthLayout)]
		points = append(points, dashboard.MonthlyTrendPoint{
			Month:      m.Format(monthLayout),
			Label:      m.Format("Jan 2006"),
			Attendance: c.Present + c.Late,
			Late:       c.Late,
		})
	}
	return points
}

func valueOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return *s
}
