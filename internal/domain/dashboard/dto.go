package dashboard

// ========== MEMBER STATS ==========

// MemberStatsResponse holds the caller's own counters for the current month
type MemberStatsResponse struct {
	Month          string       `json:"month"` // YYYY-MM
	PresentDays    int64        `json:"presentDays"`
	LateDays       int64        `json:"lateDays"`
	AbsentDays     int64        `json:"absentDays"`
	ExcusedDays    int64        `json:"excusedDays"`
	EarlyLeaveDays int64        `json:"earlyLeaveDays"`
	TotalDays      int64        `json:"totalDays"`
	WorkMinutes    int64        `json:"workMinutes"`
	AvgLateMinutes int          `json:"avgLateMinutes"`
	AttendanceRate float64      `json:"attendanceRate"`
	Today          *TodayStatus `json:"today"`
	Timezone       string       `json:"timezone"`
	TimeFormat     string       `json:"timeFormat"`
}

// TodayStatus is the caller's record for the organization-local today
type TodayStatus struct {
	Date            string  `json:"date"`
	Status          string  `json:"status"`
	CheckInTime     *string `json:"checkInTime"`
	CheckOutTime    *string `json:"checkOutTime"`
	CheckInDisplay  string  `json:"checkInDisplay"`
	CheckOutDisplay string  `json:"checkOutDisplay"`
	LateMinutes     *int    `json:"lateMinutes,omitempty"`
}

// ========== MONTHLY ==========

type MonthlyResponse struct {
	Month          string         `json:"month"` // YYYY-MM
	Present        int64          `json:"present"`
	Late           int64          `json:"late"`
	Absent         int64          `json:"absent"`
	Excused        int64          `json:"excused"`
	EarlyLeave     int64          `json:"earlyLeave"`
	Total          int64          `json:"total"`
	AttendanceRate float64        `json:"attendanceRate"`
	LateComparison LateComparison `json:"lateComparison"`
}

// LateComparison compares late counts against the previous month
type LateComparison struct {
	CurrentMonth  int64 `json:"currentMonth"`
	PreviousMonth int64 `json:"previousMonth"`
	PercentChange int   `json:"percentChange"`
}

// ========== MONTHLY TREND ==========

type MonthlyTrendPoint struct {
	Month      string `json:"month"` // YYYY-MM
	Label      string `json:"label"` // "Jan 2025"
	Attendance int64  `json:"attendance"`
	Late       int64  `json:"late"`
}

// MonthlyTrendMonths is the number of points in the monthly trend
const MonthlyTrendMonths = 6
