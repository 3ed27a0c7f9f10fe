package analytics

// ========== KPI ==========

// KPISet holds the headline counters for today
type KPISet struct {
	TotalMembers   int64   `json:"totalMembers"`
	Present        int64   `json:"present"`
	Absent         int64   `json:"absent"`
	Late           int64   `json:"late"`
	Excused        int64   `json:"excused"`
	EarlyLeave     int64   `json:"earlyLeave"`
	Total          int64   `json:"total"`
	AttendanceRate float64 `json:"attendanceRate"` // percent, 1 decimal
	OnTimeRate     float64 `json:"onTimeRate"`     // percent, 1 decimal
	AvgLateMinutes int     `json:"avgLateMinutes"`
}

// ========== HOURLY HEATMAP ==========

type HourlyHeatmapPoint struct {
	Hour     int    `json:"hour"`  // 0-23, organization local
	Label    string `json:"label"` // "09:00"
	CheckIn  int64  `json:"checkIn"`
	CheckOut int64  `json:"checkOut"`
}

// ========== DEPARTMENTS ==========

type DepartmentStat struct {
	Rank           int     `json:"rank"`
	DepartmentID   string  `json:"departmentId,omitempty"`
	Department     string  `json:"department"`
	AttendanceRate float64 `json:"attendanceRate"`
	PresentCount   int64   `json:"presentCount"`
	TotalRecords   int64   `json:"totalRecords"`
	MemberCount    int64   `json:"memberCount"`
}

// ========== TREND ==========

type TrendPoint struct {
	Date       string  `json:"date"`  // YYYY-MM-DD
	Label      string  `json:"label"` // "Jan 2"
	Present    int64   `json:"present"`
	Late       int64   `json:"late"`
	Absent     int64   `json:"absent"`
	Excused    int64   `json:"excused"`
	EarlyLeave int64   `json:"earlyLeave"`
	Total      int64   `json:"total"`
	Rate       float64 `json:"rate"`
}

// ========== STATUS DISTRIBUTION ==========

type StatusSlice struct {
	Status string `json:"status"`
	Name   string `json:"name"`
	Value  int64  `json:"value"`
	Color  string `json:"color"`
}

type StatusDistribution struct {
	Today []StatusSlice `json:"today"`
	Month []StatusSlice `json:"month"`
}

// ========== ACTIVITY ==========

type ActivityItem struct {
	ID           string `json:"id"`
	Time         string `json:"time"`        // RFC3339 UTC
	DisplayTime  string `json:"displayTime"` // organization local, 12h/24h
	Type         string `json:"type"`
	Status       string `json:"status"`
	MemberID     string `json:"memberId"`
	MemberName   string `json:"memberName"`
	EmployeeCode string `json:"employeeCode"`
	Department   string `json:"department"`
	LateMinutes  *int   `json:"lateMinutes,omitempty"`
}

// ========== COMBINED ==========

type AnalyticsResponse struct {
	KPIs           KPISet               `json:"kpis"`
	HourlyData     []HourlyHeatmapPoint `json:"hourlyData"`
	DepartmentData []DepartmentStat     `json:"departmentData"`
	TrendsData     []TrendPoint         `json:"trendsData"`
	StatusData     StatusDistribution   `json:"statusData"`
	Activities     []ActivityItem       `json:"activities"`

	// Degraded names the sections that failed and were replaced by empty values
	Degraded []string `json:"degraded"`
}

const (
	SectionKPIs        = "kpis"
	SectionHourly      = "hourlyData"
	SectionDepartments = "departmentData"
	SectionTrends      = "trendsData"
	SectionStatus      = "statusData"
	SectionActivities  = "activities"
)

const (
	DefaultActivityLimit = 15
	MaxActivityLimit     = 100
)
