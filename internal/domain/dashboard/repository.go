package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
)

// MemberSummary aggregates one member's records over a period
type MemberSummary struct {
	Counts           attendance.StatusCounts
	WorkMinutes      int64
	LateMinutesTotal int64
	LateRecords      int64
}

// MonthCounts holds status counts for one calendar month
type MonthCounts struct {
	Year   int
	Month  time.Month
	Counts attendance.StatusCounts
}

// DashboardRepository defines the interface for dashboard data access.
// Date bounds are inclusive calendar dates.
type DashboardRepository interface {
	// GetStatusCounts returns per-status counts for the organization in one query
	GetStatusCounts(ctx context.Context, organizationID string, from, to time.Time) (attendance.StatusCounts, error)

	// GetMemberSummary returns one member's counters in one query
	GetMemberSummary(ctx context.Context, organizationID, memberID string, from, to time.Time) (MemberSummary, error)

	// GetMemberDay returns the member's record for date or attendance.ErrRecordNotFound
	GetMemberDay(ctx context.Context, organizationID, memberID string, date time.Time) (attendance.Record, error)

	// GetMonthlyCounts returns status counts grouped by month, months without records omitted
	GetMonthlyCounts(ctx context.Context, organizationID string, from, to time.Time) ([]MonthCounts, error)
}
