package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
	"github.com/jackc/pgx/v5"
)

// statusCountColumns counts every status in a single pass
const statusCountColumns = `
		COUNT(*) FILTER (WHERE status = 'present'),
		COUNT(*) FILTER (WHERE status = 'absent'),
		COUNT(*) FILTER (WHERE status = 'late'),
		COUNT(*) FILTER (WHERE status = 'excused'),
		COUNT(*) FILTER (WHERE status = 'early_leave')`

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

func statusCountDest(c *attendance.StatusCounts) []any {
	return []any{&c.Present, &c.Absent, &c.Late, &c.Excused, &c.EarlyLeave}
}

// GetStatusCounts returns per-status counts in a single query
func (r *dashboardRepository) GetStatusCounts(ctx context.Context, organizationID string, from, to time.Time) (attendance.StatusCounts, error) {
	if organizationID == "" {
		return attendance.StatusCounts{}, tenant.ErrNoOrganization
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + statusCountColumns + `
		FROM attendance_records
		WHERE organization_id = $1
		  AND attendance_date BETWEEN $2::date AND $3::date
	`
	var counts attendance.StatusCounts
	if err := q.QueryRow(ctx, query, organizationID, from.Format(dateLayout), to.Format(dateLayout)).Scan(statusCountDest(&counts)...); err != nil {
		return attendance.StatusCounts{}, database.QueryFailure("count attendance by status", err)
	}
	return counts, nil
}

// GetMemberSummary returns one member's counters in a single query
func (r *dashboardRepository) GetMemberSummary(ctx context.Context, organizationID, memberID string, from, to time.Time) (dashboard.MemberSummary, error) {
	if organizationID == "" {
		return dashboard.MemberSummary{}, tenant.ErrNoOrganization
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + statusCountColumns + `,
			COALESCE(SUM(work_duration_minutes), 0),
			COALESCE(SUM(late_minutes) FILTER (WHERE late_minutes > 0), 0),
			COUNT(*) FILTER (WHERE late_minutes > 0)
		FROM attendance_records
		WHERE organization_id = $1
		  AND member_id = $2
		  AND attendance_date BETWEEN $3::date AND $4::date
	`
	var s dashboard.MemberSummary
	dest := append(statusCountDest(&s.Counts), &s.WorkMinutes, &s.LateMinutesTotal, &s.LateRecords)
	if err := q.QueryRow(ctx, query, organizationID, memberID, from.Format(dateLayout), to.Format(dateLayout)).Scan(dest...); err != nil {
		return dashboard.MemberSummary{}, database.QueryFailure("summarize member attendance", err)
	}
	return s, nil
}

// GetMemberDay returns the member's record for one date
func (r *dashboardRepository) GetMemberDay(ctx context.Context, organizationID, memberID string, date time.Time) (attendance.Record, error) {
	if organizationID == "" {
		return attendance.Record{}, tenant.ErrNoOrganization
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + recordColumns + recordJoins + `
		WHERE a.organization_id = $1
		  AND a.member_id = $2
		  AND a.attendance_date = $3::date
		ORDER BY a.created_at DESC
		LIMIT 1
	`
	rec, err := scanRecord(q.QueryRow(ctx, query, organizationID, memberID, date.Format(dateLayout)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, database.QueryFailure("get member attendance for day", err)
	}
	return rec, nil
}

// GetMonthlyCounts groups status counts by calendar month
func (r *dashboardRepository) GetMonthlyCounts(ctx context.Context, organizationID string, from, to time.Time) ([]dashboard.MonthCounts, error) {
	if organizationID == "" {
		return nil, tenant.ErrNoOrganization
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			EXTRACT(YEAR FROM attendance_date)::int AS year,
			EXTRACT(MONTH FROM attendance_date)::int AS month,` + statusCountColumns + `
		FROM attendance_records
		WHERE organization_id = $1
		  AND attendance_date BETWEEN $2::date AND $3::date
		GROUP BY 1, 2
		ORDER BY 1, 2
	`
	rows, err := q.Query(ctx, query, organizationID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, database.QueryFailure("count attendance by month", err)
	}
	defer rows.Close()

	var months []dashboard.MonthCounts
	for rows.Next() {
		var (
			mc    dashboard.MonthCounts
			month int
		)
		dest := append([]any{&mc.Year, &month}, statusCountDest(&mc.Counts)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, database.QueryFailure("scan monthly attendance", err)
		}
		mc.Month = time.Month(month)
		months = append(months, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, database.QueryFailure("scan monthly attendance", err)
	}
	return months, nil
}
