package dashboard

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/timefmt"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/validator"
	analyticssvc "github.com/cmlabs-hris/attendance-reporting-go/internal/service/analytics"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	settings organization.SettingsProvider
	now      func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, settings organization.SettingsProvider) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		settings:            settings,
		now:                 time.Now,
	}
}

// localToday returns the organization settings and today's local date
func (s *DashboardServiceImpl) localToday(ctx context.Context, organizationID string) (organization.Settings, time.Time, error) {
	settings, err := s.settings.Settings(ctx, organizationID)
	if err != nil {
		return organization.Settings{}, time.Time{}, err
	}
	return settings, timefmt.LocalDate(s.now(), settings.Location()), nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthEnd(t time.Time) time.Time {
	return monthStart(t).AddDate(0, 1, -1)
}

// parseMonth parses YYYY-MM format, defaults to the current month
func parseMonth(month string, today time.Time) (time.Time, error) {
	if month == "" {
		return monthStart(today), nil
	}
	parsed, ok := validator.IsValidMonth(month)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}
	return parsed, nil
}

// GetStats returns the caller's own month-to-date counters and today's record.
func (s *DashboardServiceImpl) GetStats(ctx context.Context) (dashboard.MemberStatsResponse, error) {
	member, err := tenant.FromContext(ctx)
	if err != nil {
		return dashboard.MemberStatsResponse{}, err
	}

	settings, today, err := s.localToday(ctx, member.OrganizationID)
	if err != nil {
		return dashboard.MemberStatsResponse{}, err
	}

	var (
		summary  dashboard.MemberSummary
		todayRec *attendance.Record
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Month-to-date summary
	g.Go(func() error {
		var err error
		summary, err = s.GetMemberSummary(gCtx, member.OrganizationID, member.MemberID, monthStart(today), today)
		return err
	})

	// 2. Today's record, absent until check-in
	g.Go(func() error {
		rec, err := s.GetMemberDay(gCtx, member.OrganizationID, member.MemberID, today)
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		todayRec = &rec
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.MemberStatsResponse{}, err
	}

	avgLate := 0
	if summary.LateRecords > 0 {
		avgLate = int(math.Round(float64(summary.LateMinutesTotal) / float64(summary.LateRecords)))
	}

	resp := dashboard.MemberStatsResponse{
		Month:          today.Format("2006-01"),
		PresentDays:    summary.Counts.Present,
		LateDays:       summary.Counts.Late,
		AbsentDays:     summary.Counts.Absent,
		ExcusedDays:    summary.Counts.Excused,
		EarlyLeaveDays: summary.Counts.EarlyLeave,
		TotalDays:      summary.Counts.Total(),
		WorkMinutes:    summary.WorkMinutes,
		AvgLateMinutes: avgLate,
		AttendanceRate: analyticssvc.Percent(summary.Counts.Attended(), summary.Counts.Total()),
		Timezone:       settings.Timezone,
		TimeFormat:     string(settings.TimeFormat),
	}

	if todayRec != nil {
		resp.Today = &dashboard.TodayStatus{
			Date:            todayRec.AttendanceDate.Format("2006-01-02"),
			Status:          string(todayRec.Status),
			CheckInTime:     timefmt.RFC3339Ptr(todayRec.CheckInTime),
			CheckOutTime:    timefmt.RFC3339Ptr(todayRec.CheckOutTime),
			CheckInDisplay:  timefmt.Format(todayRec.CheckInTime, settings.Timezone, settings.TimeFormat),
			CheckOutDisplay: timefmt.Format(todayRec.CheckOutTime, settings.Timezone, settings.TimeFormat),
			LateMinutes:     todayRec.LateMinutes,
		}
	}

	return resp, nil
}

// GetMonthly reads the requested and previous month concurrently.
func (s *DashboardServiceImpl) GetMonthly(ctx context.Context, month string) (dashboard.MonthlyResponse, error) {
	orgID, err := tenant.OrganizationID(ctx)
	if err != nil {
		return dashboard.MonthlyResponse{}, err
	}

	_, today, err := s.localToday(ctx, orgID)
	if err != nil {
		return dashboard.MonthlyResponse{}, err
	}

	start, err := parseMonth(month, today)
	if err != nil {
		return dashboard.MonthlyResponse{}, err
	}
	prev := start.AddDate(0, -1, 0)

	var current, previous attendance.StatusCounts

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.GetStatusCounts(gCtx, orgID, start, monthEnd(start))
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.GetStatusCounts(gCtx, orgID, prev, monthEnd(prev))
		return err
	})
	if err := g.Wait(); err != nil {
		return dashboard.MonthlyResponse{}, err
	}

	return dashboard.MonthlyResponse{
		Month:          start.Format("2006-01"),
		Present:        current.Present,
		Late:           current.Late,
		Absent:         current.Absent,
		Excused:        current.Excused,
		EarlyLeave:     current.EarlyLeave,
		Total:          current.Total(),
		AttendanceRate: analyticssvc.Percent(current.Present, current.Present+current.Absent+current.Late),
		LateComparison: dashboard.LateComparison{
			CurrentMonth:  current.Late,
			PreviousMonth: previous.Late,
			PercentChange: analyticssvc.PercentChange(current.Late, previous.Late),
		},
	}, nil
}

// GetMonthlyTrend returns the last six months including the current one
func (s *DashboardServiceImpl) GetMonthlyTrend(ctx context.Context) ([]dashboard.MonthlyTrendPoint, error) {
	orgID, err := tenant.OrganizationID(ctx)
	if err != nil {
		return []dashboard.MonthlyTrendPoint{}, err
	}

	_, today, err := s.localToday(ctx, orgID)
	if err != nil {
		return []dashboard.MonthlyTrendPoint{}, err
	}

	from := monthStart(today).AddDate(0, -(dashboard.MonthlyTrendMonths - 1), 0)
	counts, err := s.GetMonthlyCounts(ctx, orgID, from, monthEnd(today))
	if err != nil {
		return []dashboard.MonthlyTrendPoint{}, err
	}

	return analyticssvc.MonthlyTrend(counts, today, dashboard.MonthlyTrendMonths), nil
}
