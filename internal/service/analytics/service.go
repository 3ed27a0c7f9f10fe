package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/analytics"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/tenant"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/timefmt"
	"golang.org/x/sync/errgroup"
)

// activityWindowDays bounds how far back the activity feed looks
const activityWindowDays = 7

type AnalyticsServiceImpl struct {
	records       attendance.RecordRepository
	organizations organization.OrganizationRepository
	settings      organization.SettingsProvider
	logger        *slog.Logger
	now           func() time.Time
}

func NewAnalyticsService(
	records attendance.RecordRepository,
	organizations organization.OrganizationRepository,
	settings organization.SettingsProvider,
	logger *slog.Logger,
) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{
		records:       records,
		organizations: organizations,
		settings:      settings,
		logger:        logger,
		now:           time.Now,
	}
}

// window is the organization-local calendar frame for one request
type window struct {
	organizationID string
	settings       organization.Settings
	loc            *time.Location
	today          time.Time // local date at UTC midnight
	monthStart     time.Time
}

func (s *AnalyticsServiceImpl) resolveWindow(ctx context.Context) (window, error) {
	orgID, err := tenant.OrganizationID(ctx)
	if err != nil {
		return window{}, err
	}
	settings, err := s.settings.Settings(ctx, orgID)
	if err != nil {
		return window{}, err
	}
	loc := settings.Location()
	today := timefmt.LocalDate(s.now(), loc)
	return window{
		organizationID: orgID,
		settings:       settings,
		loc:            loc,
		today:          today,
		monthStart:     time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

type section struct {
	name string
	run  func(ctx context.Context) error
}

// GetAnalytics computes every dashboard section concurrently.
func (s *AnalyticsServiceImpl) GetAnalytics(ctx context.Context) (analytics.AnalyticsResponse, error) {
	w, err := s.resolveWindow(ctx)
	if err != nil {
		return emptyAnalytics(time.Now().UTC(), time.UTC), err
	}

	resp := emptyAnalytics(w.today, w.loc)

	sections := []section{
		{analytics.SectionKPIs, func(ctx context.Context) error {
			g, gCtx := errgroup.WithContext(ctx)
			var today []attendance.Record
			var members int64
			g.Go(func() error {
				var err error
				today, err = s.records.ListBetween(gCtx, w.organizationID, w.today, w.today)
				return err
			})
			g.Go(func() error {
				var err error
				members, err = s.organizations.CountActiveMembers(gCtx, w.organizationID)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			resp.KPIs = ComputeKPIs(today, members)
			return nil
		}},
		{analytics.SectionHourly, func(ctx context.Context) error {
			today, err := s.records.ListBetween(ctx, w.organizationID, w.today, w.today)
			if err != nil {
				return err
			}
			resp.HourlyData = HourlyHeatmap(today, w.loc)
			return nil
		}},
		{analytics.SectionDepartments, func(ctx context.Context) error {
			stats, err := s.departmentComparison(ctx, w)
			if err != nil {
				return err
			}
			resp.DepartmentData = stats
			return nil
		}},
		{analytics.SectionTrends, func(ctx context.Context) error {
			from := w.today.AddDate(0, 0, -(TrendDays - 1))
			records, err := s.records.ListBetween(ctx, w.organizationID, from, w.today)
			if err != nil {
				return err
			}
			resp.TrendsData = Trend(records, w.today, TrendDays)
			return nil
		}},
		{analytics.SectionStatus, func(ctx context.Context) error {
			month, err := s.records.ListBetween(ctx, w.organizationID, w.monthStart, w.today)
			if err != nil {
				return err
			}
			var todayCounts attendance.StatusCounts
			for _, r := range month {
				if r.AttendanceDate.Format(dateLayout) == w.today.Format(dateLayout) {
					todayCounts.Add(r.Status)
				}
			}
			resp.StatusData = analytics.StatusDistribution{
				Today: StatusSlices(todayCounts),
				Month: StatusSlices(CountStatuses(month)),
			}
			return nil
		}},
		{analytics.SectionActivities, func(ctx context.Context) error {
			items, err := s.recentActivity(ctx, w, analytics.DefaultActivityLimit)
			if err != nil {
				return err
			}
			resp.Activities = items
			return nil
		}},
	}

	// Each section writes only its own field, and only on success
	errs := make([]error, len(sections))
	g, gCtx := errgroup.WithContext(ctx)
	for i, sec := range sections {
		g.Go(func() error {
			errs[i] = sec.run(gCtx)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return emptyAnalytics(w.today, w.loc), err
	}

	for i, err := range errs {
		if err == nil {
			continue
		}
		s.logger.ErrorContext(ctx, "analytics section failed",
			"section", sections[i].name,
			"organization_id", w.organizationID,
			"error", err,
		)
		resp.Degraded = append(resp.Degraded, sections[i].name)
	}

	return resp, nil
}

func (s *AnalyticsServiceImpl) GetDepartmentComparison(ctx context.Context) ([]analytics.DepartmentStat, error) {
	w, err := s.resolveWindow(ctx)
	if err != nil {
		return []analytics.DepartmentStat{}, err
	}
	stats, err := s.departmentComparison(ctx, w)
	if err != nil {
		return []analytics.DepartmentStat{}, err
	}
	return stats, nil
}

func (s *AnalyticsServiceImpl) departmentComparison(ctx context.Context, w window) ([]analytics.DepartmentStat, error) {
	var (
		records     []attendance.Record
		departments []organization.Department
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.records.ListBetween(gCtx, w.organizationID, w.monthStart, w.today)
		return err
	})
	g.Go(func() error {
		var err error
		departments, err = s.organizations.ListDepartments(gCtx, w.organizationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return RankDepartments(records, departments), nil
}

func (s *AnalyticsServiceImpl) GetRecentActivity(ctx context.Context, limit int) ([]analytics.ActivityItem, error) {
	w, err := s.resolveWindow(ctx)
	if err != nil {
		return []analytics.ActivityItem{}, err
	}
	items, err := s.recentActivity(ctx, w, limit)
	if err != nil {
		return []analytics.ActivityItem{}, err
	}
	return items, nil
}

func (s *AnalyticsServiceImpl) recentActivity(ctx context.Context, w window, limit int) ([]analytics.ActivityItem, error) {
	if limit <= 0 {
		limit = analytics.DefaultActivityLimit
	}
	if limit > analytics.MaxActivityLimit {
		limit = analytics.MaxActivityLimit
	}
	since := w.today.AddDate(0, 0, -(activityWindowDays - 1))
	records, err := s.records.ListRecent(ctx, w.organizationID, since, limit)
	if err != nil {
		return nil, err
	}
	return Activities(records, w.settings, limit), nil
}

// emptyAnalytics is the zero-valued response: 24 hourly and 30 trend points
func emptyAnalytics(today time.Time, loc *time.Location) analytics.AnalyticsResponse {
	return analytics.AnalyticsResponse{
		HourlyData:     HourlyHeatmap(nil, loc),
		DepartmentData: []analytics.DepartmentStat{},
		TrendsData:     Trend(nil, today, TrendDays),
		StatusData: analytics.StatusDistribution{
			Today: []analytics.StatusSlice{},
			Month: []analytics.StatusSlice{},
		},
		Activities: []analytics.ActivityItem{},
		Degraded:   []string{},
	}
}
