package analytics

import "context"

// AnalyticsService computes organization-wide attendance aggregates
type AnalyticsService interface {
	// GetAnalytics fans out every section concurrently. A failing section
	// degrades to its empty value instead of failing the response.
	GetAnalytics(ctx context.Context) (AnalyticsResponse, error)

	// GetDepartmentComparison ranks departments over the current month
	GetDepartmentComparison(ctx context.Context) ([]DepartmentStat, error)

	// GetRecentActivity returns the newest attendance events of the last 7 days
	GetRecentActivity(ctx context.Context, limit int) ([]ActivityItem, error)
}
