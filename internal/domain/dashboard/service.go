package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetStats returns the caller's own counters for the current month
	GetStats(ctx context.Context) (MemberStatsResponse, error)

	// GetMonthly returns organization counters for month (YYYY-MM, empty = current)
	GetMonthly(ctx context.Context, month string) (MonthlyResponse, error)

	// GetMonthlyTrend returns the last six months, oldest first
	GetMonthlyTrend(ctx context.Context) ([]MonthlyTrendPoint, error)
}
