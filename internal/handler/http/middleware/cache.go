package middleware

import "net/http"

// Cache policies per route
const (
	CacheAnalytics         = "public, max-age=120, stale-while-revalidate=240"
	CacheNoStore           = "no-store"
	CacheMemberStats       = "private, no-cache, must-revalidate"
	CacheMonthly           = "public, max-age=300"
	CacheMonthlyTrend      = "public, max-age=180, stale-while-revalidate=60"
	CacheDepartments       = "public, max-age=300"
	CacheRecentActivity    = "private, max-age=60"
	CacheOrganizationPrefs = "private, no-cache"
)

// CacheControl sets the route's policy. Error responses replace it with
// no-store.
func CacheControl(policy string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", policy)
			next.ServeHTTP(w, r)
		})
	}
}
