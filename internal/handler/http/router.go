package http

import (
	"log/slog"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/organization"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	logger *slog.Logger,
	allowedOrigins []string,
	JWTService jwt.Service,
	memberships organization.MembershipResolver,
	authHandler AuthHandler,
	analyticsHandler AnalyticsHandler,
	dashboardHandler DashboardHandler,
	attendanceHandler AttendanceHandler,
	organizationHandler OrganizationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.CacheControl(middleware.CacheNoStore)).Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.RequireOrganization(memberships))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.With(middleware.CacheControl(middleware.CacheAnalytics)).Get("/analytics", analyticsHandler.GetAnalytics)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.CacheControl(middleware.CacheMemberStats)).Get("/stats", dashboardHandler.GetStats)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsView))
					r.With(middleware.CacheControl(middleware.CacheMonthly)).Get("/monthly", dashboardHandler.GetMonthly)
					r.With(middleware.CacheControl(middleware.CacheMonthlyTrend)).Get("/monthly-trend", dashboardHandler.GetMonthlyTrend)
					r.With(middleware.CacheControl(middleware.CacheDepartments)).Get("/department-comparison", analyticsHandler.GetDepartmentComparison)
					r.With(middleware.CacheControl(middleware.CacheRecentActivity)).Get("/recent-activity", analyticsHandler.GetRecentActivity)
				})

				r.Route("/attendance-records", func(r chi.Router) {
					r.Use(middleware.CacheControl(middleware.CacheNoStore))
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/", attendanceHandler.List)
					r.With(middleware.RequirePermission(user.PermissionAttendanceExport)).Get("/export", attendanceHandler.Export)
				})
			})

			r.With(
				middleware.CacheControl(middleware.CacheNoStore),
				middleware.RequirePermission(user.PermissionAttendanceManage),
			).Patch("/attendance-records/{id}/status", attendanceHandler.UpdateStatus)

			r.Route("/organization/settings", func(r chi.Router) {
				r.Use(middleware.CacheControl(middleware.CacheOrganizationPrefs))
				r.With(middleware.RequirePermission(user.PermissionOrganizationView)).Get("/", organizationHandler.GetSettings)
				r.With(middleware.RequirePermission(user.PermissionOrganizationManage)).Put("/", organizationHandler.UpdateSettings)
			})
		})
	})

	return r
}
