package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/cmlabs-hris/attendance-reporting-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-reporting-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/pkg/logger"
	"github.com/cmlabs-hris/attendance-reporting-go/internal/repository/postgresql"
	analyticsService "github.com/cmlabs-hris/attendance-reporting-go/internal/service/analytics"
	attendanceService "github.com/cmlabs-hris/attendance-reporting-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-reporting-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/attendance-reporting-go/internal/service/dashboard"
	organizationService "github.com/cmlabs-hris/attendance-reporting-go/internal/service/organization"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(os.Stdout, logger.Options{
		App:     cfg.App.Name,
		Version: cfg.App.Version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	accessExpiration, err := time.ParseDuration(cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("invalid access token expiration: %w", err)
	}

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	memberRepo := postgresql.NewMemberRepository(db)
	organizationRepo := postgresql.NewOrganizationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	// Services
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, accessExpiration)
	orgService := organizationService.NewOrganizationService(organizationRepo, memberRepo, cfg.Cache.SettingsSize, cfg.Cache.SettingsTTL, log)
	authService := serviceAuth.NewAuthService(userRepo, JWTService, log)
	analytics := analyticsService.NewAnalyticsService(attendanceRepo, organizationRepo, orgService, log)
	attendance := attendanceService.NewAttendanceService(attendanceRepo, orgService, log)
	dashboard := dashboardService.NewDashboardService(dashboardRepo, orgService)

	router := appHTTP.NewRouter(
		log,
		cfg.App.AllowedOrigins,
		JWTService,
		orgService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewAnalyticsHandler(analytics),
		appHTTP.NewDashboardHandler(dashboard),
		appHTTP.NewAttendanceHandler(attendance),
		appHTTP.NewOrganizationHandler(orgService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
