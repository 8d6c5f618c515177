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

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	branchService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/branch"
	dashboardService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/file"
	payrollService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/report"
	timeEntryService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/timeentry"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("init local storage: %w", err)
	}

	loc := cfg.PayrollLocation()

	// Repositories
	employeeRepo := postgresql.NewEmployeeRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	cycleRepo := postgresql.NewPayrollCycleRepository(db)
	detailRepo := postgresql.NewPayrollDetailRepository(db)
	cycleLocker := postgresql.NewCycleLocker(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	// Services
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	fileService := file.NewFileService(fileStorage)
	timeEntrySvc := timeEntryService.NewTimeEntryService(timeEntryRepo, employeeRepo, branchRepo, fileService, loc)
	branchSvc := branchService.NewBranchService(branchRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	payrollSvc := payrollService.NewPayrollService(cycleRepo, detailRepo, employeeRepo, timeEntryRepo, cycleLocker, loc)
	reportSvc := reportService.NewReportService(cycleRepo, detailRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, loc)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		UploadsDir:     fileStorage.BasePath(),
	}, JWTService, appHTTP.Handlers{
		TimeEntry: appHTTP.NewTimeEntryHandler(timeEntrySvc),
		Branch:    appHTTP.NewBranchHandler(branchSvc),
		Employee:  appHTTP.NewEmployeeHandler(employeeSvc),
		Payroll:   appHTTP.NewPayrollHandler(payrollSvc, reportSvc),
		Dashboard: appHTTP.NewDashboardHandler(dashboardSvc),
	})

	scheduler := cron.NewScheduler(logger)
	if cfg.App.StaleEntryAfter > 0 {
		cron.NewTimeEntryJobs(timeEntryRepo, cfg.App.StaleEntryAfter, logger).RegisterJobs(scheduler)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "payroll_timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.App.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
