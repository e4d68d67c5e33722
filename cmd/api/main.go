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

	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	appHTTP "github.com/cmlabs-hris/payroll-engine/internal/handler/http"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/lock"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/metrics"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/redis"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/payroll-engine/internal/service/attendance"
	payrollService "github.com/cmlabs-hris/payroll-engine/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(),
		database.WithMaxConns(cfg.Database.MaxConns),
		database.WithMinConns(cfg.Database.MinConns),
	)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return err
	}

	// Period lock: Redis when configured so several replicas exclude each other.
	var locker lock.Locker = lock.NewMemory()
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		locker = lock.NewRedis(redisClient.Client)
		logger.Info("Using redis period lock")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewWith(reg)

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	calculator, err := payrollService.NewStatutoryCalculator(statutoryPolicy(cfg.Payroll))
	if err != nil {
		return fmt.Errorf("statutory policy: %w", err)
	}
	aggregator, err := payrollService.NewAggregator(payPolicy(cfg.Payroll), calculator)
	if err != nil {
		return fmt.Errorf("pay policy: %w", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	timesheetSvc := attendanceService.NewTimesheetService(attendanceRepo, m, logger)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		timesheetSvc,
		aggregator,
		locker,
		m,
		logger,
		payrollService.Options{
			Concurrency: cfg.Payroll.CommitConcurrency,
			LockTTL:     cfg.Payroll.LockTTL,
		},
	)

	scheduler := cron.NewScheduler(logger)
	if cfg.Cron.Enabled {
		cron.NewPayrollJobs(payrollSvc, logger).RegisterJobs(scheduler, cfg.Cron.RetrySweepInterval)
		scheduler.Start()
	}
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		logger,
		reg,
		appHTTP.NewTimesheetHandler(timesheetSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env)
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

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(app config.AppConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(app.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", app.Env),
	)
}

func statutoryPolicy(p config.PayrollConfig) payrollService.StatutoryPolicy {
	brackets := make([]payrollService.Bracket, 0, len(p.PAYEBrackets))
	for _, b := range p.PAYEBrackets {
		brackets = append(brackets, payrollService.Bracket{Threshold: b.Threshold, Rate: b.Rate})
	}
	return payrollService.StatutoryPolicy{
		NASSITEmployeeRate: p.NASSITEmployeeRate,
		NASSITEmployerRate: p.NASSITEmployerRate,
		NASSITCeiling:      p.NASSITCeiling,
		PAYEBrackets:       brackets,
		PAYEExemptAmount:   p.PAYEExemptAmount,
	}
}

func payPolicy(p config.PayrollConfig) payrollService.PayPolicy {
	return payrollService.PayPolicy{
		WeeklyDivisor:        p.WeeklyDivisor,
		BiWeeklyDivisor:      p.BiWeeklyDivisor,
		StandardMonthlyHours: p.StandardMonthlyHours,
		HoursPerDay:          p.HoursPerDay,
		OvertimeMultiplier:   p.OvertimeMultiplier,
		WeekendMultiplier:    p.WeekendMultiplier,
		HolidayMultiplier:    p.HolidayMultiplier,
		StrictRates:          p.StrictRates,
	}
}
