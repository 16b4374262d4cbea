package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shift-report/shift-report-backend-go/internal/config"
	"github.com/shift-report/shift-report-backend-go/internal/domain/personnel"
	appHTTP "github.com/shift-report/shift-report-backend-go/internal/handler/http"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/cron"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/database"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/jwt"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/metrics"
	"github.com/shift-report/shift-report-backend-go/internal/pkg/sse"
	"github.com/shift-report/shift-report-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/shift-report/shift-report-backend-go/internal/service/auth"
	locationService "github.com/shift-report/shift-report-backend-go/internal/service/location"
	personnelService "github.com/shift-report/shift-report-backend-go/internal/service/personnel"
	reportService "github.com/shift-report/shift-report-backend-go/internal/service/report"
	shiftService "github.com/shift-report/shift-report-backend-go/internal/service/shift"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})).With(
		slog.String("app", "shift-report"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	shiftRepo := postgresql.NewShiftReportRepository(db)
	pingRepo := postgresql.NewLocationPingRepository(db)
	personnelRepo := postgresql.NewPersonnelRepository(db)
	transactor := postgresql.NewTransactor(db)

	m := metrics.New()
	hub := sse.NewHub(32)
	m.RegisterGauge("sse_subscribers", "Open supervisor live feed connections.", func() float64 {
		return float64(hub.TotalSubscribers())
	})

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	calculator := shiftService.NewHoursCalculator()

	directory := personnelService.NewPersonnelService(transactor, personnelRepo)
	if cfg.Roster.File != "" {
		if err := importRoster(ctx, directory, cfg.Roster.File); err != nil {
			return err
		}
	}

	authService := serviceAuth.NewAuthService(JWTService, cfg.Supervisor.AccessCodeHash)
	shiftSvc := shiftService.NewShiftService(shiftRepo, directory, hub, m, cfg.App.Location, time.Now)
	locationSvc := locationService.NewLocationService(pingRepo, directory, hub, m, time.Now)
	reportSvc := reportService.NewReportService(shiftRepo, pingRepo, directory, calculator, cfg.App.Location, time.Now)

	scheduler := cron.NewScheduler(ctx)
	cron.NewMaintenanceJobs(locationSvc, JWTService, cfg.Jobs.LocationPingRetention).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(JWTService, m, appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		Version:        version,
		AllowedOrigins: cfg.App.AllowedOrigins,
	}, appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(authService),
		Shift:     appHTTP.NewShiftHandler(shiftSvc),
		Location:  appHTTP.NewLocationHandler(locationSvc),
		Personnel: appHTTP.NewPersonnelHandler(directory),
		Report:    appHTTP.NewReportHandler(reportSvc),
		Events:    appHTTP.NewEventsHandler(hub, JWTService, 30*time.Second),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func importRoster(ctx context.Context, directory personnel.Service, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	result, err := directory.ImportRoster(ctx, f)
	if err != nil {
		return fmt.Errorf("failed to import roster %s: %w", path, err)
	}
	slog.Info("Roster imported at startup", "file", path, "imported", result.Imported, "deactivated", result.Deactivated)
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
