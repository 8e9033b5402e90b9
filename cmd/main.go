package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"usersvc/internal/config"
	"usersvc/internal/handlers"
	"usersvc/internal/jobs/background"
	"usersvc/internal/logger"
	"usersvc/internal/metrics"
	"usersvc/internal/repositories"
	"usersvc/internal/services"
	"usersvc/pkg/database"

	"go.uber.org/zap"
)

const version = "1.0.0"

// store is the single storage handle owned by the process.
type store struct {
	users    repositories.UserRepository
	managers repositories.ManagerRepository
	ping     handlers.PingFunc
	close    func()
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Database.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.EnsurePostgresSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("Connected to PostgreSQL database.")
		return &store{
			users:    repositories.NewUserRepo(pool),
			managers: repositories.NewManagerRepo(pool),
			ping:     pool.Ping,
			close:    pool.Close,
		}, nil
	default:
		db, err := database.OpenSQLite(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSQLiteSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("Connected to SQLite database.", zap.String("path", cfg.Database.SQLitePath))
		return &store{
			users:    repositories.NewSQLiteUserRepo(db),
			managers: repositories.NewSQLiteManagerRepo(db),
			ping:     db.PingContext,
			close:    func() { _ = db.Close() },
		}, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: cfg.AppName,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, zl)
	if err != nil {
		return fmt.Errorf("database connection error: %w", err)
	}
	defer st.close()

	managerSvc := services.NewManagerService(st.managers, zl)
	if _, err := managerSvc.SeedManagers(ctx, cfg.Seed.ManagerCount, cfg.Seed.Mode); err != nil {
		return err
	}
	userSvc := services.NewUserService(st.users, st.managers, zl)

	m := metrics.New(cfg.AppName)
	scheduler, err := background.NewJobScheduler(st.users, st.managers, m, cfg.StatsRefreshInterval, zl)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			zl.Warn("stop scheduler", zap.Error(err))
		}
	}()

	router := &handlers.Router{
		Users:    handlers.NewUserHandlers(userSvc, zl),
		Managers: handlers.NewManagerHandlers(managerSvc),
		Health:   handlers.NewHealthHandlers(st.ping, version),
		Metrics:  m,
		Log:      zl,
	}
	e := router.Echo()

	errCh := make(chan error, 1)
	go func() {
		zl.Info(fmt.Sprintf("Server running on port %d", cfg.Server.Port), zap.String("version", version))
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
