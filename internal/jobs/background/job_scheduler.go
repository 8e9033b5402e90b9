package background

import (
	"context"
	"fmt"
	"time"

	"usersvc/internal/metrics"
	"usersvc/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// JobScheduler runs the periodic store statistics refresh.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	userRepo    repositories.UserRepository
	managerRepo repositories.ManagerRepository
	metrics     *metrics.Metrics
	log         *zap.Logger
}

// NewJobScheduler creates the scheduler and registers its jobs.
func NewJobScheduler(userRepo repositories.UserRepository, managerRepo repositories.ManagerRepository,
	m *metrics.Metrics, interval time.Duration, log *zap.Logger) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		userRepo:    userRepo,
		managerRepo: managerRepo,
		metrics:     m,
		log:         log,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.RefreshStoreStats, context.Background()),
		gocron.WithName("store-stats-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return nil, fmt.Errorf("create store stats job: %w", err)
	}

	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.log.Info("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	js.log.Info("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// RefreshStoreStats counts active users and managers into the gauges.
func (js *JobScheduler) RefreshStoreStats(ctx context.Context) {
	users, err := js.userRepo.CountActive(ctx)
	if err != nil {
		js.log.Warn("refresh active users", zap.Error(err))
	} else {
		js.metrics.ActiveUsers.Set(float64(users))
	}

	managers, err := js.managerRepo.ListActive(ctx)
	if err != nil {
		js.log.Warn("refresh active managers", zap.Error(err))
		return
	}
	js.metrics.ActiveManagers.Set(float64(len(managers)))
}
