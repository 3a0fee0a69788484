// Package server wires the pharmacy API together: logging, the database and
// its migrations, the attachment backend, services, login throttling, metrics
// and background jobs, then runs the HTTP server until shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/logging"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/config"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/httpserver"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/job"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/metrics"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/ratelimit"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/repositories/repomanager"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/services"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/storage"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	redis     *redis.Client
	http      *httpserver.Server
	scheduler *job.Scheduler
}

// NewApp builds every component from c. The database is opened and migrated
// here, so a misconfigured server fails before it starts listening.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(c.LogBackend, c.LogLevel)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger}
	if err := app.init(ctx); err != nil {
		app.close(ctx)
		return nil, err
	}
	return app, nil
}

func (app *App) init(ctx context.Context) error {
	c := app.config

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return err
	}

	backend, err := newBackend(ctx, c)
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}
	files := storage.NewAttachmentStore(backend)

	limiter, err := app.newLoginLimiter(ctx)
	if err != nil {
		return err
	}

	us := services.NewUserService(db, rm, c)
	ms := services.NewMedicineService(db, rm, files, c, app.logger)

	app.http = httpserver.NewServer(c.EndpointAddrHTTP, c.MaxUploadSize, c.ShutdownTimeout, app.logger, httpserver.Deps{
		Users:        us,
		Medicines:    ms,
		Files:        files,
		DB:           db,
		LoginLimiter: limiter,
		Metrics:      metrics.New(),
	})

	app.scheduler = job.NewScheduler(app.logger.With("module", "scheduler"))
	if c.OrphanSweepSchedule != "" {
		sweep := job.NewOrphanSweepJob(rm.Medicines(db), backend, c.OrphanGracePeriod, app.logger)
		if err := app.scheduler.Add(c.OrphanSweepSchedule, sweep); err != nil {
			return err
		}
	}
	if m, ok := limiter.(*ratelimit.MemoryLimiter); ok {
		if err := app.scheduler.Add("@every 10m", cronFunc(m.Sweep)); err != nil {
			return err
		}
	}
	return nil
}

func newBackend(ctx context.Context, c *config.Config) (storage.Backend, error) {
	switch c.StorageBackend {
	case config.StorageS3:
		return storage.NewS3Backend(ctx, storage.S3Config{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	default:
		return storage.NewLocalBackend(c.UploadsDir)
	}
}

func (app *App) newLoginLimiter(ctx context.Context) (ratelimit.Limiter, error) {
	c := app.config
	switch {
	case c.LoginRateLimit == 0:
		return ratelimit.Disabled{}, nil
	case c.RedisAddr != "":
		rdb, err := ratelimit.NewRedisClient(ctx, c.RedisAddr)
		if err != nil {
			return nil, err
		}
		app.redis = rdb
		app.logger.Info(ctx, "Redis connected successfully", "addr", c.RedisAddr)
		return ratelimit.NewRedisLimiter(rdb, c.LoginRateLimit, c.LoginRateWindow), nil
	default:
		return ratelimit.NewMemoryLimiter(c.LoginRateLimit, c.LoginRateWindow), nil
	}
}

type cronFunc func()

func (f cronFunc) Run() { f() }

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	app.scheduler.Start()

	var (
		wg      sync.WaitGroup
		httpErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx); err != nil {
			httpErr = err
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()
	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	app.scheduler.Stop(shutdownCtx)
	app.close(shutdownCtx)

	app.logger.Info(shutdownCtx, "Stopped")
	return httpErr
}

func (app *App) close(ctx context.Context) {
	var errs []error
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
	}
	if app.db != nil {
		errs = append(errs, app.db.Close())
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Warn(ctx, "close failed", "error", err)
	}
	if z, ok := app.logger.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
}
