// Package server wires and runs the intake daemon: the webhook HTTP server,
// the queue worker and the one-shot maintenance modes.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/oneearth-admin/oeff-docs/internal/intake"
	"github.com/oneearth-admin/oeff-docs/internal/logging"
	"github.com/oneearth-admin/oeff-docs/internal/objectstore"
	"github.com/oneearth-admin/oeff-docs/internal/server/auth"
	"github.com/oneearth-admin/oeff-docs/internal/server/config"
	"github.com/oneearth-admin/oeff-docs/internal/server/handler"
	"github.com/oneearth-admin/oeff-docs/internal/server/queue"
	"github.com/oneearth-admin/oeff-docs/internal/server/repositories/repomanager"
	"github.com/oneearth-admin/oeff-docs/internal/server/router"
	"github.com/oneearth-admin/oeff-docs/internal/server/services"
	"github.com/oneearth-admin/oeff-docs/internal/server/worker"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	service *services.IntakeService
	out     io.Writer
}

// NewApp opens the database, applies migrations when asked and builds the
// intake service.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	schema, err := intake.LoadSchema(c.SchemaFile)
	if err != nil {
		return nil, err
	}
	normalizer, err := intake.NewNormalizer(schema, c.TimeZone, c.IDPrefix, c.IDWidth)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if c.Migrate {
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		logger.Info(ctx, "migrations applied")
	}

	store := objectstore.NewS3Store(objectstore.Config{
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		Bucket:    c.S3Bucket,
		Region:    c.S3Region,
		Endpoint:  c.S3BaseEndpoint,
	})

	svc := services.NewIntakeService(db, rm, normalizer, store, logger)

	return &App{config: c, logger: logger, db: db, service: svc, out: os.Stdout}, nil
}

func (app *App) Close() error {
	return app.db.Close()
}

// Run executes the configured mode.
func (app *App) Run(ctx context.Context) error {
	switch app.config.Mode {
	case config.ModeServe:
		return app.serve(ctx)
	case config.ModeReprocess:
		n, err := app.service.Reprocess(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "reprocessed %d submissions\n", n)
		return nil
	case config.ModeExport:
		return app.export(ctx)
	case config.ModeToken:
		tok, err := auth.GenerateToken("intake-form", []byte(app.config.SecretKey), app.config.TokenValidity)
		if err != nil {
			return err
		}
		fmt.Fprintln(app.out, tok)
		return nil
	}
	return fmt.Errorf("unknown mode %q", app.config.Mode)
}

func (app *App) export(ctx context.Context) error {
	if app.config.Upload {
		url, n, err := app.service.PublishExport(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.out, "exported %d records: %s\n", n, url)
		return nil
	}

	f, err := os.Create(app.config.ExportPath)
	if err != nil {
		return err
	}
	n, err := app.service.ExportCSV(ctx, f)
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "exported %d records to %s\n", n, app.config.ExportPath)
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// serve runs the webhook and the single worker until a signal arrives or
// either of them fails.
func (app *App) serve(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	app.initSignalHandler(cancelFunc)

	q, err := queue.NewRedisQueue(ctx, queue.Options{
		URL:        app.config.RedisURL,
		Name:       app.config.QueueName,
		PopTimeout: app.config.PopTimeout,
	})
	if err != nil {
		return err
	}
	defer q.Close()

	h := handler.New(q, app.service, map[string]handler.Checker{
		"db":    app.db.PingContext,
		"queue": q.Ping,
	}, app.logger)

	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           router.New([]byte(app.config.SecretKey), h, app.logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	app.logger.Info(ctx, "starting intake daemon", "addr", app.config.HTTPAddr, "queue", app.config.QueueName)

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := worker.New(q, app.service, app.logger).Run(ctx); err != nil {
			errs <- err
			cancelFunc()
		}
	}()
	go func() {
		defer wg.Done()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown", "error", err)
	}
	wg.Wait()
	close(errs)

	app.logger.Info(shutdownCtx, "intake daemon stopped")
	return <-errs
}
