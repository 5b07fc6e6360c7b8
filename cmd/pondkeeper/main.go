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
	"time"

	"github.com/anglerhub/pondkeeper/internal/database/migrations"
	"github.com/anglerhub/pondkeeper/internal/rest"
	"github.com/anglerhub/pondkeeper/internal/setup"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Server timeouts.
const (
	ReadTimeout     = 5 * time.Second
	WriteTimeout    = 10 * time.Second
	ShutdownTimeout = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "pondkeeper",
		Usage: "Reputation ledger and moderation service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serve,
			},
			{
				Name:  "db",
				Usage: "Database management",
				Commands: []*cli.Command{
					{
						Name:  "init",
						Usage: "Initialize migration tables",
						Action: withMigrator(func(ctx context.Context, migrator *migrate.Migrator, _ *zap.Logger) error {
							return migrator.Init(ctx)
						}),
					},
					{
						Name:  "migrate",
						Usage: "Run pending migrations",
						Action: withMigrator(func(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger) error {
							if err := migrator.Lock(ctx); err != nil {
								return err
							}
							defer migrator.Unlock(ctx) //nolint:errcheck

							group, err := migrator.Migrate(ctx)
							if err != nil {
								return err
							}

							if group.IsZero() {
								logger.Info("No new migrations to run (database is up to date)")
								return nil
							}

							logger.Info("Successfully migrated", zap.String("group", group.String()))

							return nil
						}),
					},
					{
						Name:  "rollback",
						Usage: "Rollback the last migration group",
						Action: withMigrator(func(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger) error {
							if err := migrator.Lock(ctx); err != nil {
								return err
							}
							defer migrator.Unlock(ctx) //nolint:errcheck

							group, err := migrator.Rollback(ctx)
							if err != nil {
								return err
							}

							if group.IsZero() {
								logger.Info("No groups to roll back")
								return nil
							}

							logger.Info("Successfully rolled back", zap.String("group", group.String()))

							return nil
						}),
					},
					{
						Name:  "status",
						Usage: "Show migration status",
						Action: withMigrator(func(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger) error {
							ms, err := migrator.MigrationsWithStatus(ctx)
							if err != nil {
								return err
							}

							logger.Info("Migration status",
								zap.String("migrations", ms.String()),
								zap.String("unapplied", ms.Unapplied().String()),
								zap.String("last_group", ms.LastGroup().String()))

							return nil
						}),
					},
				},
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

// serve starts the HTTP API with migrations applied, then blocks until a
// shutdown signal arrives.
func serve(ctx context.Context, _ *cli.Command) error {
	app, err := setup.InitializeApp(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Cleanup(context.Background())

	handler := rest.NewServer(app.DB, &app.Config.Server, app.Logger)
	addr := fmt.Sprintf("%s:%d", app.Config.Server.Host, app.Config.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	go func() {
		log.Printf("API server started on %s", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("Failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	app.Logger.Info("Shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	app.Logger.Info("Server gracefully stopped")

	return nil
}

// withMigrator wraps a migration action with connection setup and teardown.
func withMigrator(
	action func(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger) error,
) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		app, err := setup.InitializeApp(ctx, false)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer app.Cleanup(context.Background())

		migrator := migrate.NewMigrator(app.DB.DB(), migrations.Migrations)

		return action(ctx, migrator, app.Logger)
	}
}
