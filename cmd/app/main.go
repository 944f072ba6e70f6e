package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hubflow/cmd"
	httpin "hubflow/internal/adapters/in/http"
	"hubflow/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("hubflow: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "hubflow",
		Short:         "Hub routing, admin approval and OTP pickup for Kerala deliveries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var migrateOnStart bool
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			return runServe(c.Context(), migrateOnStart)
		},
	}
	serve.Flags().BoolVar(&migrateOnStart, "migrate", false, "migrate the schema before serving")

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(*cobra.Command, []string) error {
			cfg, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			if err = postgres.Migrate(db); err != nil {
				return err
			}
			logger.Info("schema migrated", "database", cfg.DBName)
			return nil
		},
	}

	var seedFile string
	seed := &cobra.Command{
		Use:   "seed-hubs",
		Short: "Create the district hubs listed in a YAML file",
		RunE: func(c *cobra.Command, _ []string) error {
			return runSeed(c.Context(), seedFile)
		},
	}
	seed.Flags().StringVarP(&seedFile, "file", "f", "", "seed file (default HUB_SEED_FILE)")

	root.AddCommand(serve, migrate, seed)
	return root
}

// bootstrap loads the configuration, builds the logger and opens the database.
func bootstrap() (cmd.Config, *slog.Logger, *gorm.DB, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cmd.Config{}, nil, nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		return cmd.Config{}, nil, nil, fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return cmd.Config{}, nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, logger, db, nil
}

func runServe(ctx context.Context, migrateOnStart bool) error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	if migrateOnStart {
		if err = postgres.Migrate(db); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(cfg, db, logger)
	if err != nil {
		return err
	}

	jobManager, err := app.CreateJobManager(ctx)
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := httpin.NewEcho(httpin.NewServer(app.CreateHTTPHandlers()), logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", cfg.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func runSeed(ctx context.Context, file string) error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	if file == "" {
		file = cfg.HubSeedFile
	}

	seed, err := cmd.LoadHubSeed(file)
	if err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(cfg, db, logger)
	if err != nil {
		return err
	}
	created, skipped, err := cmd.SeedHubs(ctx, app.CreateCreateHubCommandHandler(), seed, logger)
	if err != nil {
		return err
	}
	logger.Info("hub seed finished", "created", created, "skipped", skipped)
	return nil
}
