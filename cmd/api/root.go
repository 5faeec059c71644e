package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"go-basic-tasks/backend/internal/config"
	"go-basic-tasks/backend/internal/database"
	"go-basic-tasks/backend/internal/routes"
)

var (
	envFile     string
	httpAddr    string
	migrateOnUp bool
)

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Per-user task list API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or inspect database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: withDB(func(ctx context.Context, db *sqlx.DB) error {
		return database.MigrateUp(ctx, db)
	}),
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	RunE: withDB(func(ctx context.Context, db *sqlx.DB) error {
		return database.MigrateDown(ctx, db)
	}),
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print migration status",
	RunE: withDB(func(ctx context.Context, db *sqlx.DB) error {
		return database.MigrationStatus(ctx, db)
	}),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default: ./.env if present)")

	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&httpAddr, "addr", "", "listen address (overrides HTTP_ADDR)")
		c.Flags().BoolVar(&migrateOnUp, "migrate", false, "apply pending migrations before serving")
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// loadConfig は設定を読み込み、ロガーを初期化します。
func loadConfig() *config.Config {
	cfg := config.Load(envFile)
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	setupLogger(cfg)
	if !cfg.EnvFileLoaded {
		log.Debug().Str("env_file", envFile).Msg("no .env file loaded, using process environment")
	}
	return cfg
}

// setupLogger は LOG_LEVEL と LOG_FORMAT に従ってグローバルロガーを設定します。
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.EqualFold(cfg.LogFormat, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

func withDB(fn func(ctx context.Context, db *sqlx.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		ctx := cmd.Context()
		db, err := database.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		return fn(ctx, db)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrateOnUp {
		if err := database.MigrateUp(ctx, db); err != nil {
			return err
		}
	}

	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           routes.SetupRouter(db, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
