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

	"github.com/AdamBeresnev/tourney-bot/internal/command"
	"github.com/AdamBeresnev/tourney-bot/internal/config"
	"github.com/AdamBeresnev/tourney-bot/internal/db"
	"github.com/AdamBeresnev/tourney-bot/internal/gateway"
	"github.com/AdamBeresnev/tourney-bot/internal/heartbeat"
	"github.com/AdamBeresnev/tourney-bot/internal/service"
	"github.com/AdamBeresnev/tourney-bot/internal/store"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	flags := pflag.NewFlagSet("tourney-bot", pflag.ExitOnError)
	envFile := flags.String("env-file", ".env", "optional dotenv file loaded before reading the environment")
	migrateOnly := flags.Bool("migrate-only", false, "apply database migrations for the configured backend and exit")
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		"token_present", cfg.DiscordToken != "",
		"token_length", len(cfg.DiscordToken),
		"port", cfg.Port,
		"store", cfg.StoreBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recordStore, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open tournament store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	if *migrateOnly {
		logger.Info("store initialized, exiting", "store", cfg.StoreBackend)
		return
	}

	registrations, err := service.NewRegistrationService(ctx, recordStore, logger)
	if err != nil {
		logger.Error("failed to load tournament data", "error", err)
		os.Exit(1)
	}

	dispatcher := command.NewDispatcher(cfg.CommandPrefix, registrations, logger)
	bot, err := gateway.New(cfg.DiscordToken, dispatcher, logger)
	if err != nil {
		logger.Error("failed to create discord bot", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, bot, logger); err != nil {
		logger.Error("bot stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(ctx context.Context, cfg *config.Config, bot *gateway.Bot, logger *slog.Logger) error {
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newRouter(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting health server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down health server", "timeout", shutdownTimeout)
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
			return fmt.Errorf("health server shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return bot.Run(gCtx)
	})

	if cfg.HeartbeatEnabled() {
		beat := heartbeat.New(bot, cfg.HeartbeatChannel, cfg.HeartbeatInterval, logger)
		g.Go(func() error {
			return beat.RunWhenReady(gCtx, bot.Ready())
		})
	}

	return g.Wait()
}

func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// openStore builds the configured record store and returns a cleanup func.
func openStore(cfg *config.Config, logger *slog.Logger) (store.Store, func(), error) {
	if cfg.StoreBackend == config.BackendFile {
		return store.NewFileStore(cfg.DataFile, logger), func() {}, nil
	}

	driver := db.DriverSQLite
	if cfg.StoreBackend == config.BackendPostgres {
		driver = db.DriverPostgres
	}

	database, err := db.InitDB(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(database.DB, driver); err != nil {
		database.Close()
		return nil, nil, err
	}

	closeDB := func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database connection", "error", err)
		}
	}
	return store.NewTournamentStore(database, logger), closeDB, nil
}
