// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/districtpadel/league/internal/config"
	"github.com/districtpadel/league/internal/db"
	"github.com/districtpadel/league/internal/email"
	"github.com/districtpadel/league/internal/leagues"
	"github.com/districtpadel/league/internal/provider"
	"github.com/districtpadel/league/internal/ratelimit"
	"github.com/districtpadel/league/internal/scheduler"
)

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	database, err := db.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	source, err := newProvider(cfg, database)
	if err != nil {
		return err
	}
	standings, err := leagues.NewStandingsService(source, leagues.NewEngine(cfg.LeagueLanguage()))
	if err != nil {
		return fmt.Errorf("create standings service: %w", err)
	}

	notifier, err := newNotifier(ctx, cfg)
	if err != nil {
		return err
	}

	limiter := ratelimit.New(&ratelimit.Config{
		MaxAttempts:  cfg.Auth.LoginMaxAttempts,
		Lockout:      cfg.LoginWindow(),
		MaxIPPerHour: ratelimit.DefaultConfig().MaxIPPerHour,
	})
	defer limiter.Close()

	if err := scheduler.Init(); err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	if err := scheduler.RegisterOverdueResultsJob(database, notifier, cfg.App.Name, cfg.Scheduler.OverdueResultsCron); err != nil {
		return err
	}
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
	}()

	server := newServer(cfg, serverDeps{
		database:  database,
		standings: standings,
		notifier:  notifier,
		limiter:   limiter,
	})

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newProvider serves standings from the fixture file when one is configured
// and from the database otherwise.
func newProvider(cfg *config.Config, database *db.DB) (leagues.Provider, error) {
	if cfg.League.FixtureFile == "" {
		return provider.NewDatabase(database.Queries), nil
	}
	fixture, err := provider.LoadFixture(cfg.League.FixtureFile)
	if err != nil {
		return nil, fmt.Errorf("load league fixture: %w", err)
	}
	log.Info().Str("fixture_file", cfg.League.FixtureFile).Msg("Serving standings from fixture file")
	return fixture, nil
}

func newNotifier(ctx context.Context, cfg *config.Config) (*email.Notifier, error) {
	if !cfg.Email.Enabled {
		log.Info().Msg("Email notifications disabled")
		return nil, nil
	}
	client, err := email.NewSESClient(
		ctx,
		os.Getenv("AWS_ACCESS_KEY_ID"),
		os.Getenv("AWS_SECRET_ACCESS_KEY"),
		cfg.Email.Region,
		cfg.Email.Sender,
	)
	if err != nil {
		return nil, fmt.Errorf("create SES client: %w", err)
	}
	log.Info().Int("recipients", len(cfg.Email.NotifyRecipients)).Msg("Email notifications enabled")
	return email.NewNotifier(client, cfg.Email.Sender, cfg.Email.NotifyRecipients), nil
}
