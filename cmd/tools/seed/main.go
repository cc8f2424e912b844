// cmd/tools/seed/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/districtpadel/league/internal/config"
	"github.com/districtpadel/league/internal/db"
	"github.com/districtpadel/league/internal/provider"
)

func main() {
	var (
		configPath    = flag.String("config", "config.yaml", "Path to configuration file")
		fixturePath   = flag.String("fixture", "", "YAML league fixture to import")
		adminUsername = flag.String("admin-username", "", "Create or reset this admin user")
		adminEmail    = flag.String("admin-email", "", "Email for a newly created admin user")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *fixturePath == "" && *adminUsername == "" {
		log.Error().Msg("Nothing to do: pass -fixture and/or -admin-username")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	ctx := context.Background()

	if *fixturePath != "" {
		fixture, err := provider.LoadFixture(*fixturePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load fixture")
		}
		summary, err := importFixture(ctx, database, fixture)
		if err != nil {
			log.Fatal().Err(err).Str("fixture", *fixturePath).Msg("Failed to import fixture")
		}
		log.Info().
			Int("teams", summary.Teams).
			Int("players", summary.Players).
			Int("matches", summary.Matches).
			Int("sets", summary.Sets).
			Msg("Imported fixture")
	}

	if *adminUsername != "" {
		password := os.Getenv("SEED_ADMIN_PASSWORD")
		email := *adminEmail
		if email == "" {
			email = *adminUsername + "@localhost"
		}
		created, err := ensureAdmin(ctx, database.Queries, *adminUsername, email, password)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to provision admin user (password is read from SEED_ADMIN_PASSWORD)")
		}
		log.Info().Str("username", *adminUsername).Bool("created", created).Msg("Admin user ready")
	}
}
