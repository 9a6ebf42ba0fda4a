package main

import (
	"context"
	"flag"
	"os"

	"bookshelf/internal/config"
	"bookshelf/internal/platform/logger"
	"bookshelf/internal/platform/postgres"

	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.Log.Level, "console")

	if *command == "create" {
		if *name == "" {
			log.Fatal().Msg("name is required for 'create' command")
		}
		if err := goose.Create(nil, migrationsDir(), *name, "sql"); err != nil {
			log.Fatal().Err(err).Msg("create migration")
		}
		log.Info().Str("name", *name).Msg("migration created")
		return
	}

	ctx := context.Background()
	pool, err := postgres.Open(ctx, cfg.Database, log, cfg.Log.SQL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()

	fsys, dir := migrationsSource()
	if err := postgres.Migrate(ctx, pool, fsys, dir, *command, log); err != nil {
		log.Error().Err(err).Str("command", *command).Msg("migration failed")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Str("command", *command).Msg("migration finished")
}
