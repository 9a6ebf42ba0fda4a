package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/platform/logger"
	"bookshelf/internal/platform/postgres"

	"github.com/rs/zerolog"
)

func main() {
	count := flag.Int("count", 100, "Number of books to insert")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.Log.Level, "console")

	if cfg.Storage.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.Storage.Driver).Msg("seeding needs the postgres driver")
	}

	ctx := context.Background()
	pool, err := postgres.Open(ctx, cfg.Database, log, cfg.Log.SQL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()

	service := book.NewService(book.NewPostgresRepo(pool, cfg.Database.QueryTimeout))
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	inserted, err := seed(ctx, service, rng, *count, log)
	if err != nil {
		log.Error().Err(err).Int("inserted", inserted).Msg("seed failed")
		pool.Close()
		os.Exit(1)
	}

	total, err := service.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("count books")
		return
	}
	log.Info().Int("inserted", inserted).Int("total", len(total)).Msg("seed finished")
}

// seed creates count books through the service so every row passes the
// same validation as API writes.
func seed(ctx context.Context, service *book.Service, rng *rand.Rand, count int, log zerolog.Logger) (int, error) {
	for i := 0; i < count; i++ {
		title := fmt.Sprintf("%s of %s", randomWord(rng), randomWord(rng))
		isbn := randomISBN13(rng)
		if _, err := service.Create(ctx, book.CreateInput{Title: &title, ISBN: &isbn}); err != nil {
			return i, err
		}
		if (i+1)%100 == 0 {
			log.Info().Int("done", i+1).Int("count", count).Msg("seeding")
		}
	}
	return count, nil
}

// randomISBN13 returns a 978-prefixed ISBN-13 with a correct check digit.
func randomISBN13(rng *rand.Rand) string {
	digits := make([]byte, 0, 13)
	digits = append(digits, '9', '7', '8')
	for len(digits) < 12 {
		digits = append(digits, byte('0'+rng.Intn(10)))
	}

	sum := 0
	for i, d := range digits {
		n := int(d - '0')
		if i%2 == 1 {
			n *= 3
		}
		sum += n
	}
	digits = append(digits, byte('0'+(10-sum%10)%10))
	return string(digits)
}

func randomWord(rng *rand.Rand) string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rng.Intn(len(words))]
}
