package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"bookcrud/internal/book"
	"bookcrud/internal/config"
	"bookcrud/internal/platform/logging"
	"bookcrud/internal/store"

	"github.com/brianvoe/gofakeit/v6"
)

const progressEvery = 1000

func main() {
	count := flag.Int("count", 100, "number of books to insert")
	seed := flag.Int64("seed", 0, "faker seed, 0 picks a random one")
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	if err := seedBooks(context.Background(), cfg, logger, *count, *seed); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func seedBooks(ctx context.Context, cfg config.Config, logger *slog.Logger, count int, seed int64) error {
	dsn := cfg.Database.ConnString()
	db, err := store.Open(ctx, cfg.DBDriver, dsn)
	if err != nil {
		return fmt.Errorf("open database (%s): %w", config.RedactDSN(dsn), err)
	}
	defer db.Close()

	// Per-book mutation logs are replaced by the progress records below.
	svc := book.NewService(book.NewPostgresRepo(db, cfg.DBTimeout), logging.Discard())
	inserted, err := insertFakeBooks(ctx, svc, gofakeit.New(seed), count, logger)
	if err != nil {
		return err
	}

	all, err := svc.List(ctx)
	if err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	logger.Info("seed finished", "inserted", inserted, "total", len(all))
	return nil
}

// bookCreator is the slice of book.Service the seeder needs.
type bookCreator interface {
	Create(ctx context.Context, title, author string) (book.Book, error)
}

func insertFakeBooks(ctx context.Context, svc bookCreator, faker *gofakeit.Faker, count int, logger *slog.Logger) (int, error) {
	logger.Info("generating books", "count", count)
	for i := 0; i < count; i++ {
		info := faker.Book()
		b, err := svc.Create(ctx, truncate(info.Title), truncate(info.Author))
		if err != nil {
			return i, fmt.Errorf("insert book %d: %w", i+1, err)
		}
		logger.Debug("book inserted", "id", b.ID, "title", b.Title)

		if (i+1)%progressEvery == 0 {
			logger.Info("progress", "inserted", i+1, "count", count)
		}
	}
	return count, nil
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > book.MaxFieldLength {
		return string(r[:book.MaxFieldLength])
	}
	return s
}
