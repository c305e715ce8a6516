package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fairprice/backend/internal/catalog"
	"fairprice/backend/internal/config"
	"fairprice/backend/internal/report"
	"fairprice/backend/internal/storage"

	"github.com/redis/go-redis/v9"
)

const usage = `Usage: admin <command> [args]

Commands:
  districts                                   business count per district
  stats [district]                            dashboard counters
  export <out.xlsx> [district]                write the catalog as a spreadsheet
  reports <business>                          report thread, newest first
  report <business> <nickname> <kind> <body>  append a report`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)
	ctx := context.Background()

	// Redis is only used to announce reports added from here.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
	}
	store := storage.NewStorageService(cfg.ReportPath, rdb, cfg.Location())
	var notifier report.Notifier
	if rdb != nil {
		notifier = store
	}
	reports := report.NewService(store, notifier, logger, cfg.Location())

	a := &admin{
		out:     os.Stdout,
		catalog: catalog.NewCache(cfg.CatalogPath, catalog.DistrictResolver(cfg.DistrictStrategy)),
		reports: reports,
		now:     func() time.Time { return time.Now().In(cfg.Location()) },
	}

	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
