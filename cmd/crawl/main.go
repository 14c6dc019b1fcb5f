// Одноразовый запуск обхода района без очереди:
//
//	go run cmd/crawl/main.go -city 上海 -district pudong -pages 3
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"homescout/internal/config"
	"homescout/internal/infrastructure/crawler"
	"homescout/internal/infrastructure/geo"
	"homescout/internal/infrastructure/persistence"
	"homescout/internal/worker"
	"homescout/pkg/application/connectors"
	"homescout/pkg/contextx"
	"homescout/pkg/logx"
)

func main() {
	city := flag.String("city", "", "city name, e.g. 上海")
	district := flag.String("district", "", "district slug, e.g. pudong")
	pages := flag.Int("pages", 3, "list pages to crawl")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	ctx = contextx.WithLogger(ctx, logger)

	if *city == "" || *district == "" {
		logger.Error("both -city and -district are required")
		os.Exit(1)
	}

	if err := run(ctx, *city, *district, *pages); err != nil {
		logger.Error("crawl error", logx.Error(err))
		os.Exit(1)
	}

	logger.Info("crawl finished")
}

func run(ctx context.Context, city, district string, pages int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	rds := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	redisClient := rds.Client(ctx)
	defer rds.Close(ctx)

	crawlWorker := worker.NewCrawler(
		crawler.NewFetcher(cfg.Crawler.DelayMin, cfg.Crawler.DelayMax),
		crawler.NewBeikeParser(),
		persistence.NewCommunityRepository(db),
		persistence.NewPOIRepository(db),
		geo.NewClient(cfg.Amap.APIKey, geo.WithRadius(cfg.Amap.Radius)),
		crawler.NewRedisVisitLog(redisClient),
	).WithRevisitTTL(time.Duration(cfg.Crawler.CacheDays) * 24 * time.Hour)

	if err := crawlWorker.Run(ctx, city, district, pages); err != nil {
		return fmt.Errorf("crawlWorker.Run: %w", err)
	}

	return nil
}
