package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"homescout/internal/config"
	"homescout/internal/domain/service/recommend"
	"homescout/internal/domain/service/scoring"
	"homescout/internal/infrastructure/crawler"
	"homescout/internal/infrastructure/geo"
	"homescout/internal/infrastructure/persistence"
	"homescout/internal/rank"
	"homescout/internal/server"
	"homescout/internal/tasks"
	"homescout/internal/worker"
	"homescout/pkg/application/connectors"
	"homescout/pkg/application/modules"
	"homescout/pkg/contextx"
	"homescout/pkg/logx"
	"homescout/pkg/middlewarex"
)

const responseLogMaxLen = 2048

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	ctx = contextx.WithLogger(ctx, logger)

	if err := run(ctx); err != nil {
		logger.Error("application error", logx.Error(err))
		os.Exit(1)
	}

	logger.Info("application finished")
}

func run(ctx context.Context) error { //nolint:funlen
	logger := contextx.LoggerFromContextOrDefault(ctx)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger = logger.With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	ctx = contextx.WithLogger(ctx, logger)

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

	tables, err := rank.Load()
	if err != nil {
		return fmt.Errorf("rank.Load: %w", err)
	}

	communityRepo := persistence.NewCommunityRepository(db)
	schoolRepo := persistence.NewSchoolDistrictRepository(db)
	poiRepo := persistence.NewPOIRepository(db)

	engine := scoring.NewEngine(tables)
	recommendService := recommend.NewService(communityRepo, schoolRepo, poiRepo, engine).
		WithScoreWorkers(cfg.Crawler.ScoreWorkers)

	parser := crawler.NewBeikeParser()
	geoClient := geo.NewClient(cfg.Amap.APIKey, geo.WithRadius(cfg.Amap.Radius))
	visits := crawler.NewRedisVisitLog(redisClient)

	newCrawler := func() tasks.DistrictCrawler {
		fetcher := crawler.NewFetcher(cfg.Crawler.DelayMin, cfg.Crawler.DelayMax)

		return worker.NewCrawler(fetcher, parser, communityRepo, poiRepo, geoClient, visits).
			WithRevisitTTL(time.Duration(cfg.Crawler.CacheDays) * 24 * time.Hour)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	})
	defer asynqClient.Close() //nolint:errcheck

	srv := server.NewServer(
		server.NewSearchServer(recommendService),
		server.NewCommunityServer(recommendService, schoolRepo, poiRepo),
		server.NewCrawlServer(asynqClient, parser),
	)

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.ResponseLogging(responseLogMaxLen),
	)
	srv.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(gctx, g, httpServer)
	modules.MetricServer{ListenAddress: cfg.Metrics.ListenAddress}.Run(gctx, g)
	modules.ProbeServer{
		ListenAddress: cfg.Probe.ListenAddress,
		AppName:       cfg.App.Name,
		AppVersion:    cfg.App.Version,
	}.Run(gctx, g)
	modules.AsynqServer{
		RedisAddress:  cfg.Redis.Address,
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DatabaseNumber,
		Concurrency:   cfg.Crawler.QueueWorkers,
	}.Run(gctx, g, modules.AsynqQueues{"default": 1}, modules.AsynqHandler{
		Pattern: tasks.TypeCrawlDistrict,
		Handle:  tasks.NewCrawlHandler(newCrawler).HandleCrawlDistrict,
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func logLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}

	return level
}
