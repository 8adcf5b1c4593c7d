package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"wechat_fetcher/internal/classify"
	"wechat_fetcher/internal/config"
	"wechat_fetcher/internal/publisher"
	"wechat_fetcher/internal/repository"
	"wechat_fetcher/internal/scheduler"
	"wechat_fetcher/internal/service"
	"wechat_fetcher/internal/source/dajiala"
	"wechat_fetcher/internal/storage/snapshot"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	client := dajiala.New(dajiala.Config{
		BaseURL:         cfg.API.BaseURL,
		Key:             cfg.API.Key,
		PageSize:        cfg.API.PageSize,
		ListingTimeout:  cfg.API.ListingTimeout,
		ContentTimeout:  cfg.API.ContentTimeout,
		ListingInterval: cfg.API.ListingInterval,
		ContentInterval: cfg.API.ContentInterval,
		ListingPrice:    cfg.API.ListingPrice,
		ContentPrice:    cfg.API.ContentPrice,
	}, logger)

	classifier := classify.New(taxonomyFromConfig(cfg.Categories), "")
	repo := repository.New(classifier)
	store := snapshot.NewStore(cfg.Snapshot.Dir, logger)

	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	coordinator := service.NewBatchCoordinator(
		client,
		repo,
		store,
		pub,
		cfg.DomainAccounts(),
		logger,
		cfg.Sync,
	)

	sched := scheduler.NewScheduler(coordinator, cfg.Schedule, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting wechat syncer",
		"accounts", len(cfg.Accounts),
		"interval", cfg.Schedule.Interval,
		"daily_at", cfg.Schedule.DailyAt,
		"max_pages", cfg.Sync.MaxPages,
	)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

// taxonomyFromConfig converts configured categories; an empty list
// falls back to the built-in taxonomy inside classify.New.
func taxonomyFromConfig(categories []config.CategoryConfig) []classify.Category {
	taxonomy := make([]classify.Category, 0, len(categories))
	for _, c := range categories {
		taxonomy = append(taxonomy, classify.Category{ID: c.ID, Keywords: c.Keywords})
	}
	return taxonomy
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
