package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fairprice/backend/internal/api/handler"
	"fairprice/backend/internal/catalog"
	"fairprice/backend/internal/config"
	"fairprice/backend/internal/feed"
	"fairprice/backend/internal/localization"
	"fairprice/backend/internal/report"
	"fairprice/backend/internal/storage"
	"fairprice/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// setupRedis connects when REDIS_ADDR is set. Without it the feed stays
// inside this process.
func setupRedis(ctx context.Context, cfg config.Config, logger *logrus.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, live feed is process-local")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.WithError(err).Fatal("failed to connect Redis")
	}
	logger.WithField("addr", cfg.RedisAddr).Info("Redis connection established")
	return rdb
}

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)
	logger.Info("Starting fair-price backend...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Catalog. A missing file is fatal at startup; later requests answer 503.
	cat := catalog.NewCache(cfg.CatalogPath, catalog.DistrictResolver(cfg.DistrictStrategy))
	list, err := cat.Get()
	if err != nil {
		logger.WithError(err).WithField("path", cfg.CatalogPath).Fatal("failed to load catalog")
	}
	logger.WithField("businesses", len(list)).Info("catalog loaded")

	// 2. Report log, feed hub and the optional Redis relay
	rdb := setupRedis(ctx, cfg, logger)
	store := storage.NewStorageService(cfg.ReportPath, rdb, cfg.Location())

	hub := feed.NewManagerService(logger)
	go hub.Run(ctx)

	var notifier report.Notifier = hub
	if rdb != nil {
		notifier = store
		hub.StartPubSubListener(ctx, store)
	}
	reports := report.NewService(store, notifier, logger, cfg.Location())

	localizer, err := localization.NewLocalizer(cfg.LocalesDir, cfg.DefaultLanguage)
	if err != nil {
		logger.WithError(err).Fatal("failed to create localizer")
	}

	// 3. Telegram front end
	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBotService(cfg.TelegramToken, cfg.TelegramDebug, cat, reports, hub, localizer, logger)
		if err != nil {
			logger.WithError(err).Fatal("failed to start Telegram bot")
		}
		go bot.Run(ctx)
	}

	// 4. HTTP
	gin.SetMode(gin.ReleaseMode)
	h := handler.NewHandler(cat, reports, hub, localizer, logger)
	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        handler.NewRouter(h, logger, cfg.CORSOrigins),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
