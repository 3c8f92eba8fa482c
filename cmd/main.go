package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shortlink-service/config"
	_ "shortlink-service/docs"
	"shortlink-service/internal/handler"
	"shortlink-service/internal/maintenance"
	"shortlink-service/internal/producer"
	"shortlink-service/internal/repository"
	"shortlink-service/internal/router"
	"shortlink-service/internal/service"
	"shortlink-service/internal/storage"
	"shortlink-service/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

//	@title			Shortlink Service API
//	@version		1.0
//	@description	Сервис коротких ссылок: генерация кодов, редиректы и аналитика переходов

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := storage.ConnectDB(&cfg.DB, log)
	if db == nil {
		log.Fatal("Не удалось подключиться к базе данных")
	}
	storage.Migrate(db, log)

	rdb := storage.ConnectRedis(&cfg.Redis, log)

	linkRepo := repository.NewShortLinkRepository(db)
	clickRepo := repository.NewClickRepository(db)
	linkCache := storage.NewLinkCache(rdb, log)

	var clickProducer *producer.ClickProducer
	var publisher service.ClickPublisher
	if len(cfg.KafkaBrokers) > 0 {
		clickProducer = producer.NewClickProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		publisher = clickProducer
		log.Info("Публикация событий кликов в Kafka включена",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	linkService := service.NewShortLinkService(linkRepo, linkCache, log, cfg.Code.Strategy, cfg.Code.Length)
	clickService := service.NewClickService(clickRepo, publisher, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := maintenance.NewScheduler(log, clickRepo)
	if err := scheduler.Start(ctx); err != nil {
		log.Fatal("Не удалось запустить планировщик", zap.Error(err))
	}

	linkHandler := handler.NewLinkHandler(linkService, clickService, cfg)
	r := router.Router(log, rdb, linkHandler, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("Запуск HTTP-сервера", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP-сервер завершился с ошибкой", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Остановка сервера...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Ошибка остановки HTTP-сервера", zap.Error(err))
	}

	if clickProducer != nil {
		if err := clickProducer.Close(); err != nil {
			log.Error("Ошибка закрытия Kafka-продюсера", zap.Error(err))
		}
	}
	storage.CloseRedis(rdb, log)
	storage.CloseDB(db, log)
	log.Info("Server exiting")
}
