package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kotsioskl2/vehicle-market/internal/adapter/auth"
	"github.com/kotsioskl2/vehicle-market/internal/adapter/messaging/nats"
	"github.com/kotsioskl2/vehicle-market/internal/adapter/repository/mongodb"
	"github.com/kotsioskl2/vehicle-market/internal/adapter/rest"
	"github.com/kotsioskl2/vehicle-market/internal/adapter/storage/s3"
	"github.com/kotsioskl2/vehicle-market/internal/config"
	"github.com/kotsioskl2/vehicle-market/internal/listing/usecase"
	"github.com/kotsioskl2/vehicle-market/internal/mailer"
	"github.com/kotsioskl2/vehicle-market/internal/platform/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(*logLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	mongoClient, err := mongodb.Connect(&cfg.Mongo)
	if err != nil {
		zl.Fatal("mongo connection failed", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.Mongo.Database)

	listingRepo := mongodb.NewListingRepository(db, zl)
	userRepo := mongodb.NewUserRepository(db, zl)

	storage, err := s3.NewStorage(cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL, zl)
	if err != nil {
		zl.Fatal("object storage init failed", zap.Error(err))
	}

	publisher, err := nats.NewPublisher(cfg.NATS.URL)
	if err != nil {
		zl.Fatal("nats connection failed", zap.Error(err))
	}
	defer publisher.Close()

	rdb, err := auth.NewRedisClient(&cfg.Redis, zl)
	if err != nil {
		zl.Fatal("redis connection failed", zap.Error(err))
	}
	defer rdb.Close()
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, rdb, zl)

	moderationMailer := mailer.New(&cfg.SMTP)

	photos := usecase.NewPhotoUsecase(storage, zl)
	listings := usecase.NewListingUsecase(listingRepo, publisher, zl)
	newForm := func() *usecase.FormController {
		return usecase.NewFormController(photos, listingRepo, publisher, moderationMailer, cfg.SMTP.ModerationEmail, zl)
	}
	dashboard := usecase.NewDashboardController(listingRepo, userRepo, zl)

	handler := rest.NewHandler(listings, newForm, dashboard, zl)
	router := rest.NewRouter(handler, verifier, zl)
	server := rest.NewServer(&cfg.HTTP, router, zl)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zl.Fatal("http server failed", zap.Error(err))
		}
	case sig := <-stop:
		zl.Info("shutdown signal received", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zl.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
