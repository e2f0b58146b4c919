package main

import (
	"context"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	httprouter "github.com/TimBERNIC/tedvin-backend/internal/adapter/http/router"

	"github.com/TimBERNIC/tedvin-backend/internal/adapter/http/handler"
	"github.com/TimBERNIC/tedvin-backend/internal/adapter/messaging/nats"
	"github.com/TimBERNIC/tedvin-backend/internal/adapter/repository/cache"
	"github.com/TimBERNIC/tedvin-backend/internal/adapter/repository/mongodb"
	"github.com/TimBERNIC/tedvin-backend/internal/adapter/storage/s3"
	"github.com/TimBERNIC/tedvin-backend/internal/config"
	"github.com/TimBERNIC/tedvin-backend/internal/mailer"
	"github.com/TimBERNIC/tedvin-backend/internal/platform/logger"
	"github.com/TimBERNIC/tedvin-backend/internal/platform/tracer"
	"github.com/TimBERNIC/tedvin-backend/internal/usecase"
)

func main() {
	// Load .env if present; environment variables are the source of truth.
	envLoaded := godotenv.Load() == nil

	log := logger.New()
	if !envLoaded {
		log.Debug("No .env file found, relying on environment variables")
	}
	defer log.Sync()

	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	tp, err := tracer.Init(ctx, cfg.ServiceName, cfg.OTExporterOTLPEndpoint)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	if tp != nil {
		defer tp.Shutdown(ctx)
	}

	mongoClient, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)
	db := mongoClient.Database(cfg.MongoDatabase)

	userRepo := mongodb.NewUserRepository(db, log)
	offerRepo := mongodb.NewOfferRepository(db, log)

	storage, err := s3.NewMediaStorage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, log)
	if err != nil {
		log.Fatal("Failed to initialize media storage", zap.Error(err))
	}

	var offerCache usecase.OfferCache
	if cfg.RedisAddress != "" {
		c, err := cache.NewOfferCache(cfg.RedisAddress)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		offerCache = c
	}

	var publisher usecase.EventPublisher
	if cfg.NATSURL != "" {
		p, err := nats.NewPublisher(cfg.NATSURL)
		if err != nil {
			log.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	}

	var mail mailer.Sender
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPSender, log)
	}

	userUC := usecase.NewUserUsecase(userRepo, offerRepo, storage, offerCache, publisher, mail, cfg.StorageNamespace, log)
	offerUC := usecase.NewOfferUsecase(offerRepo, userRepo, storage, offerCache, publisher, mail, cfg.StorageNamespace, log)

	userHandler := handler.NewUserHandler(userUC, log)
	offerHandler := handler.NewOfferHandler(offerUC, log)

	r := httprouter.New(userHandler, offerHandler, userUC, log)

	log.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
	if err := http.ListenAndServe(":"+cfg.HTTPPort, r); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}
}
