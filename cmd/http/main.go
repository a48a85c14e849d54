package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"strokewatch-service/internal/app/config"
	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/app/delivery/http/routers"
	"strokewatch-service/internal/app/drivers/database"
	"strokewatch-service/internal/app/drivers/logger"
	"strokewatch-service/internal/app/drivers/messaging"
	"strokewatch-service/internal/app/drivers/storage"
	"strokewatch-service/internal/app/services/fhir/resources"
	"strokewatch-service/internal/app/services/imports"
	"strokewatch-service/internal/app/services/prediction"
	sharedevents "strokewatch-service/internal/app/services/shared/events"
	"strokewatch-service/internal/app/services/shared/ratelimiter"
	sharedredis "strokewatch-service/internal/app/services/shared/redis"
	sharedstorage "strokewatch-service/internal/app/services/shared/storage"
	"strokewatch-service/internal/app/services/system"

	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	logger.InitLogger(internalConfig)

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	mongoClient, err := database.NewMongoDB(driverConfig)
	if err != nil {
		logrus.Fatalf("mongo initialization failed: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logrus.Errorf("mongo disconnect failed: %v", err)
		}
	}()

	redisClient, err := database.NewRedisClient(driverConfig)
	if err != nil {
		logrus.Fatalf("redis initialization failed: %v", err)
	}
	defer redisClient.Close()

	var eventPublisher contracts.EventPublisher = sharedevents.NewNoopPublisher()
	if driverConfig.RabbitMQ.Enabled {
		rabbitConn, err := messaging.NewRabbitMQConnection(driverConfig)
		if err != nil {
			logrus.Fatalf("rabbitmq initialization failed: %v", err)
		}
		defer rabbitConn.Close()

		eventPublisher, err = sharedevents.NewRabbitMQPublisher(rabbitConn, zapLogger)
		if err != nil {
			logrus.Fatalf("rabbitmq publisher initialization failed: %v", err)
		}
	}

	var archiveStorage contracts.Storage = sharedstorage.NewNoopStorage()
	if driverConfig.Minio.Enabled {
		minioClient, err := storage.NewMinioClient(driverConfig)
		if err != nil {
			logrus.Fatalf("minio initialization failed: %v", err)
		}
		archiveStorage = sharedstorage.NewMinioStorage(minioClient, driverConfig.Minio.BucketName)
	}

	mongoDatabase := mongoClient.Database(driverConfig.MongoDB.DbName)
	resourceRepository := resources.NewResourceMongoRepository(mongoDatabase)
	resourceUsecase := resources.NewResourceUsecase(resourceRepository, zapLogger)
	resourceController := resources.NewResourceController(zapLogger, resourceUsecase)

	redisRepository := sharedredis.NewRedisRepository(redisClient)
	predictLimiter := ratelimiter.NewResourceLimiter(redisRepository, zapLogger)

	featureExtractor := prediction.NewFeatureExtractor(resourceRepository)
	modelClient := prediction.NewModelClient(
		internalConfig.ModelService.BaseUrl,
		time.Duration(internalConfig.ModelService.TimeoutInSeconds)*time.Second,
	)
	predictionUsecase := prediction.NewPredictionUsecase(featureExtractor, modelClient, resourceRepository, eventPublisher, zapLogger)
	predictionController := prediction.NewPredictionController(zapLogger, predictionUsecase)

	importUsecase := imports.NewImportUsecase(resourceRepository, archiveStorage, eventPublisher, zapLogger)
	importController := imports.NewImportController(zapLogger, importUsecase, internalConfig.Import.MaxUploadSizeInMegabyte)

	systemController := system.NewSystemController(zapLogger, mongoClient)

	router := routers.SetupRouter(&routers.RouterDependencies{
		Logger:               zapLogger,
		InternalConfig:       internalConfig,
		SystemController:     systemController,
		ResourceController:   resourceController,
		PredictionController: predictionController,
		ImportController:     importController,
		PredictLimiter:       predictLimiter,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: router,
	}

	go func() {
		logrus.Infof("http server listening on %s", internalConfig.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("http server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(internalConfig.App.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("http server shutdown failed: %v", err)
	}
	logrus.Info("http server stopped cleanly")
}
