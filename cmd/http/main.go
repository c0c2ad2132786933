package main

import (
	"billsync-service/internal/app/config"
	"billsync-service/internal/app/delivery/http/controllers"
	"billsync-service/internal/app/delivery/http/middlewares"
	"billsync-service/internal/app/delivery/http/routers"
	"billsync-service/internal/app/drivers/database"
	"billsync-service/internal/app/drivers/logger"
	"billsync-service/internal/app/drivers/messaging"
	"billsync-service/internal/app/services/core/consommations"
	"billsync-service/internal/app/services/core/globalbills"
	"billsync-service/internal/app/services/core/rates"
	openmrsconsommations "billsync-service/internal/app/services/openmrs/consommations"
	openmrsglobalbills "billsync-service/internal/app/services/openmrs/globalbills"
	"billsync-service/internal/app/services/openmrs/insurancepolicies"
	"billsync-service/internal/app/services/openmrs/insurances"
	"billsync-service/internal/app/services/shared/audit"
	"billsync-service/internal/app/services/shared/ratelimiter"
	"billsync-service/internal/app/services/shared/redis"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	redisClient := database.NewRedisClient(driverConfig)

	var rabbitConn *amqp091.Connection
	if internalConfig.Audit.QueueEnabled {
		rabbitConn = messaging.NewRabbitMQ(driverConfig)
	}

	chiRouter := chi.NewRouter()

	bootstrapingTheApp(config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		RabbitMQ:       rabbitConn,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	zapLogger := logger.NewZapLogger(bootstrap.DriverConfig, bootstrap.InternalConfig)

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Audit sinks
	var queueSink *audit.QueueSink
	if bootstrap.RabbitMQ != nil {
		sink, err := audit.NewQueueSink(bootstrap.RabbitMQ, bootstrap.InternalConfig.Audit.QueueName, zapLogger)
		if err != nil {
			bootstrap.Logger.Fatalf("Failed to open audit queue: %v", err)
		}
		queueSink = sink
	}
	auditReporter := audit.NewAuditReporter(zapLogger, queueSink)

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(zapLogger, bootstrap.InternalConfig)

	// Billing backend clients
	billingBaseUrl := bootstrap.InternalConfig.Billing.BaseUrl
	consommationClient := openmrsconsommations.NewConsommationClient(billingBaseUrl, zapLogger)
	globalBillClient := openmrsglobalbills.NewGlobalBillClient(billingBaseUrl, zapLogger)
	insuranceClient := insurances.NewInsuranceClient(billingBaseUrl, zapLogger)
	insurancePolicyClient := insurancepolicies.NewInsurancePolicyClient(billingBaseUrl, zapLogger)

	// Rates
	rateUsecase := rates.NewRateUsecase(globalBillClient, consommationClient, insuranceClient, insurancePolicyClient, auditReporter, zapLogger)

	// Consommation
	createLimiter := ratelimiter.NewResourceLimiter(redisRepository, zapLogger)
	consommationUsecase := consommations.NewConsommationUsecase(consommationClient, auditReporter, zapLogger)
	consommationController := controllers.NewConsommationController(zapLogger, consommationUsecase, rateUsecase, createLimiter, bootstrap.InternalConfig)

	// Global bill
	globalBillUsecase := globalbills.NewGlobalBillUsecase(globalBillClient, consommationClient, auditReporter, zapLogger)
	globalBillController := controllers.NewGlobalBillController(zapLogger, globalBillUsecase)

	routers.SetupRoutes(bootstrap.Router, zapLogger, bootstrap.InternalConfig, appMiddlewares, consommationController, globalBillController)
}
