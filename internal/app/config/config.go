package config

import (
	"billsync-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:             utils.GetEnvString("APP_ENV", "development"),
			Port:            utils.GetEnvString("APP_PORT", ":8080"),
			Version:         utils.GetEnvString("APP_VERSION", "v1"),
			Address:         utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:        utils.GetEnvString("APP_TIMEZONE", "Africa/Kigali"),
			EndpointPrefix:  utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:     utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			CreateWindowSec: utils.GetEnvInt("APP_CREATE_WINDOW_SECONDS", 60),
			CreateMaxQuota:  utils.GetEnvInt("APP_CREATE_MAX_QUOTA", 30),
		},
		Billing: Billing{
			BaseUrl: utils.GetEnvString("BILLING_BASE_URL", "http://localhost:8090/openmrs/ws/rest/v1/mohbilling"),
		},
		Audit: Audit{
			QueueEnabled: utils.GetEnvBool("AUDIT_QUEUE_ENABLED", false),
			QueueName:    utils.GetEnvString("AUDIT_QUEUE_NAME", "billing_data_quality_queue"),
		},
	}
}
