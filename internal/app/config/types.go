package config

import (
	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type (
	Bootstrap struct {
		Router         *chi.Mux
		Redis          *redis.Client
		RabbitMQ       *amqp091.Connection
		Logger         *logrus.Logger
		DriverConfig   *DriverConfig
		InternalConfig *InternalConfig
	}

	InternalConfig struct {
		App     App
		Billing Billing
		Audit   Audit
	}

	DriverConfig struct {
		Redis    Redis
		RabbitMQ RabbitMQ
		Logger   Logger
	}

	App struct {
		Env             string
		Port            string
		Version         string
		Address         string
		Timezone        string
		EndpointPrefix  string
		MaxRequests     int
		ShutdownTimeout int

		// Fixed-window quota for the non-idempotent create endpoint.
		CreateWindowSec int
		CreateMaxQuota  int
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	// Billing points at the OpenMRS-style billing backend.
	Billing struct {
		BaseUrl string
	}

	// Audit configures the data-quality warning sinks.
	Audit struct {
		QueueEnabled bool
		QueueName    string
	}
)
