// Package bootstrap wires the worker component together from environment
// configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/muzammil922/dentalcare-reporter/components/worker/internal/adapters/rabbitmq"
	"github.com/muzammil922/dentalcare-reporter/components/worker/internal/services"
	"github.com/muzammil922/dentalcare-reporter/pkg/pdf"
	"github.com/muzammil922/dentalcare-reporter/pkg/pongo"
	"github.com/muzammil922/dentalcare-reporter/pkg/storage"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
	libOtel "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v2/commons/rabbitmq"
	libZap "github.com/LerianStudio/lib-commons/v2/commons/zap"
)

// Config holds the worker's configurable parameters read from environment variables.
type Config struct {
	EnvName  string `env:"ENV_NAME"`
	LogLevel string `env:"LOG_LEVEL"`

	// RabbitMQ (render queue in, acks out)
	RabbitURI              string `env:"RABBITMQ_URI"`
	RabbitMQHost           string `env:"RABBITMQ_HOST"`
	RabbitMQPortHost       string `env:"RABBITMQ_PORT_HOST"`
	RabbitMQPortAMQP       string `env:"RABBITMQ_PORT_AMQP"`
	RabbitMQUser           string `env:"RABBITMQ_DEFAULT_USER"`
	RabbitMQPass           string `env:"RABBITMQ_DEFAULT_PASS"`
	RabbitMQRenderQueue    string `env:"RABBITMQ_RENDER_QUEUE" default:"clinic.reports.render"`
	RabbitMQNumWorkers     int    `env:"RABBITMQ_NUMBERS_OF_WORKERS"`
	RabbitMQHealthCheckURL string `env:"RABBITMQ_HEALTH_CHECK_URL"`

	// Telemetry
	OtelServiceName         string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	OtelLibraryName         string `env:"OTEL_LIBRARY_NAME"`
	OtelServiceVersion      string `env:"OTEL_RESOURCE_SERVICE_VERSION"`
	OtelDeploymentEnv       string `env:"OTEL_RESOURCE_DEPLOYMENT_ENVIRONMENT"`
	OtelColExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	EnableTelemetry         bool   `env:"ENABLE_TELEMETRY"`

	// Artifact storage (S3 compatible)
	StorageEndpoint        string `env:"STORAGE_ENDPOINT"`
	StorageRegion          string `env:"STORAGE_REGION"`
	StorageBucket          string `env:"STORAGE_BUCKET"`
	StorageAccessKeyID     string `env:"STORAGE_ACCESS_KEY_ID"`
	StorageSecretAccessKey string `env:"STORAGE_SECRET_ACCESS_KEY"`
	StorageUsePathStyle    bool   `env:"STORAGE_USE_PATH_STYLE" default:"true"`
	StorageInitTimeout     int    `env:"STORAGE_INIT_TIMEOUT_SECONDS" default:"10"`

	// PDF pool
	PdfPoolWorkers        int `env:"PDF_POOL_WORKERS" default:"2"`
	PdfPoolTimeoutSeconds int `env:"PDF_TIMEOUT_SECONDS" default:"90"`

	// Health probe server
	HealthPort string `env:"HEALTH_PORT" default:"8081"`
}

// InitWorker initializes and configures the worker's dependencies and returns
// the Service instance.
func InitWorker() (*Service, error) {
	cfg := &Config{}
	if err := libCommons.SetConfigFromEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	logger := libZap.InitializeLogger()

	telemetry := libOtel.InitializeTelemetry(&libOtel.TelemetryConfig{
		LibraryName:               cfg.OtelLibraryName,
		ServiceName:               cfg.OtelServiceName,
		ServiceVersion:            cfg.OtelServiceVersion,
		DeploymentEnv:             cfg.OtelDeploymentEnv,
		CollectorExporterEndpoint: cfg.OtelColExporterEndpoint,
		EnableTelemetry:           cfg.EnableTelemetry,
		Logger:                    logger,
	})

	rabbitSource := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.RabbitURI, cfg.RabbitMQUser, cfg.RabbitMQPass, cfg.RabbitMQHost, cfg.RabbitMQPortAMQP)

	rabbitMQConnection := &libRabbitmq.RabbitMQConnection{
		ConnectionStringSource: rabbitSource,
		HealthCheckURL:         cfg.RabbitMQHealthCheckURL,
		Host:                   cfg.RabbitMQHost,
		Port:                   cfg.RabbitMQPortHost,
		User:                   cfg.RabbitMQUser,
		Pass:                   cfg.RabbitMQPass,
		Queue:                  cfg.RabbitMQRenderQueue,
		Logger:                 logger,
	}

	routes, err := rabbitmq.NewConsumerRoutes(rabbitMQConnection, cfg.RabbitMQNumWorkers, logger, telemetry)
	if err != nil {
		return nil, err
	}

	producer := rabbitmq.NewProducerRabbitMQ(rabbitMQConnection)

	storageCtx, storageCancel := context.WithTimeout(context.Background(), time.Duration(cfg.StorageInitTimeout)*time.Second)
	defer storageCancel()

	storageClient, err := storage.NewS3Client(storageCtx, storage.S3Config{
		Endpoint:        cfg.StorageEndpoint,
		Region:          cfg.StorageRegion,
		Bucket:          cfg.StorageBucket,
		AccessKeyID:     cfg.StorageAccessKeyID,
		SecretAccessKey: cfg.StorageSecretAccessKey,
		UsePathStyle:    cfg.StorageUsePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize artifact storage: %w", err)
	}

	pdfPool := pdf.NewWorkerPool(cfg.PdfPoolWorkers, time.Duration(cfg.PdfPoolTimeoutSeconds)*time.Second, logger)
	logger.Infof("PDF pool initialized with %d workers and %d seconds timeout", cfg.PdfPoolWorkers, cfg.PdfPoolTimeoutSeconds)

	service := &services.UseCase{
		Renderer:     pongo.NewTemplateRenderer(),
		PdfPool:      pdfPool,
		StorageRepo:  storageClient,
		RabbitMQRepo: producer,
	}

	multiQueueConsumer := NewMultiQueueConsumer(routes, service, cfg.RabbitMQRenderQueue)

	healthServer := NewHealthServer(cfg.HealthPort, rabbitMQConnection, pdfPool, logger)

	return &Service{
		MultiQueueConsumer: multiQueueConsumer,
		Logger:             logger,
		telemetry:          telemetry,
		healthServer:       healthServer,
		rabbitMQConnection: rabbitMQConnection,
		pdfPool:            pdfPool,
	}, nil
}
