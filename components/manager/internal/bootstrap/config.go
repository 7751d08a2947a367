// Package bootstrap wires configuration, connections and use cases for the
// manager component.
package bootstrap

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	httpIn "github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/http/in"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/mongodb/archive"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/postgres/clinic"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/rabbitmq"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/redis"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/services"
	"github.com/muzammil922/dentalcare-reporter/pkg"
	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	"github.com/muzammil922/dentalcare-reporter/pkg/postgres"
	"github.com/muzammil922/dentalcare-reporter/pkg/storage"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
	libMongo "github.com/LerianStudio/lib-commons/v2/commons/mongo"
	libOtel "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v2/commons/rabbitmq"
	libRedis "github.com/LerianStudio/lib-commons/v2/commons/redis"
	libZap "github.com/LerianStudio/lib-commons/v2/commons/zap"
)

// Config holds the application's configurable parameters read from environment variables.
type Config struct {
	EnvName       string `env:"ENV_NAME"`
	LogLevel      string `env:"LOG_LEVEL"`
	ServerAddress string `env:"SERVER_ADDRESS"`

	OtelServiceName         string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	OtelLibraryName         string `env:"OTEL_LIBRARY_NAME"`
	OtelServiceVersion      string `env:"OTEL_RESOURCE_SERVICE_VERSION"`
	OtelDeploymentEnv       string `env:"OTEL_RESOURCE_DEPLOYMENT_ENVIRONMENT"`
	OtelColExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	EnableTelemetry         bool   `env:"ENABLE_TELEMETRY"`

	// Archive (MongoDB)
	MongoURI        string `env:"MONGO_URI"`
	MongoDBHost     string `env:"MONGO_HOST"`
	MongoDBName     string `env:"MONGO_NAME"`
	MongoDBUser     string `env:"MONGO_USER"`
	MongoDBPassword string `env:"MONGO_PASSWORD"`
	MongoDBPort     string `env:"MONGO_PORT"`
	MongoMaxPool    int    `env:"MONGO_MAX_POOL_SIZE"`

	// Rendering-surface channel (RabbitMQ)
	RabbitURI              string `env:"RABBITMQ_URI"`
	RabbitMQHost           string `env:"RABBITMQ_HOST"`
	RabbitMQPortHost       string `env:"RABBITMQ_PORT_HOST"`
	RabbitMQPortAMQP       string `env:"RABBITMQ_PORT_AMQP"`
	RabbitMQUser           string `env:"RABBITMQ_DEFAULT_USER"`
	RabbitMQPass           string `env:"RABBITMQ_DEFAULT_PASS"`
	RabbitMQAckQueue       string `env:"RABBITMQ_ACK_QUEUE" default:"clinic.reports.ack"`
	RabbitMQHealthCheckURL string `env:"RABBITMQ_HEALTH_CHECK_URL"`

	// Day view (Redis)
	RedisHost     string `env:"REDIS_HOST"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`
	RedisProtocol int    `env:"REDIS_PROTOCOL" default:"3"`

	// Clinic database (PostgreSQL, read-only)
	ClinicDBHost     string `env:"CLINIC_DB_HOST"`
	ClinicDBPort     string `env:"CLINIC_DB_PORT"`
	ClinicDBName     string `env:"CLINIC_DB_NAME"`
	ClinicDBUser     string `env:"CLINIC_DB_USER"`
	ClinicDBPassword string `env:"CLINIC_DB_PASSWORD"`
	ClinicDBSSLMode  string `env:"CLINIC_DB_SSLMODE" default:"disable"`
	ClinicDBMaxOpen  int    `env:"CLINIC_DB_MAX_OPEN_CONNS" default:"10"`
	ClinicDBMaxIdle  int    `env:"CLINIC_DB_MAX_IDLE_CONNS" default:"5"`

	// Artifact storage (S3-compatible)
	StorageEndpoint     string `env:"STORAGE_ENDPOINT"`
	StorageRegion       string `env:"STORAGE_REGION"`
	StorageBucket       string `env:"STORAGE_BUCKET"`
	StorageAccessKey    string `env:"STORAGE_ACCESS_KEY_ID"`
	StorageSecretKey    string `env:"STORAGE_SECRET_ACCESS_KEY"`
	StoragePathStyle    bool   `env:"STORAGE_USE_PATH_STYLE" default:"true"`
	StorageInitTimeout  int    `env:"STORAGE_INIT_TIMEOUT_SECONDS" default:"10"`
}

// InitServers initializes the HTTP server and the surface ack consumer.
func InitServers() (*Service, error) {
	cfg := &Config{}
	if err := libCommons.SetConfigFromEnvVars(cfg); err != nil {
		return nil, err
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

	// Archive connection
	escapedPass := url.QueryEscape(cfg.MongoDBPassword)
	mongoSource := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.MongoURI, cfg.MongoDBUser, escapedPass, cfg.MongoDBHost, cfg.MongoDBPort)

	if cfg.MongoMaxPool <= 0 {
		cfg.MongoMaxPool = 100
	}

	mongoConnection := &libMongo.MongoConnection{
		ConnectionStringSource: mongoSource,
		Database:               cfg.MongoDBName,
		Logger:                 logger,
		MaxPoolSize:            uint64(cfg.MongoMaxPool),
	}

	archiveRepository := archive.NewReportMongoDBRepository(mongoConnection)

	// Rendering-surface channel
	rabbitSource := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.RabbitURI, cfg.RabbitMQUser, cfg.RabbitMQPass, cfg.RabbitMQHost, cfg.RabbitMQPortAMQP)

	rabbitMQConnection := &libRabbitmq.RabbitMQConnection{
		ConnectionStringSource: rabbitSource,
		HealthCheckURL:         cfg.RabbitMQHealthCheckURL,
		Host:                   cfg.RabbitMQHost,
		Port:                   cfg.RabbitMQPortHost,
		User:                   cfg.RabbitMQUser,
		Pass:                   cfg.RabbitMQPass,
		Queue:                  cfg.RabbitMQAckQueue,
		Logger:                 logger,
	}

	producerRepository := rabbitmq.NewProducerRabbitMQ(rabbitMQConnection)
	consumerRoutes := rabbitmq.NewConsumerRoutes(rabbitMQConnection, logger, telemetry)

	// Day view connection
	redisConnection := &libRedis.RedisConnection{
		Address:  strings.Split(cfg.RedisHost, ","),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Protocol: cfg.RedisProtocol,
		Logger:   logger,
	}

	dayViewRepository := redis.NewDayViewRedisRepository(redisConnection)

	// Clinic database connection
	clinicSource := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.ClinicDBUser, url.QueryEscape(cfg.ClinicDBPassword), cfg.ClinicDBHost,
		cfg.ClinicDBPort, cfg.ClinicDBName, cfg.ClinicDBSSLMode)

	postgresConnection := &postgres.Connection{
		ConnectionString:   clinicSource,
		DBName:             cfg.ClinicDBName,
		Logger:             logger,
		MaxOpenConnections: cfg.ClinicDBMaxOpen,
		MaxIdleConnections: cfg.ClinicDBMaxIdle,
	}

	clinicRepository := clinic.NewClinicPostgreSQLRepository(postgresConnection)

	// Artifact storage
	storageCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.StorageInitTimeout)*time.Second)
	defer cancel()

	storageClient, err := storage.NewS3Client(storageCtx, storage.S3Config{
		Endpoint:        cfg.StorageEndpoint,
		Region:          cfg.StorageRegion,
		Bucket:          cfg.StorageBucket,
		AccessKeyID:     cfg.StorageAccessKey,
		SecretAccessKey: cfg.StorageSecretKey,
		UsePathStyle:    cfg.StoragePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize artifact storage: %w", err)
	}

	location, err := time.LoadLocation(constant.ArchiveTimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive timezone: %w", err)
	}

	reportService := &services.UseCase{
		ClinicRepo:   clinicRepository,
		ArchiveRepo:  archiveRepository,
		DayViewRepo:  dayViewRepository,
		RabbitMQRepo: producerRepository,
		StorageRepo:  storageClient,
		Surfaces:     services.NewSurfaceTracker(),
		Breaker:      pkg.NewCircuitBreakerManager(logger),
		Location:     location,
	}

	reportHandler := &httpIn.ReportHandler{
		Service: reportService,
	}

	readinessDeps := &httpIn.ReadinessDeps{
		MongoConnection:    mongoConnection,
		RabbitMQConnection: rabbitMQConnection,
		RedisConnection:    redisConnection,
		PostgresConnection: postgresConnection,
		StorageClient:      storageClient,
	}

	httpApp := httpIn.NewRoutes(logger, telemetry, reportHandler, readinessDeps)
	serverAPI := NewServer(cfg, httpApp, logger, telemetry)
	ackConsumer := NewAckConsumer(consumerRoutes, reportService, cfg.RabbitMQAckQueue)

	return &Service{
		Server:             serverAPI,
		AckConsumer:        ackConsumer,
		Logger:             logger,
		mongoConnection:    mongoConnection,
		rabbitMQConnection: rabbitMQConnection,
		redisConnection:    redisConnection,
		postgresConnection: postgresConnection,
	}, nil
}
