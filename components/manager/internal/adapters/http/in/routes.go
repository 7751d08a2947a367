package in

import (
	"context"
	"time"

	"github.com/muzammil922/dentalcare-reporter/pkg/model"
	"github.com/muzammil922/dentalcare-reporter/pkg/net/http"
	"github.com/muzammil922/dentalcare-reporter/pkg/postgres"
	"github.com/muzammil922/dentalcare-reporter/pkg/storage"

	"github.com/LerianStudio/lib-commons/v2/commons/log"
	mongoDB "github.com/LerianStudio/lib-commons/v2/commons/mongo"
	commonsHTTP "github.com/LerianStudio/lib-commons/v2/commons/net/http"
	"github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v2/commons/rabbitmq"
	libRedis "github.com/LerianStudio/lib-commons/v2/commons/redis"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const readinessCheckTimeout = 2 * time.Second

// ReadinessDeps holds the dependency connections needed for the /ready endpoint.
type ReadinessDeps struct {
	MongoConnection    *mongoDB.MongoConnection
	RabbitMQConnection *libRabbitmq.RabbitMQConnection
	RedisConnection    *libRedis.RedisConnection
	PostgresConnection *postgres.Connection
	StorageClient      storage.ObjectStorage
}

// NewRoutes creates a new fiber router with the specified handlers and middleware.
func NewRoutes(lg log.Logger, tl *opentelemetry.Telemetry, reportHandler *ReportHandler, deps *ReadinessDeps) *fiber.App {
	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return commonsHTTP.HandleFiberError(ctx, err)
		},
	})
	tlMid := commonsHTTP.NewTelemetryMiddleware(tl)

	f.Use(tlMid.WithTelemetry(tl))
	f.Use(cors.New())
	f.Use(commonsHTTP.WithHTTPLogging(commonsHTTP.WithCustomLogger(lg)))

	// Report routes
	f.Post("/v1/reports", http.WithBody(new(model.CreateReportInput), reportHandler.CreateReport))
	f.Get("/v1/reports/current-day", reportHandler.GetCurrentDayReports)
	f.Get("/v1/reports/by-date/:date", reportHandler.GetReportsByDate)
	f.Get("/v1/reports/:id/download", reportHandler.GetDownloadReport)
	f.Get("/v1/reports/:id", reportHandler.GetReport)
	f.Get("/v1/reports", reportHandler.GetAllReports)

	// Health
	f.Get("/health", commonsHTTP.Ping)

	// Readiness - checks all dependency connections
	f.Get("/ready", readinessHandler(deps))

	// Version
	f.Get("/version", commonsHTTP.Version)

	f.Use(tlMid.EndTracingSpans)

	return f
}

// dependencyResult represents the health status of a single dependency in the readiness check.
type dependencyResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// readinessHandler returns a Fiber handler that checks all dependency connections.
// Each dependency is checked with a 2-second timeout. Returns 200 if all healthy, 503 otherwise.
func readinessHandler(deps *ReadinessDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		httpStatus := fiber.StatusOK
		results := make(map[string]*dependencyResult)

		results["mongodb"] = checkMongoDB(deps.MongoConnection)
		results["rabbitmq"] = checkRabbitMQ(deps.RabbitMQConnection)
		results["redis"] = checkRedis(deps.RedisConnection)
		results["postgres"] = checkPostgres(deps.PostgresConnection)
		results["storage"] = checkStorage(deps.StorageClient)

		for _, result := range results {
			if result.Status != "ready" {
				httpStatus = fiber.StatusServiceUnavailable

				break
			}
		}

		overallStatus := "ready"
		if httpStatus == fiber.StatusServiceUnavailable {
			overallStatus = "not_ready"
		}

		return commonsHTTP.JSONResponse(c, httpStatus, fiber.Map{
			"status":       overallStatus,
			"dependencies": results,
		})
	}
}

// checkMongoDB pings the MongoDB connection with a timeout.
func checkMongoDB(conn *mongoDB.MongoConnection) *dependencyResult {
	if conn == nil {
		return &dependencyResult{Status: "not_ready", Message: "connection not configured"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	db, err := conn.GetDB(ctx)
	if err != nil {
		return &dependencyResult{Status: "not_ready", Message: "failed to get connection"}
	}

	if err = db.Ping(ctx, nil); err != nil {
		return &dependencyResult{Status: "not_ready", Message: "ping failed"}
	}

	return &dependencyResult{Status: "ready"}
}

// checkRabbitMQ verifies the RabbitMQ connection is alive.
func checkRabbitMQ(conn *libRabbitmq.RabbitMQConnection) *dependencyResult {
	if conn == nil {
		return &dependencyResult{Status: "not_ready", Message: "connection not configured"}
	}

	if !conn.Connected || conn.Connection == nil || conn.Connection.IsClosed() {
		return &dependencyResult{Status: "not_ready", Message: "connection is closed"}
	}

	if !conn.HealthCheck() {
		return &dependencyResult{Status: "not_ready", Message: "health check failed"}
	}

	return &dependencyResult{Status: "ready"}
}

// checkRedis pings the Redis connection with a timeout.
func checkRedis(conn *libRedis.RedisConnection) *dependencyResult {
	if conn == nil {
		return &dependencyResult{Status: "not_ready", Message: "connection not configured"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	client, err := conn.GetClient(ctx)
	if err != nil {
		return &dependencyResult{Status: "not_ready", Message: "failed to get client"}
	}

	if _, err = client.Ping(ctx).Result(); err != nil {
		return &dependencyResult{Status: "not_ready", Message: "ping failed"}
	}

	return &dependencyResult{Status: "ready"}
}

// checkPostgres pings the clinic database with a timeout.
func checkPostgres(conn *postgres.Connection) *dependencyResult {
	if conn == nil {
		return &dependencyResult{Status: "not_ready", Message: "connection not configured"}
	}

	db, err := conn.GetDB()
	if err != nil {
		return &dependencyResult{Status: "not_ready", Message: "failed to get connection"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		return &dependencyResult{Status: "not_ready", Message: "ping failed"}
	}

	return &dependencyResult{Status: "ready"}
}

// checkStorage verifies the object storage is reachable.
func checkStorage(client storage.ObjectStorage) *dependencyResult {
	if client == nil {
		return &dependencyResult{Status: "not_ready", Message: "storage client not configured"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	// Existence check on a sentinel key exercises the S3 API path and confirms
	// the bucket and endpoint are reachable.
	_, err := client.Exists(ctx, ".readiness-check")
	if err != nil {
		return &dependencyResult{Status: "not_ready", Message: "storage connectivity check failed"}
	}

	return &dependencyResult{Status: "ready"}
}
