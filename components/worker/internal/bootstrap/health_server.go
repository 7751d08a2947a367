package bootstrap

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/muzammil922/dentalcare-reporter/pkg/pdf"

	"github.com/LerianStudio/lib-commons/v2/commons/log"
	libRabbitmq "github.com/LerianStudio/lib-commons/v2/commons/rabbitmq"
)

const (
	healthServerReadTimeout     = 5 * time.Second
	healthServerWriteTimeout    = 5 * time.Second
	healthServerIdleTimeout     = 30 * time.Second
	healthServerShutdownTimeout = 5 * time.Second
)

// HealthServer provides HTTP liveness and readiness endpoints for the worker.
// The worker has no fiber app, so this is a small net/http server running
// alongside the consumer.
type HealthServer struct {
	server             *http.Server
	rabbitMQConnection *libRabbitmq.RabbitMQConnection
	pdfPool            *pdf.WorkerPool
	logger             log.Logger
}

// NewHealthServer creates a new HealthServer bound to the given port. The
// /ready endpoint checks RabbitMQ connectivity and the PDF pool.
func NewHealthServer(port string, rabbitMQConnection *libRabbitmq.RabbitMQConnection, pdfPool *pdf.WorkerPool, logger log.Logger) *HealthServer {
	hs := &HealthServer{
		rabbitMQConnection: rabbitMQConnection,
		pdfPool:            pdfPool,
		logger:             logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", hs.handleHealth)
	mux.HandleFunc("/ready", hs.handleReady)

	hs.server = &http.Server{
		Addr:         net.JoinHostPort("", port),
		Handler:      mux,
		ReadTimeout:  healthServerReadTimeout,
		WriteTimeout: healthServerWriteTimeout,
		IdleTimeout:  healthServerIdleTimeout,
	}

	return hs
}

// Start begins listening for health check requests in a background goroutine.
func (hs *HealthServer) Start() {
	go func() {
		hs.logger.Infof("Health server listening on %s", hs.server.Addr)

		if err := hs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			hs.logger.Errorf("Health server error: %v", err)
		}
	}()
}

// Shutdown gracefully stops the health server.
func (hs *HealthServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), healthServerShutdownTimeout)
	defer cancel()

	if err := hs.server.Shutdown(ctx); err != nil {
		hs.logger.Errorf("Health server shutdown error: %v", err)
	}
}

// handleHealth is the liveness probe handler. Returns 200 OK if the process is
// alive, with no dependency checks.
func (hs *HealthServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(map[string]string{"status": "alive"}); err != nil {
		hs.logger.Errorf("Failed to encode health response: %v", err)
	}
}

// handleReady is the readiness probe handler. Returns 200 only when every
// dependency reports ready, 503 otherwise.
func (hs *HealthServer) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	deps := map[string]any{
		"rabbitmq": hs.checkRabbitMQ(),
		"pdf_pool": hs.checkPDFPool(),
	}

	status := "ready"
	code := http.StatusOK

	for _, dep := range deps {
		if dep.(*dependencyStatus).Status != "ready" {
			status = "not_ready"
			code = http.StatusServiceUnavailable

			break
		}
	}

	w.WriteHeader(code)

	resp := map[string]any{
		"status":       status,
		"dependencies": deps,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		hs.logger.Errorf("Failed to encode readiness response: %v", err)
	}
}

// dependencyStatus represents the health state of a single dependency.
type dependencyStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// checkRabbitMQ verifies the RabbitMQ connection is alive and healthy. Mirrors
// the check pattern of the manager's readiness endpoint.
func (hs *HealthServer) checkRabbitMQ() *dependencyStatus {
	if hs.rabbitMQConnection == nil {
		return &dependencyStatus{Status: "not_ready", Message: "connection not configured"}
	}

	if !hs.rabbitMQConnection.Connected || hs.rabbitMQConnection.Connection == nil || hs.rabbitMQConnection.Connection.IsClosed() {
		return &dependencyStatus{Status: "not_ready", Message: "connection is closed"}
	}

	if !hs.rabbitMQConnection.HealthCheck() {
		return &dependencyStatus{Status: "not_ready", Message: "health check failed"}
	}

	return &dependencyStatus{Status: "ready"}
}

// checkPDFPool verifies the PDF worker pool is configured and accepting tasks.
func (hs *HealthServer) checkPDFPool() *dependencyStatus {
	if hs.pdfPool == nil || !hs.pdfPool.IsHealthy() {
		return &dependencyStatus{Status: "not_ready", Message: "pdf pool is not running"}
	}

	return &dependencyStatus{Status: "ready"}
}
