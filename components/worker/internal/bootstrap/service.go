package bootstrap

import (
	"github.com/muzammil922/dentalcare-reporter/pkg/pdf"

	"github.com/LerianStudio/lib-commons/v2/commons"
	"github.com/LerianStudio/lib-commons/v2/commons/log"
	libOtel "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v2/commons/rabbitmq"
)

// Service is the application glue where we put all top-level components to be used.
type Service struct {
	*MultiQueueConsumer
	log.Logger
	telemetry          *libOtel.Telemetry
	healthServer       *HealthServer
	rabbitMQConnection *libRabbitmq.RabbitMQConnection
	pdfPool            *pdf.WorkerPool
}

// Run starts the application.
// This is the only necessary code to run an app in the main.go
func (app *Service) Run() {
	app.healthServer.Start()

	commons.NewLauncher(
		commons.WithLogger(app.Logger),
		commons.RunApp("RabbitMQ Render Consumer", app.MultiQueueConsumer),
	).Run()

	// Graceful shutdown
	app.Info("Starting graceful shutdown...")

	app.Info("Stopping health server...")
	app.healthServer.Shutdown()

	if app.pdfPool != nil {
		app.Info("Closing PDF pool...")
		app.pdfPool.Close()
	}

	if app.rabbitMQConnection != nil {
		app.Info("Closing RabbitMQ connection...")

		if app.rabbitMQConnection.Channel != nil {
			if err := app.rabbitMQConnection.Channel.Close(); err != nil {
				app.Errorf("Failed to close RabbitMQ channel: %v", err)
			}
		}

		if app.rabbitMQConnection.Connection != nil && !app.rabbitMQConnection.Connection.IsClosed() {
			if err := app.rabbitMQConnection.Connection.Close(); err != nil {
				app.Errorf("Failed to close RabbitMQ connection: %v", err)
			} else {
				app.Info("RabbitMQ connection closed")
			}
		}
	}

	if app.telemetry != nil {
		app.telemetry.ShutdownTelemetry()
	}

	app.Info("Graceful shutdown complete")
}
