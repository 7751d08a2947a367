// Package services implements the report generation, cross-referencing and
// archival use cases of the manager component.
package services

import (
	"time"

	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/mongodb/archive"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/postgres/clinic"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/redis"
	"github.com/muzammil922/dentalcare-reporter/pkg"
	"github.com/muzammil922/dentalcare-reporter/pkg/rabbitmq"
	"github.com/muzammil922/dentalcare-reporter/pkg/storage"
)

// clinicBreakerName identifies the clinic database in the circuit breaker manager.
const clinicBreakerName = "clinic-database"

// UseCase is a struct to implement the services methods
type UseCase struct {
	// ClinicRepo provides read-only access to the six clinic collections.
	ClinicRepo clinic.Repository

	// ArchiveRepo provides an abstraction on top of the durable report archive.
	ArchiveRepo archive.Repository

	// DayViewRepo provides the day marker and current-day cache.
	DayViewRepo redis.DayViewRepository

	// RabbitMQRepo provides an abstraction on top of the producer rabbitmq.
	RabbitMQRepo rabbitmq.ProducerRepository

	// StorageRepo stores spreadsheet and delimited artifacts.
	StorageRepo storage.ObjectStorage

	// Surfaces tracks the rendering-surface session per report.
	Surfaces *SurfaceTracker

	// Breaker guards calls to the clinic database.
	Breaker *pkg.CircuitBreakerManager

	// Location is the archive reference timezone, loaded once at startup.
	Location *time.Location
}
