package bootstrap

import (
	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
	"github.com/LerianStudio/lib-commons/v2/commons/log"
	libOtel "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Server represents the http server for the manager component.
type Server struct {
	app           *fiber.App
	serverAddress string
	logger        log.Logger
	telemetry     libOtel.Telemetry
}

// ServerAddress is a convenience method to return the server address.
func (s *Server) ServerAddress() string {
	return s.serverAddress
}

// NewServer creates an instance of Server.
func NewServer(cfg *Config, app *fiber.App, logger log.Logger, telemetry *libOtel.Telemetry) *Server {
	return &Server{
		app:           app,
		serverAddress: cfg.ServerAddress,
		logger:        logger,
		telemetry:     *telemetry,
	}
}

// Run runs the server.
func (s *Server) Run(l *libCommons.Launcher) error {
	defer s.telemetry.ShutdownTelemetry()

	s.logger.Infof("Starting HTTP server on %s", s.serverAddress)

	if err := s.app.Listen(s.ServerAddress()); err != nil {
		return errors.Wrap(err, "failed to run the server")
	}

	return nil
}
