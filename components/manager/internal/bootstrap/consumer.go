package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/adapters/rabbitmq"
	"github.com/muzammil922/dentalcare-reporter/components/manager/internal/services"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
)

// AckConsumer listens on the surface acknowledgement queue and commits
// acknowledged reports to the archive.
type AckConsumer struct {
	consumerRoutes *rabbitmq.ConsumerRoutes
}

// NewAckConsumer creates a new instance of AckConsumer and registers the ack
// queue handler.
func NewAckConsumer(routes *rabbitmq.ConsumerRoutes, service *services.UseCase, ackQueue string) *AckConsumer {
	routes.Register(ackQueue, service.HandleSurfaceAck)

	return &AckConsumer{
		consumerRoutes: routes,
	}
}

// Run starts the listener for the registered queue.
func (ac *AckConsumer) Run(l *libCommons.Launcher) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := &sync.WaitGroup{}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs
		cancel()
	}()

	if err := ac.consumerRoutes.RunConsumers(ctx, wg); err != nil {
		return err
	}

	wg.Wait()

	return nil
}
