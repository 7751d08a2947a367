package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/muzammil922/dentalcare-reporter/components/worker/internal/adapters/rabbitmq"
	"github.com/muzammil922/dentalcare-reporter/components/worker/internal/services"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
)

// MultiQueueConsumer runs the worker pool over all registered queues. Today
// there is a single queue, the render queue, but the registry keeps queue
// wiring in one place.
type MultiQueueConsumer struct {
	consumerRoutes *rabbitmq.ConsumerRoutes
}

// NewMultiQueueConsumer creates a new instance of MultiQueueConsumer and
// registers the render queue handler.
func NewMultiQueueConsumer(routes *rabbitmq.ConsumerRoutes, service *services.UseCase, renderQueue string) *MultiQueueConsumer {
	routes.Register(renderQueue, service.HandleRenderRequest)

	return &MultiQueueConsumer{
		consumerRoutes: routes,
	}
}

// Run starts consumers for all registered queues.
func (mq *MultiQueueConsumer) Run(l *libCommons.Launcher) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := &sync.WaitGroup{}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs
		cancel()
	}()

	if err := mq.consumerRoutes.RunConsumers(ctx, wg); err != nil {
		return err
	}

	wg.Wait()

	return nil
}
