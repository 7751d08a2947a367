package rabbitmq

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/muzammil922/dentalcare-reporter/pkg/rabbitmq"

	"github.com/LerianStudio/lib-commons/v2/commons"
	libConstants "github.com/LerianStudio/lib-commons/v2/commons/constants"
	"github.com/LerianStudio/lib-commons/v2/commons/log"
	"github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v2/commons/rabbitmq"
	"github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel/attribute"
)

// ConsumerRoutes consumes acknowledgement queues with a single listener per
// queue. Acks arrive in render order and archival must preserve that order,
// so there is deliberately no worker pool here.
type ConsumerRoutes struct {
	conn   *libRabbitmq.RabbitMQConnection
	routes map[string]rabbitmq.QueueHandlerFunc
	log.Logger
	opentelemetry.Telemetry
}

// Compile-time interface satisfaction check.
var _ rabbitmq.ConsumerRepository = (*ConsumerRoutes)(nil)

// NewConsumerRoutes creates a new instance of ConsumerRoutes.
func NewConsumerRoutes(conn *libRabbitmq.RabbitMQConnection, logger log.Logger, telemetry *opentelemetry.Telemetry) *ConsumerRoutes {
	cr := &ConsumerRoutes{
		conn:   conn,
		routes: make(map[string]rabbitmq.QueueHandlerFunc),
		Logger: logger,
	}

	if telemetry != nil {
		cr.Telemetry = *telemetry
	}

	if _, err := conn.GetNewConnect(); err != nil {
		logger.Warnf("Failed to connect to rabbitmq on startup, will retry on consume: %v", err)
	}

	return cr
}

// Register add a new queue to handler.
func (cr *ConsumerRoutes) Register(queueName string, handler rabbitmq.QueueHandlerFunc) {
	cr.routes[queueName] = handler
}

// RunConsumers starts one listener goroutine per registered queue.
func (cr *ConsumerRoutes) RunConsumers(ctx context.Context, wg *sync.WaitGroup) error {
	for queueName, handler := range cr.routes {
		cr.Info("Starting ack listener for queue " + queueName)

		if err := cr.conn.EnsureChannel(); err != nil {
			return err
		}

		messages, err := cr.conn.Channel.Consume(
			queueName,
			"",
			false,
			false,
			false,
			false,
			nil)
		if err != nil {
			return err
		}

		wg.Add(1)

		go cr.listen(ctx, wg, messages, queueName, handler)
	}

	return nil
}

func (cr *ConsumerRoutes) listen(ctx context.Context, wg *sync.WaitGroup, messages <-chan amqp091.Delivery, queue string, handler rabbitmq.QueueHandlerFunc) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			cr.Errorf("Panic recovered in ack listener for queue %s: %v\nStack: %s", queue, r, string(debug.Stack()))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			cr.Infof("Ack listener for queue %s shutting down gracefully", queue)
			return
		case message, ok := <-messages:
			if !ok {
				cr.Infof("Ack listener for queue %s: message channel closed", queue)
				return
			}

			cr.processMessage(queue, handler, message)
		}
	}
}

// processMessage handles a single acknowledgement. Archival is idempotent on
// the record identifier, so a failed handler nacks without requeue rather
// than risking an unbounded redelivery loop for a poisoned payload.
func (cr *ConsumerRoutes) processMessage(queue string, handler rabbitmq.QueueHandlerFunc, message amqp091.Delivery) {
	requestID, found := message.Headers[libConstants.HeaderID]
	if !found {
		requestID = commons.GenerateUUIDv7().String()
	}

	requestIDStr, ok := requestID.(string)
	if !ok {
		requestIDStr = commons.GenerateUUIDv7().String()
	}

	logWithFields := cr.Logger.WithFields(
		libConstants.HeaderID, requestIDStr,
	).WithDefaultMessageTemplate(requestIDStr + libConstants.LoggerDefaultSeparator)

	ctx := commons.ContextWithLogger(
		commons.ContextWithHeaderID(context.Background(), requestIDStr),
		logWithFields,
	)

	ctx = opentelemetry.ExtractTraceContextFromQueueHeaders(ctx, message.Headers)

	_, tracer, _, _ := commons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "rabbitmq.ack_consumer.process_message")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.rabbitmq.consumer.request_id", requestIDStr),
	)

	if err := handler(ctx, message.Body); err != nil {
		cr.Errorf("Error processing ack from queue %s: %v", queue, err)
		opentelemetry.HandleSpanError(&span, "Error processing ack", err)

		_ = message.Nack(false, false)

		return
	}

	_ = message.Ack(false)
}
