package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/muzammil922/dentalcare-reporter/pkg/constant"
	pkgRabbitmq "github.com/muzammil922/dentalcare-reporter/pkg/rabbitmq"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"
	libConstants "github.com/LerianStudio/lib-commons/v2/commons/constants"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v2/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v2/commons/rabbitmq"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel/attribute"
)

// ProducerRabbitMQRepository publishes the surface acknowledgement back to the
// manager. The ack is fire-and-forget: one publish attempt with a channel
// recovery check. If the broker is unreachable the render message itself is
// retried by the consumer, which re-runs the whole pipeline.
type ProducerRabbitMQRepository struct {
	conn *libRabbitmq.RabbitMQConnection
}

// Compile-time interface satisfaction check.
var _ pkgRabbitmq.ProducerRepository = (*ProducerRabbitMQRepository)(nil)

// NewProducerRabbitMQ returns a new instance of ProducerRabbitMQRepository using the given rabbitmq connection.
func NewProducerRabbitMQ(c *libRabbitmq.RabbitMQConnection) *ProducerRabbitMQRepository {
	return &ProducerRabbitMQRepository{
		conn: c,
	}
}

// ProducerDefault publishes a message to RabbitMQ.
func (prmq *ProducerRabbitMQRepository) ProducerDefault(ctx context.Context, exchange, key string, queueMessage any) (*string, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "rabbitmq.ack_producer.publish_message")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.exchange", exchange),
		attribute.String("app.request.key", key),
	)

	message, err := json.Marshal(queueMessage)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to marshal queue message struct", err)

		logger.Errorf("Failed to marshal queue message struct: %v", err)

		return nil, err
	}

	headers := amqp.Table{
		libConstants.HeaderID:     reqId,
		constant.RetryCountHeader: 0,
	}

	libOpentelemetry.InjectTraceHeadersIntoQueue(ctx, (*map[string]any)(&headers))

	if err := prmq.conn.EnsureChannel(); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to ensure RabbitMQ channel", err)

		logger.Errorf("EnsureChannel failed: %v", err)

		return nil, err
	}

	if err := prmq.conn.Channel.Publish(
		exchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.New().String(),
			Headers:      headers,
			Body:         message,
		}); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to publish message", err)

		logger.Errorf("Publish failed: %v", err)

		return nil, err
	}

	logger.Infof("Acknowledgement published to %s/%s", exchange, key)

	return nil, nil
}
