package workerqueue

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"tp-countsort-2c2025/shared/middleware"
)

// QueueMiddleware wraps middleware.MessageMiddlewareQueue with producer methods
type QueueMiddleware struct {
	*middleware.MessageMiddlewareQueue
}

// NewMessageMiddlewareQueue creates a new QueueMiddleware instance
func NewMessageMiddlewareQueue(queueName string, config *middleware.ConnectionConfig) *QueueMiddleware {
	channel, err := middleware.CreateMiddlewareChannel(config)
	if err != nil {
		middleware.LogError("Queue Producer", "Failed to create channel for queue '%s': %v", queueName, err)
		return nil
	}

	return &QueueMiddleware{
		MessageMiddlewareQueue: &middleware.MessageMiddlewareQueue{
			QueueName: queueName,
			Channel:   channel,
		},
	}
}

// DeclareQueue declares the queue on the RabbitMQ server. Declarations are
// idempotent, so every rank can declare the queues it touches without
// coordinating who goes first.
func (m *QueueMiddleware) DeclareQueue(
	durable bool,
	autoDelete bool,
	exclusive bool,
	noWait bool,
) middleware.MessageMiddlewareError {
	if m.Channel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	_, err := (*m.Channel).QueueDeclare(
		m.QueueName,
		durable,
		autoDelete,
		exclusive,
		noWait,
		nil, // arguments
	)
	if err != nil {
		middleware.LogError("Queue Producer", "Failed to declare queue '%s': %v", m.QueueName, err)
		return middleware.MessageMiddlewareMessageError
	}

	middleware.LogDebug("Queue Producer", "Declared queue '%s' (durable: %t)", m.QueueName, durable)
	return middleware.MessageMiddlewareSuccess
}

// Send publishes a message to the queue through the default exchange.
func (m *QueueMiddleware) Send(message []byte) middleware.MessageMiddlewareError {
	if m.Channel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	err := (*m.Channel).Publish(
		"",          // default exchange
		m.QueueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType: "application/octet-stream",
			Body:        message,
		},
	)
	if err != nil {
		middleware.LogError("Queue Producer", "Failed to publish to queue '%s': %v", m.QueueName, err)
		return middleware.MessageMiddlewareMessageError
	}

	return middleware.MessageMiddlewareSuccess
}

// Close disconnects the channel.
func (m *QueueMiddleware) Close() middleware.MessageMiddlewareError {
	if m.Channel == nil {
		return middleware.MessageMiddlewareSuccess
	}

	if err := (*m.Channel).Close(); err != nil {
		middleware.LogError("Queue Producer", "Close error for queue '%s': %v", m.QueueName, err)
		return middleware.MessageMiddlewareCloseError
	}

	m.Channel = nil
	return middleware.MessageMiddlewareSuccess
}
