package exchange

import (
	"tp-countsort-2c2025/shared/middleware"
)

// ExchangeConsumer wraps middleware.MessageMiddlewareExchange with consumer methods
type ExchangeConsumer struct {
	*middleware.MessageMiddlewareExchange
	queueName string // optional named queue; empty means temporary auto-generated
}

// NewExchangeConsumer creates a new ExchangeConsumer instance
func NewExchangeConsumer(
	exchangeName string,
	routeKeys []string,
	config *middleware.ConnectionConfig,
) *ExchangeConsumer {
	channel, err := middleware.CreateMiddlewareChannel(config)
	if err != nil {
		middleware.LogError("Exchange Consumer", "Failed to create channel for exchange '%s': %v", exchangeName, err)
		return nil
	}

	return &ExchangeConsumer{
		MessageMiddlewareExchange: &middleware.MessageMiddlewareExchange{
			ExchangeName: exchangeName,
			RouteKeys:    routeKeys,
			AmqpChannel:  channel,
		},
	}
}

// SetQueueName sets a named queue to bind instead of a temporary auto-generated
// one. Must be called before StartConsuming. Each rank binds its own named
// queue so a fanout publish reaches every rank exactly once.
func (m *ExchangeConsumer) SetQueueName(queueName string) {
	m.queueName = queueName
}

// StartConsuming declares the exchange and the consumer's queue, binds them,
// and begins delivery. The callback runs in its own goroutine and owns
// acknowledgment of each delivery.
func (m *ExchangeConsumer) StartConsuming(
	onMessageCallback middleware.OnMessageCallback,
) middleware.MessageMiddlewareError {
	if m.AmqpChannel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	middleware.LogDebug("Exchange Consumer", "Starting consumer for exchange '%s' (queue '%s')",
		m.ExchangeName, m.queueName)

	err := (*m.AmqpChannel).ExchangeDeclare(
		m.ExchangeName,
		"fanout",
		false, // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		middleware.LogError("Exchange Consumer", "Failed to declare exchange '%s': %v", m.ExchangeName, err)
		return middleware.MessageMiddlewareMessageError
	}

	queue, err := (*m.AmqpChannel).QueueDeclare(
		m.queueName, // empty for auto-generated
		false,       // durable
		false,       // auto-delete
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		middleware.LogError("Exchange Consumer", "Failed to declare queue for exchange '%s': %v", m.ExchangeName, err)
		return middleware.MessageMiddlewareMessageError
	}

	// Fanout ignores routing keys; bind with "" unless keys were given.
	routingKeys := m.RouteKeys
	if len(routingKeys) == 0 {
		routingKeys = []string{""}
	}

	for _, routingKey := range routingKeys {
		err := (*m.AmqpChannel).QueueBind(
			queue.Name,
			routingKey,
			m.ExchangeName,
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			middleware.LogError("Exchange Consumer", "Failed to bind queue '%s' to exchange '%s': %v",
				queue.Name, m.ExchangeName, err)
			return middleware.MessageMiddlewareMessageError
		}
	}

	deliveries, err := (*m.AmqpChannel).Consume(
		queue.Name,
		"",    // consumer tag, auto-generated
		false, // auto-ack off, callbacks ack explicitly
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		middleware.LogError("Exchange Consumer", "Failed to start consuming exchange '%s': %v", m.ExchangeName, err)
		return middleware.MessageMiddlewareMessageError
	}

	m.ConsumeChannel = &deliveries

	go func() {
		done := make(chan error, 1)
		onMessageCallback(m.ConsumeChannel, done)
	}()

	return middleware.MessageMiddlewareSuccess
}

// StopConsuming cancels delivery without closing the channel.
func (m *ExchangeConsumer) StopConsuming() middleware.MessageMiddlewareError {
	if m.AmqpChannel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	if m.ConsumeChannel == nil {
		return middleware.MessageMiddlewareSuccess
	}

	if err := (*m.AmqpChannel).Cancel("", false); err != nil {
		middleware.LogError("Exchange Consumer", "Failed to cancel consumer for exchange '%s': %v", m.ExchangeName, err)
		return middleware.MessageMiddlewareMessageError
	}

	m.ConsumeChannel = nil
	return middleware.MessageMiddlewareSuccess
}

// Close stops consumption and disconnects the channel.
func (m *ExchangeConsumer) Close() middleware.MessageMiddlewareError {
	if m.AmqpChannel == nil {
		return middleware.MessageMiddlewareSuccess
	}

	if m.ConsumeChannel != nil {
		if stopErr := m.StopConsuming(); stopErr != middleware.MessageMiddlewareSuccess {
			middleware.LogError("Exchange Consumer", "Error stopping consumption for exchange '%s': %v",
				m.ExchangeName, stopErr)
		}
	}

	if err := (*m.AmqpChannel).Close(); err != nil {
		middleware.LogError("Exchange Consumer", "Close error for exchange '%s': %v", m.ExchangeName, err)
		return middleware.MessageMiddlewareCloseError
	}

	m.AmqpChannel = nil
	return middleware.MessageMiddlewareSuccess
}
