package exchange

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"tp-countsort-2c2025/shared/middleware"
)

// ExchangeMiddleware wraps middleware.MessageMiddlewareExchange with producer methods
type ExchangeMiddleware struct {
	*middleware.MessageMiddlewareExchange
}

// NewMessageMiddlewareExchange creates a new ExchangeMiddleware instance
func NewMessageMiddlewareExchange(exchangeName string, routeKeys []string, config *middleware.ConnectionConfig) *ExchangeMiddleware {
	channel, err := middleware.CreateMiddlewareChannel(config)
	if err != nil {
		middleware.LogError("Exchange Producer", "Failed to create channel for exchange '%s': %v", exchangeName, err)
		return nil
	}

	return &ExchangeMiddleware{
		MessageMiddlewareExchange: &middleware.MessageMiddlewareExchange{
			ExchangeName: exchangeName,
			RouteKeys:    routeKeys,
			AmqpChannel:  channel,
		},
	}
}

// DeclareExchange declares the exchange on the RabbitMQ server.
// Parameters:
//   - exchangeType: Type of exchange ("direct", "topic", "fanout", "headers")
//   - durable: If true, the exchange survives server restarts
//   - autoDelete: If true, the exchange is deleted when no longer used
//   - internal: If true, the exchange cannot be used directly by publishers
//   - noWait: If true, don't wait for a server response
func (m *ExchangeMiddleware) DeclareExchange(
	exchangeType string,
	durable bool,
	autoDelete bool,
	internal bool,
	noWait bool,
) middleware.MessageMiddlewareError {
	if m.AmqpChannel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	err := (*m.AmqpChannel).ExchangeDeclare(
		m.ExchangeName,
		exchangeType,
		durable,
		autoDelete,
		internal,
		noWait,
		nil, // arguments
	)
	if err != nil {
		middleware.LogError("Exchange Producer", "Failed to declare exchange '%s': %v", m.ExchangeName, err)
		return middleware.MessageMiddlewareMessageError
	}

	middleware.LogDebug("Exchange Producer", "Declared %s exchange '%s'", exchangeType, m.ExchangeName)
	return middleware.MessageMiddlewareSuccess
}

// Send publishes a message to the exchange once per routing key. A fanout
// exchange ignores the key, so producers bound to one use a single empty key.
func (m *ExchangeMiddleware) Send(message []byte) middleware.MessageMiddlewareError {
	if m.AmqpChannel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	routeKeys := m.RouteKeys
	if len(routeKeys) == 0 {
		routeKeys = []string{""}
	}

	for _, routeKey := range routeKeys {
		err := (*m.AmqpChannel).Publish(
			m.ExchangeName,
			routeKey,
			false, // mandatory
			false, // immediate
			amqp.Publishing{
				ContentType: "application/octet-stream",
				Body:        message,
			},
		)
		if err != nil {
			middleware.LogError("Exchange Producer", "Failed to publish to exchange '%s' (key '%s'): %v",
				m.ExchangeName, routeKey, err)
			return middleware.MessageMiddlewareMessageError
		}
	}

	return middleware.MessageMiddlewareSuccess
}

// Close disconnects the channel.
func (m *ExchangeMiddleware) Close() middleware.MessageMiddlewareError {
	if m.AmqpChannel == nil {
		return middleware.MessageMiddlewareSuccess
	}

	if err := (*m.AmqpChannel).Close(); err != nil {
		middleware.LogError("Exchange Producer", "Close error for exchange '%s': %v", m.ExchangeName, err)
		return middleware.MessageMiddlewareCloseError
	}

	m.AmqpChannel = nil
	return middleware.MessageMiddlewareSuccess
}
