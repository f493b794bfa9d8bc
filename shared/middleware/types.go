package middleware

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// MiddlewareChannel is the AMQP channel our queue and exchange wrappers operate on.
type MiddlewareChannel = *amqp.Channel

// ConsumeChannel is the delivery stream handed to consumer callbacks.
type ConsumeChannel = *<-chan amqp.Delivery

// OnMessageCallback processes deliveries from a ConsumeChannel and reports
// completion on the done channel.
type OnMessageCallback func(consumeChannel ConsumeChannel, done chan error)

// MessageMiddlewareError is the error code returned by middleware operations.
// Zero means success.
type MessageMiddlewareError int

const (
	MessageMiddlewareSuccess           MessageMiddlewareError = 0
	MessageMiddlewareMessageError      MessageMiddlewareError = 1
	MessageMiddlewareDisconnectedError MessageMiddlewareError = 2
	MessageMiddlewareCloseError        MessageMiddlewareError = 3
)

func (e MessageMiddlewareError) String() string {
	switch e {
	case MessageMiddlewareSuccess:
		return "success"
	case MessageMiddlewareMessageError:
		return "message error"
	case MessageMiddlewareDisconnectedError:
		return "disconnected"
	case MessageMiddlewareCloseError:
		return "close error"
	default:
		return "unknown middleware error"
	}
}

// MessageMiddlewareQueue holds the state for a named-queue producer or consumer.
type MessageMiddlewareQueue struct {
	QueueName      string
	Channel        MiddlewareChannel
	ConsumeChannel ConsumeChannel
}

// MessageMiddlewareExchange holds the state for an exchange producer or consumer.
type MessageMiddlewareExchange struct {
	ExchangeName   string
	RouteKeys      []string
	AmqpChannel    MiddlewareChannel
	ConsumeChannel ConsumeChannel
}
