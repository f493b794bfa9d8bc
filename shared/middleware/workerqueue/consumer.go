package workerqueue

import (
	"tp-countsort-2c2025/shared/middleware"
)

// QueueConsumer wraps middleware.MessageMiddlewareQueue with consumer methods
type QueueConsumer struct {
	*middleware.MessageMiddlewareQueue
}

// NewQueueConsumer creates a new QueueConsumer instance
func NewQueueConsumer(queueName string, config *middleware.ConnectionConfig) *QueueConsumer {
	channel, err := middleware.CreateMiddlewareChannel(config)
	if err != nil {
		middleware.LogError("Queue Consumer", "Failed to create channel for queue '%s': %v", queueName, err)
		return nil
	}

	return &QueueConsumer{
		MessageMiddlewareQueue: &middleware.MessageMiddlewareQueue{
			QueueName: queueName,
			Channel:   channel,
		},
	}
}

// StartConsuming begins delivery of messages from the queue. The callback runs
// in its own goroutine and owns acknowledgment of each delivery.
func (m *QueueConsumer) StartConsuming(
	onMessageCallback middleware.OnMessageCallback,
) middleware.MessageMiddlewareError {
	if m.Channel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	deliveries, err := (*m.Channel).Consume(
		m.QueueName,
		"",    // consumer tag, auto-generated
		false, // auto-ack off, callbacks ack explicitly
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		middleware.LogError("Queue Consumer", "Failed to start consuming queue '%s': %v", m.QueueName, err)
		return middleware.MessageMiddlewareMessageError
	}

	m.ConsumeChannel = &deliveries

	go func() {
		done := make(chan error, 1)
		middleware.LogDebug("Queue Consumer", "Consuming queue '%s'", m.QueueName)
		onMessageCallback(m.ConsumeChannel, done)
	}()

	return middleware.MessageMiddlewareSuccess
}

// StopConsuming cancels delivery without closing the channel.
func (m *QueueConsumer) StopConsuming() middleware.MessageMiddlewareError {
	if m.Channel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	if m.ConsumeChannel == nil {
		middleware.LogDebug("Queue Consumer", "Not consuming queue '%s', StopConsuming has no effect", m.QueueName)
		return middleware.MessageMiddlewareSuccess
	}

	// Empty consumer tag cancels every consumer on this channel.
	if err := (*m.Channel).Cancel("", false); err != nil {
		middleware.LogError("Queue Consumer", "Failed to cancel consumer for queue '%s': %v", m.QueueName, err)
		return middleware.MessageMiddlewareMessageError
	}

	m.ConsumeChannel = nil
	return middleware.MessageMiddlewareSuccess
}

// Close stops consumption and disconnects the channel.
func (m *QueueConsumer) Close() middleware.MessageMiddlewareError {
	if m.Channel == nil {
		return middleware.MessageMiddlewareSuccess
	}

	if m.ConsumeChannel != nil {
		if stopErr := m.StopConsuming(); stopErr != middleware.MessageMiddlewareSuccess {
			middleware.LogError("Queue Consumer", "Error stopping consumption for queue '%s': %v", m.QueueName, stopErr)
		}
	}

	if err := (*m.Channel).Close(); err != nil {
		middleware.LogError("Queue Consumer", "Close error for queue '%s': %v", m.QueueName, err)
		return middleware.MessageMiddlewareCloseError
	}

	m.Channel = nil
	return middleware.MessageMiddlewareSuccess
}
