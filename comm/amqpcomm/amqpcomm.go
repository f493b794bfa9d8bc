// Package amqpcomm implements comm.Communicator over RabbitMQ. Gather legs
// (min/max contributions, histograms, barrier tokens) flow through a single
// coordinator inbox queue; distribution legs (reduced range, dataset
// segments, the sorted result, barrier releases) flow through one fanout
// exchange with a named queue per rank.
package amqpcomm

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"tp-countsort-2c2025/comm"
	"tp-countsort-2c2025/protocol/common"
	"tp-countsort-2c2025/protocol/histogram"
	"tp-countsort-2c2025/protocol/minmax"
	"tp-countsort-2c2025/protocol/segment"
	"tp-countsort-2c2025/protocol/signal"
	"tp-countsort-2c2025/shared/middleware"
	"tp-countsort-2c2025/shared/middleware/exchange"
	"tp-countsort-2c2025/shared/middleware/workerqueue"
	"tp-countsort-2c2025/shared/queues"
)

// Comm is one rank's AMQP-backed group membership.
type Comm struct {
	rank int
	size int

	inboxProducer *workerqueue.QueueMiddleware
	broadcast     *exchange.ExchangeMiddleware
	inboxConsumer *workerqueue.QueueConsumer
	bcastConsumer *exchange.ExchangeConsumer

	// Coordinator inbox, demultiplexed by message type. Only rank 0 reads.
	contribIn chan []byte
	countsIn  chan []byte
	tokenIn   chan []byte

	// Per-rank broadcast queue, demultiplexed by message type.
	rangeIn   chan []byte
	segmentIn chan []byte
	releaseIn chan []byte
}

var _ comm.Communicator = (*Comm)(nil)

// New joins the group as the given rank. It declares the queues and exchange,
// starts consuming, and runs one barrier so no rank can publish before every
// rank's broadcast queue is bound. New blocks until the whole group has
// joined.
func New(config *middleware.ConnectionConfig, rank, size int) (*Comm, error) {
	if size < 1 {
		return nil, fmt.Errorf("group size must be at least 1, got %d", size)
	}
	if rank < 0 || rank >= size {
		return nil, fmt.Errorf("rank %d out of range for group size %d", rank, size)
	}

	c := &Comm{
		rank:      rank,
		size:      size,
		contribIn: make(chan []byte, size),
		countsIn:  make(chan []byte, size),
		tokenIn:   make(chan []byte, size),
		rangeIn:   make(chan []byte, size),
		segmentIn: make(chan []byte, size),
		releaseIn: make(chan []byte, size),
	}

	c.inboxProducer = workerqueue.NewMessageMiddlewareQueue(queues.CoordinatorInboxQueue, config)
	if c.inboxProducer == nil {
		return nil, fmt.Errorf("failed to create coordinator inbox producer")
	}
	if mwErr := c.inboxProducer.DeclareQueue(false, false, false, false); mwErr != middleware.MessageMiddlewareSuccess {
		c.Close()
		return nil, fmt.Errorf("failed to declare coordinator inbox: %v", mwErr)
	}

	c.broadcast = exchange.NewMessageMiddlewareExchange(queues.BroadcastExchange, nil, config)
	if c.broadcast == nil {
		c.Close()
		return nil, fmt.Errorf("failed to create broadcast producer")
	}
	if mwErr := c.broadcast.DeclareExchange("fanout", false, false, false, false); mwErr != middleware.MessageMiddlewareSuccess {
		c.Close()
		return nil, fmt.Errorf("failed to declare broadcast exchange: %v", mwErr)
	}

	if rank == comm.CoordinatorRank {
		c.inboxConsumer = workerqueue.NewQueueConsumer(queues.CoordinatorInboxQueue, config)
		if c.inboxConsumer == nil {
			c.Close()
			return nil, fmt.Errorf("failed to create coordinator inbox consumer")
		}
		if mwErr := c.inboxConsumer.StartConsuming(c.routeInbox); mwErr != middleware.MessageMiddlewareSuccess {
			c.Close()
			return nil, fmt.Errorf("failed to consume coordinator inbox: %v", mwErr)
		}
	}

	c.bcastConsumer = exchange.NewExchangeConsumer(queues.BroadcastExchange, nil, config)
	if c.bcastConsumer == nil {
		c.Close()
		return nil, fmt.Errorf("failed to create broadcast consumer")
	}
	c.bcastConsumer.SetQueueName(queues.BroadcastQueueName(rank))
	if mwErr := c.bcastConsumer.StartConsuming(c.routeBroadcast); mwErr != middleware.MessageMiddlewareSuccess {
		c.Close()
		return nil, fmt.Errorf("failed to consume broadcast queue: %v", mwErr)
	}

	// Every rank sends its barrier token only after its own queue is bound,
	// and the release is published only after all tokens arrive, so once
	// this returns no fanout publish can be lost.
	if err := c.Barrier(); err != nil {
		c.Close()
		return nil, fmt.Errorf("group join failed: %w", err)
	}

	return c, nil
}

// Rank returns this member's rank.
func (c *Comm) Rank() int { return c.rank }

// Size returns the fixed group size.
func (c *Comm) Size() int { return c.size }

// routeInbox dispatches coordinator inbox deliveries by message type.
func (c *Comm) routeInbox(consumeChannel middleware.ConsumeChannel, done chan error) {
	for delivery := range *consumeChannel {
		c.dispatch(delivery, map[int]chan []byte{
			common.MinMaxMessageType:    c.contribIn,
			common.HistogramMessageType: c.countsIn,
			common.BarrierMessageType:   c.tokenIn,
		})
	}
	done <- nil
}

// routeBroadcast dispatches per-rank broadcast deliveries by message type.
func (c *Comm) routeBroadcast(consumeChannel middleware.ConsumeChannel, done chan error) {
	for delivery := range *consumeChannel {
		c.dispatch(delivery, map[int]chan []byte{
			common.RangeMessageType:   c.rangeIn,
			common.SegmentMessageType: c.segmentIn,
			common.ReleaseMessageType: c.releaseIn,
		})
	}
	done <- nil
}

func (c *Comm) dispatch(delivery amqp.Delivery, routes map[int]chan []byte) {
	msgType, err := common.GetMessageType(delivery.Body)
	if err != nil {
		middleware.LogError("Comm", "Rank %d dropping malformed delivery: %v", c.rank, err)
		delivery.Nack(false, false)
		return
	}

	inbox, ok := routes[msgType]
	if !ok {
		middleware.LogError("Comm", "Rank %d dropping unexpected message type %d", c.rank, msgType)
		delivery.Nack(false, false)
		return
	}

	inbox <- delivery.Body
	delivery.Ack(false)
}

func (c *Comm) publishToCoordinator(payload []byte) error {
	if mwErr := c.inboxProducer.Send(payload); mwErr != middleware.MessageMiddlewareSuccess {
		return fmt.Errorf("failed to publish to coordinator inbox: %v", mwErr)
	}
	return nil
}

func (c *Comm) publishBroadcast(payload []byte) error {
	if mwErr := c.broadcast.Send(payload); mwErr != middleware.MessageMiddlewareSuccess {
		return fmt.Errorf("failed to publish to broadcast exchange: %v", mwErr)
	}
	return nil
}

// AllReduceMinMax implements the range reduction: non-coordinator ranks send
// their contribution, the coordinator reduces and fans the result out, and
// every rank (the coordinator included) consumes the reduced range from its
// own broadcast queue.
func (c *Comm) AllReduceMinMax(localMin, localMax int32) (int32, int32, error) {
	if c.rank == comm.CoordinatorRank {
		min, max := localMin, localMax
		for i := 1; i < c.size; i++ {
			contrib, err := minmax.DeserializeContribution(<-c.contribIn)
			if err != nil {
				return 0, 0, fmt.Errorf("range reduction: %w", err)
			}
			if contrib.Min < min {
				min = contrib.Min
			}
			if contrib.Max > max {
				max = contrib.Max
			}
		}

		payload, err := minmax.SerializeRange(&minmax.Range{Min: min, Max: max})
		if err != nil {
			return 0, 0, fmt.Errorf("range reduction: %w", err)
		}
		if err := c.publishBroadcast(payload); err != nil {
			return 0, 0, fmt.Errorf("range reduction: %w", err)
		}
	} else {
		payload, err := minmax.SerializeContribution(&minmax.Contribution{
			Rank: int32(c.rank),
			Min:  localMin,
			Max:  localMax,
		})
		if err != nil {
			return 0, 0, fmt.Errorf("range reduction: %w", err)
		}
		if err := c.publishToCoordinator(payload); err != nil {
			return 0, 0, fmt.Errorf("range reduction: %w", err)
		}
	}

	reduced, err := minmax.DeserializeRange(<-c.rangeIn)
	if err != nil {
		return 0, 0, fmt.Errorf("range reduction: %w", err)
	}
	return reduced.Min, reduced.Max, nil
}

// SendCounts sends this rank's local histogram to the coordinator.
func (c *Comm) SendCounts(root int, counts []int64) error {
	if root != comm.CoordinatorRank {
		return fmt.Errorf("histogram gather root must be rank %d, got %d", comm.CoordinatorRank, root)
	}

	payload, err := histogram.Serialize(&histogram.Histogram{Rank: int32(c.rank), Counts: counts})
	if err != nil {
		return fmt.Errorf("histogram send: %w", err)
	}
	if err := c.publishToCoordinator(payload); err != nil {
		return fmt.Errorf("histogram send: %w", err)
	}
	return nil
}

// RecvCounts returns the next histogram delivered to the coordinator inbox,
// in whatever order the peers' messages arrive.
func (c *Comm) RecvCounts() ([]int64, error) {
	h, err := histogram.Deserialize(<-c.countsIn)
	if err != nil {
		return nil, fmt.Errorf("histogram gather: %w", err)
	}
	return h.Counts, nil
}

// Bcast distributes root's data to every rank through the fanout exchange.
// The root consumes its own copy like everyone else, so all ranks leave this
// call in lockstep with identical sequences.
func (c *Comm) Bcast(root int, data []int32) ([]int32, error) {
	if c.rank == root {
		payload, err := segment.Serialize(&segment.Segment{Rank: int32(c.rank), Offset: 0, Values: data})
		if err != nil {
			return nil, fmt.Errorf("broadcast: %w", err)
		}
		if err := c.publishBroadcast(payload); err != nil {
			return nil, fmt.Errorf("broadcast: %w", err)
		}
	}

	seg, err := segment.Deserialize(<-c.segmentIn)
	if err != nil {
		return nil, fmt.Errorf("broadcast: %w", err)
	}
	if seg.Offset != 0 {
		return nil, fmt.Errorf("broadcast segment has offset %d, want 0", seg.Offset)
	}
	return seg.Values, nil
}

// Allgather publishes this rank's chunk to the fanout exchange and assembles
// the chunks of all ranks, placed in rank order, from its own queue.
func (c *Comm) Allgather(local []int32) ([]int32, error) {
	payload, err := segment.Serialize(&segment.Segment{
		Rank:   int32(c.rank),
		Offset: int64(c.rank) * int64(len(local)),
		Values: local,
	})
	if err != nil {
		return nil, fmt.Errorf("allgather: %w", err)
	}
	if err := c.publishBroadcast(payload); err != nil {
		return nil, fmt.Errorf("allgather: %w", err)
	}

	total := make([]int32, c.size*len(local))
	for i := 0; i < c.size; i++ {
		seg, err := segment.Deserialize(<-c.segmentIn)
		if err != nil {
			return nil, fmt.Errorf("allgather: %w", err)
		}
		if seg.Offset < 0 || seg.Offset+int64(len(seg.Values)) > int64(len(total)) {
			return nil, fmt.Errorf("allgather segment from rank %d out of bounds: offset %d, %d values",
				seg.Rank, seg.Offset, len(seg.Values))
		}
		copy(total[seg.Offset:], seg.Values)
	}
	return total, nil
}

// Barrier blocks until every rank has entered it: non-coordinator ranks send
// a token, the coordinator collects Size-1 tokens and fans out a release, and
// every rank waits for the release on its own queue.
func (c *Comm) Barrier() error {
	if c.rank == comm.CoordinatorRank {
		for i := 1; i < c.size; i++ {
			if _, err := signal.DeserializeToken(<-c.tokenIn); err != nil {
				return fmt.Errorf("barrier: %w", err)
			}
		}
		if err := c.publishBroadcast(signal.SerializeRelease()); err != nil {
			return fmt.Errorf("barrier: %w", err)
		}
	} else {
		payload, err := signal.SerializeToken(&signal.Token{Rank: int32(c.rank)})
		if err != nil {
			return fmt.Errorf("barrier: %w", err)
		}
		if err := c.publishToCoordinator(payload); err != nil {
			return fmt.Errorf("barrier: %w", err)
		}
	}

	if err := signal.ValidateRelease(<-c.releaseIn); err != nil {
		return fmt.Errorf("barrier: %w", err)
	}
	return nil
}

// Close tears down consumers and producers. The group is not usable after
// Close; membership is fixed for the process lifetime.
func (c *Comm) Close() {
	if c.bcastConsumer != nil {
		c.bcastConsumer.Close()
	}
	if c.inboxConsumer != nil {
		c.inboxConsumer.Close()
	}
	if c.broadcast != nil {
		c.broadcast.Close()
	}
	if c.inboxProducer != nil {
		c.inboxProducer.Close()
	}
}
