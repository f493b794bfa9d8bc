package queues

import "strconv"

// This package centralizes the queue and exchange names used by the sort
// workers so every rank agrees on the wiring without coordination.

const (
	// CoordinatorInboxQueue is the single gather queue consumed by rank 0.
	// It carries min/max contributions, local histograms and barrier tokens;
	// the coordinator demultiplexes by message type.
	CoordinatorInboxQueue = "countsort-coordinator-inbox"

	// BroadcastExchange is the fanout exchange for all one-to-many traffic:
	// the reduced value range, dataset segments during the allgather, the
	// sorted result and barrier releases. Every rank binds its own queue.
	BroadcastExchange = "countsort-broadcast"
)

// BroadcastQueueName returns the per-rank queue bound to BroadcastExchange.
func BroadcastQueueName(rank int) string {
	return "countsort-broadcast-rank-" + strconv.Itoa(rank)
}
