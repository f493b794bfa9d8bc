// Package comm defines the collective-communication contract shared by every
// rank of a sort group, plus an in-process implementation for tests and
// single-machine runs. The AMQP-backed implementation lives in comm/amqpcomm.
package comm

// CoordinatorRank is the rank that aggregates histograms and reconstructs the
// sorted sequence.
const CoordinatorRank = 0

// Communicator is one rank's view of its worker group. Every operation is
// blocking and collective: it returns only once the group-wide exchange it is
// part of has completed for this rank. There are no timeouts and no partial
// results; a stalled peer stalls the group.
type Communicator interface {
	// Rank returns this member's rank, in [0, Size).
	Rank() int

	// Size returns the fixed number of ranks in the group.
	Size() int

	// AllReduceMinMax combines every rank's local (min, max) with the
	// minimum and maximum operators and returns the reduced pair to every
	// rank. All ranks must call it.
	AllReduceMinMax(localMin, localMax int32) (min, max int32, err error)

	// SendCounts sends this rank's local histogram to root. Only
	// non-root ranks call it.
	SendCounts(root int, counts []int64) error

	// RecvCounts returns the next histogram sent to this rank, from
	// whichever peer's message arrives first. Only the root of a gather
	// calls it, exactly Size-1 times.
	RecvCounts() ([]int64, error)

	// Bcast distributes root's data to every rank. All ranks must call it;
	// non-root ranks pass nil. Every rank, root included, receives the
	// full sequence.
	Bcast(root int, data []int32) ([]int32, error)

	// Allgather concatenates every rank's equal-length local slice in rank
	// order and returns the result to every rank. All ranks must call it
	// with slices of the same length.
	Allgather(local []int32) ([]int32, error)

	// Barrier blocks until every rank has entered it.
	Barrier() error
}
