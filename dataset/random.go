// Package dataset fills the replicated input sequence on every rank before
// the sort phases begin. Both sources split the bulk of the work evenly
// across the group, exchange the pieces with an allgather, and leave each
// rank holding the complete sequence.
package dataset

import (
	"fmt"
	"math/rand"
	"time"

	"tp-countsort-2c2025/comm"
)

// FillRandom fills data with uniform random values in [min, max] on every
// rank of the group. Each rank generates n/size elements from its own seed
// and the chunks are allgathered; the n mod size leftover elements are
// generated locally by every rank from one seed derived from the value range
// and the group size, so all replicas stay identical without an extra
// exchange.
func FillRandom(data []int32, min, max int32, c comm.Communicator) error {
	if max <= min {
		return fmt.Errorf("invalid value range: max %d must exceed min %d", max, min)
	}

	n := int64(len(data))
	size := int64(c.Size())
	localSize := n / size
	span := int64(max) - int64(min) + 1

	rng := rand.New(rand.NewSource(time.Now().UnixNano() ^ int64(c.Rank())))
	local := make([]int32, localSize)
	for i := range local {
		local[i] = min + int32(rng.Int63n(span))
	}

	gathered, err := c.Allgather(local)
	if err != nil {
		return fmt.Errorf("dataset allgather failed: %w", err)
	}
	copy(data, gathered)

	// At most size-1 leftover elements; a shared seed is cheaper than
	// another collective and keeps every rank's tail identical.
	leftover := rand.New(rand.NewSource(int64(max) - int64(min) + size))
	for i := localSize * size; i < n; i++ {
		data[i] = min + int32(leftover.Int63n(span))
	}

	return nil
}

// FillRandomLocal fills data with uniform random values in [min, max] without
// any group communication. The serial reference binary uses it.
func FillRandomLocal(data []int32, min, max int32) error {
	if max <= min {
		return fmt.Errorf("invalid value range: max %d must exceed min %d", max, min)
	}

	span := int64(max) - int64(min) + 1
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range data {
		data[i] = min + int32(rng.Int63n(span))
	}
	return nil
}
