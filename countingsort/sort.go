// Package countingsort implements a distributed counting sort over a fixed
// group of cooperating ranks. The dataset is replicated on every rank;
// processing is partitioned. Phases run in lockstep: partition, range
// reduction, local histogram, gather-and-sum at the coordinator, serial
// reconstruction, result broadcast.
package countingsort

import (
	"fmt"

	"tp-countsort-2c2025/comm"
)

// Sort sorts data in place using every rank of the group. All ranks must call
// Sort with identical data; when it returns without error, every rank holds
// the same sorted sequence.
func Sort(data []int32, c comm.Communicator) error {
	n := int64(len(data))
	p := PartitionFor(n, c.Size(), c.Rank())

	localMin, localMax := localRange(data, p)
	min, max, err := c.AllReduceMinMax(localMin, localMax)
	if err != nil {
		return fmt.Errorf("range reduction failed: %w", err)
	}
	if min > max {
		// Every partition was empty, so the dataset is too. All ranks
		// observe the same reduced identities and return together.
		return nil
	}

	buckets, err := bucketCount(min, max)
	if err != nil {
		return err
	}
	local := buildHistogram(data, p, min, buckets)

	if c.Rank() == comm.CoordinatorRank {
		// The global histogram is seeded from the coordinator's own
		// counts; the peers' histograms are summed in arrival order.
		global := local
		for i := 1; i < c.Size(); i++ {
			peer, err := c.RecvCounts()
			if err != nil {
				return fmt.Errorf("histogram gather failed: %w", err)
			}
			if err := accumulate(global, peer); err != nil {
				return fmt.Errorf("histogram gather failed: %w", err)
			}
		}

		var counted int64
		for _, count := range global {
			counted += count
		}
		if counted != n {
			return fmt.Errorf("global histogram counts %d elements, want %d", counted, n)
		}

		reconstruct(data, min, global)
	} else {
		if err := c.SendCounts(comm.CoordinatorRank, local); err != nil {
			return fmt.Errorf("histogram send failed: %w", err)
		}
	}

	sorted, err := c.Bcast(comm.CoordinatorRank, data)
	if err != nil {
		return fmt.Errorf("result broadcast failed: %w", err)
	}
	if int64(len(sorted)) != n {
		return fmt.Errorf("broadcast returned %d elements, want %d", len(sorted), n)
	}
	copy(data, sorted)

	return nil
}
