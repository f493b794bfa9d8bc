package dataset

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-countsort-2c2025/comm"
)

// fillGroup runs fill concurrently on every rank and returns each rank's buffer.
func fillGroup(t *testing.T, size int, n int, fill func(data []int32, c comm.Communicator) error) [][]int32 {
	t.Helper()

	group := comm.NewGroup(size)
	buffers := make([][]int32, size)
	errs := make([]error, size)

	var wg sync.WaitGroup
	for rank := 0; rank < size; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			buffers[rank] = make([]int32, n)
			errs[rank] = fill(buffers[rank], group.Communicator(rank))
		}(rank)
	}
	wg.Wait()

	for rank, err := range errs {
		require.NoError(t, err, "rank %d", rank)
	}
	return buffers
}

func TestFillRandomReplicasIdentical(t *testing.T) {
	// N=10, W=3 exercises the shared-seed leftover fill.
	buffers := fillGroup(t, 3, 10, func(data []int32, c comm.Communicator) error {
		return FillRandom(data, 0, 100, c)
	})

	for rank := 1; rank < len(buffers); rank++ {
		assert.Equal(t, buffers[0], buffers[rank], "rank %d replica diverged", rank)
	}
}

func TestFillRandomValuesInRange(t *testing.T) {
	const min, max = -5, 5
	buffers := fillGroup(t, 2, 100, func(data []int32, c comm.Communicator) error {
		return FillRandom(data, min, max, c)
	})

	for _, v := range buffers[0] {
		require.GreaterOrEqual(t, v, int32(min))
		require.LessOrEqual(t, v, int32(max))
	}
}

func TestFillRandomRejectsInvalidRange(t *testing.T) {
	group := comm.NewGroup(1)
	data := make([]int32, 4)

	assert.Error(t, FillRandom(data, 10, 10, group.Communicator(0)))
	assert.Error(t, FillRandom(data, 10, 3, group.Communicator(0)))
}

func TestFillRandomLocal(t *testing.T) {
	data := make([]int32, 50)
	require.NoError(t, FillRandomLocal(data, 1, 9))

	for _, v := range data {
		require.GreaterOrEqual(t, v, int32(1))
		require.LessOrEqual(t, v, int32(9))
	}

	assert.Error(t, FillRandomLocal(data, 9, 1))
}
