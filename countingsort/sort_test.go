package countingsort

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-countsort-2c2025/comm"
)

// runSortGroup sorts a copy of input on every rank of an in-process group and
// returns each rank's final sequence.
func runSortGroup(t *testing.T, size int, input []int32) [][]int32 {
	t.Helper()

	group := comm.NewGroup(size)
	results := make([][]int32, size)
	errs := make([]error, size)

	var wg sync.WaitGroup
	for rank := 0; rank < size; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			data := make([]int32, len(input))
			copy(data, input)
			errs[rank] = Sort(data, group.Communicator(rank))
			results[rank] = data
		}(rank)
	}
	wg.Wait()

	for rank, err := range errs {
		require.NoError(t, err, "rank %d", rank)
	}
	return results
}

func valueCounts(data []int32) map[int32]int {
	counts := make(map[int32]int, len(data))
	for _, v := range data {
		counts[v]++
	}
	return counts
}

func TestSortTwoWorkers(t *testing.T) {
	input := []int32{5, 3, 9, 1, 4, 1, 9, 2, 6, 3}
	expected := []int32{1, 1, 2, 3, 3, 4, 5, 6, 9, 9}

	for _, result := range runSortGroup(t, 2, input) {
		assert.Equal(t, expected, result)
	}
}

func TestSortThreeWorkersNonDivisible(t *testing.T) {
	// N=10, W=3: the leftover element lands in the coordinator's
	// partition and must not be dropped.
	input := []int32{5, 3, 9, 1, 4, 1, 9, 2, 6, 3}
	expected := []int32{1, 1, 2, 3, 3, 4, 5, 6, 9, 9}

	for _, result := range runSortGroup(t, 3, input) {
		assert.Equal(t, expected, result)
	}
}

func TestSortSingleWorker(t *testing.T) {
	input := []int32{3, 1, 2}

	results := runSortGroup(t, 1, input)
	assert.Equal(t, []int32{1, 2, 3}, results[0])
}

func TestSortSingleElement(t *testing.T) {
	results := runSortGroup(t, 1, []int32{42})
	assert.Equal(t, []int32{42}, results[0])
}

func TestSortAllEqual(t *testing.T) {
	input := []int32{7, 7, 7, 7, 7, 7}

	for _, result := range runSortGroup(t, 3, input) {
		assert.Equal(t, input, result)
	}
}

func TestSortAlreadySorted(t *testing.T) {
	input := []int32{1, 1, 2, 3, 5, 8, 13}

	for _, result := range runSortGroup(t, 2, input) {
		assert.Equal(t, input, result)
	}
}

func TestSortMoreWorkersThanElements(t *testing.T) {
	input := []int32{2, -1, 2}

	for _, result := range runSortGroup(t, 5, input) {
		assert.Equal(t, []int32{-1, 2, 2}, result)
	}
}

func TestSortNegativeValues(t *testing.T) {
	input := []int32{-5, 3, -9, 0, 4}

	for _, result := range runSortGroup(t, 2, input) {
		assert.Equal(t, []int32{-9, -5, 0, 3, 4}, result)
	}
}

func TestSortMatchesSerialReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	input := make([]int32, 1000)
	for i := range input {
		input[i] = int32(rng.Intn(200) - 100)
	}

	reference := make([]int32, len(input))
	copy(reference, input)
	require.NoError(t, Serial(reference))

	for _, result := range runSortGroup(t, 4, input) {
		assert.Equal(t, reference, result)
	}
}

func TestSortConservesValues(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	input := make([]int32, 257) // not divisible by the worker count
	for i := range input {
		input[i] = int32(rng.Intn(50))
	}

	results := runSortGroup(t, 4, input)
	for _, result := range results {
		assert.Equal(t, valueCounts(input), valueCounts(result))
		for i := 1; i < len(result); i++ {
			require.LessOrEqual(t, result[i-1], result[i], "output not non-decreasing at %d", i)
		}
	}
}

func TestSortResultIdenticalOnEveryRank(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	input := make([]int32, 100)
	for i := range input {
		input[i] = int32(rng.Intn(1000))
	}

	results := runSortGroup(t, 3, input)
	for rank := 1; rank < len(results); rank++ {
		assert.Equal(t, results[0], results[rank], "rank %d diverged from coordinator", rank)
	}
}

func TestSerial(t *testing.T) {
	data := []int32{5, 3, 9, 1, 4, 1, 9, 2, 6, 3}
	require.NoError(t, Serial(data))
	assert.Equal(t, []int32{1, 1, 2, 3, 3, 4, 5, 6, 9, 9}, data)
}

func TestSerialEmpty(t *testing.T) {
	require.NoError(t, Serial(nil))
}

func TestSerialIdempotent(t *testing.T) {
	data := []int32{1, 2, 2, 3}
	require.NoError(t, Serial(data))
	require.NoError(t, Serial(data))
	assert.Equal(t, []int32{1, 2, 2, 3}, data)
}
