package countingsort

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRange(t *testing.T) {
	data := []int32{5, -3, 9, 1, 4}

	min, max := localRange(data, Partition{Start: 0, End: 5})
	assert.Equal(t, int32(-3), min)
	assert.Equal(t, int32(9), max)

	min, max = localRange(data, Partition{Start: 2, End: 4})
	assert.Equal(t, int32(1), min)
	assert.Equal(t, int32(9), max)
}

func TestLocalRangeEmptyPartitionYieldsIdentity(t *testing.T) {
	min, max := localRange([]int32{1, 2, 3}, Partition{Start: 1, End: 1})
	assert.Equal(t, int32(math.MaxInt32), min)
	assert.Equal(t, int32(math.MinInt32), max)
}

func TestBucketCount(t *testing.T) {
	buckets, err := bucketCount(1, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, buckets)

	// Single distinct value degenerates to one bucket.
	buckets, err = bucketCount(7, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, buckets)
}

func TestBucketCountRejectsOversizedRange(t *testing.T) {
	_, err := bucketCount(math.MinInt32, math.MaxInt32)
	assert.Error(t, err)
}

func TestBuildHistogramCountsOnlyOwnPartition(t *testing.T) {
	data := []int32{5, 3, 9, 1, 4, 1, 9, 2, 6, 3}

	counts := buildHistogram(data, Partition{Start: 0, End: 5}, 1, 9)
	var total int64
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, int64(5), total)
}

func TestBuildHistogramWholeDataset(t *testing.T) {
	data := []int32{5, 3, 9, 1, 4, 1, 9, 2, 6, 3}

	counts := buildHistogram(data, Partition{Start: 0, End: 10}, 1, 9)
	assert.Equal(t, []int64{2, 1, 2, 1, 1, 1, 0, 0, 2}, counts)
}

func TestAccumulate(t *testing.T) {
	global := []int64{1, 0, 2}
	require.NoError(t, accumulate(global, []int64{0, 3, 1}))
	assert.Equal(t, []int64{1, 3, 3}, global)

	assert.Error(t, accumulate(global, []int64{1, 2}))
}

func TestReconstruct(t *testing.T) {
	dst := make([]int32, 10)
	reconstruct(dst, 1, []int64{2, 1, 2, 1, 1, 1, 0, 0, 2})
	assert.Equal(t, []int32{1, 1, 2, 3, 3, 4, 5, 6, 9, 9}, dst)
}
