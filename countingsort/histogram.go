package countingsort

import (
	"fmt"
	"math"
)

// Identity values for the min/max reduction. An empty partition contributes
// these so it never wins against a real element.
const (
	reduceMinIdentity = math.MaxInt32
	reduceMaxIdentity = math.MinInt32
)

// localRange scans one partition and returns its minimum and maximum.
func localRange(data []int32, p Partition) (int32, int32) {
	if p.Len() == 0 {
		return reduceMinIdentity, reduceMaxIdentity
	}

	min, max := data[p.Start], data[p.Start]
	for _, v := range data[p.Start:p.End] {
		if v < min {
			min = v
		} else if v > max {
			max = v
		}
	}
	return min, max
}

// bucketCount returns the histogram size max-min+1, rejecting ranges whose
// dense representation would not fit in memory.
func bucketCount(min, max int32) (int, error) {
	span := int64(max) - int64(min) + 1
	if span > math.MaxInt32 {
		return 0, fmt.Errorf("value range [%d, %d] too large for a dense histogram", min, max)
	}
	return int(span), nil
}

// buildHistogram counts the values of one partition into a fresh histogram.
// Bucket i counts occurrences of value min+i.
func buildHistogram(data []int32, p Partition, min int32, buckets int) []int64 {
	counts := make([]int64, buckets)
	for _, v := range data[p.Start:p.End] {
		counts[v-min]++
	}
	return counts
}

// accumulate sums a peer's histogram into the global one element-wise.
func accumulate(global, local []int64) error {
	if len(local) != len(global) {
		return fmt.Errorf("histogram has %d buckets, want %d", len(local), len(global))
	}
	for i, count := range local {
		global[i] += count
	}
	return nil
}
