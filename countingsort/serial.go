package countingsort

// Serial sorts data in place with a single-process counting sort. It is the
// reference the distributed pipeline is checked against.
func Serial(data []int32) error {
	if len(data) == 0 {
		return nil
	}

	whole := Partition{Start: 0, End: int64(len(data))}
	min, max := localRange(data, whole)

	buckets, err := bucketCount(min, max)
	if err != nil {
		return err
	}

	counts := buildHistogram(data, whole, min, buckets)
	reconstruct(data, min, counts)
	return nil
}
