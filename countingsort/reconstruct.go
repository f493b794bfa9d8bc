package countingsort

// reconstruct expands the global histogram into dst in non-decreasing order:
// value min+i is written counts[i] times. Each position depends on the
// running total of all smaller values, so this is inherently a single-writer,
// serial walk; it is the sequential bottleneck of the whole pipeline and is
// deliberately kept as one bounded routine rather than subdivided.
func reconstruct(dst []int32, min int32, counts []int64) {
	k := 0
	for i, count := range counts {
		v := min + int32(i)
		for j := int64(0); j < count; j++ {
			dst[k] = v
			k++
		}
	}
}
